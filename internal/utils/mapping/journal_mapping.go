package mapping

import (
	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		Status:      models.EntryStatus(d.Status),
		ReviewedAt:  d.ReviewedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.ReviewedBy != "" {
		m.ReviewedBy = &d.ReviewedBy
	}
	if d.RejectionReason != "" {
		m.RejectionReason = &d.RejectionReason
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Status:      domain.EntryStatus(m.Status),
		ReviewedAt:  m.ReviewedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.ReviewedBy != nil {
		d.ReviewedBy = *m.ReviewedBy
	}
	if m.RejectionReason != nil {
		d.RejectionReason = *m.RejectionReason
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		LineOrder:   d.LineOrder,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		LineOrder:   m.LineOrder,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
