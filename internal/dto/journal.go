package dto

import (
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest defines one line of a submitted journal entry. Exactly one
// of Debit/Credit must be positive; the validator reports violations per line.
type EntryLineRequest struct {
	AccountID   int64           `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"dgte0"`
	Credit      decimal.Decimal `json:"credit" binding:"dgte0"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to submit a new journal entry.
type CreateEntryRequest struct {
	EntryDate   string             `json:"entryDate" binding:"required" example:"2026-01-31"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest rewrites a pending entry. The full line set is replaced.
type UpdateEntryRequest struct {
	EntryDate   string             `json:"entryDate" binding:"required" example:"2026-01-31"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// RejectEntryRequest carries the mandatory rejection reason.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Status *domain.EntryStatus `form:"status"`
	Limit  int                 `form:"limit,default=50"`
	Offset int                 `form:"offset,default=0"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      int64           `json:"lineID"`
	AccountID   int64           `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineOrder   int             `json:"lineOrder"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         int64               `json:"entryID"`
	EntryDate       string              `json:"entryDate"`
	Description     string              `json:"description"`
	Status          domain.EntryStatus  `json:"status"`
	ReviewedBy      string              `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewedAt,omitempty"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
	TotalDebits     decimal.Decimal     `json:"totalDebits"`
	TotalCredits    decimal.Decimal     `json:"totalCredits"`
	Lines           []EntryLineResponse `json:"lines"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       money(l.Debit),
			Credit:      money(l.Credit),
			Description: l.Description,
			LineOrder:   l.LineOrder,
		}
	}
	return EntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate.Format("2006-01-02"),
		Description:     e.Description,
		Status:          e.Status,
		ReviewedBy:      e.ReviewedBy,
		ReviewedAt:      e.ReviewedAt,
		RejectionReason: e.RejectionReason,
		TotalDebits:     money(e.TotalDebits()),
		TotalCredits:    money(e.TotalCredits()),
		Lines:           lines,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToListEntriesResponse converts a slice of entries to response DTOs.
func ToListEntriesResponse(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
