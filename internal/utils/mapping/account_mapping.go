package mapping

import (
	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Number:         d.Number,
		Name:           d.Name,
		Description:    d.Description,
		Category:       models.AccountCategory(d.Category),
		Subcategory:    d.Subcategory,
		NormalSide:     string(d.NormalSide),
		Statement:      string(d.Statement),
		DisplayOrder:   d.DisplayOrder,
		Comment:        d.Comment,
		InitialBalance: d.InitialBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Number:         m.Number,
		Name:           m.Name,
		Description:    m.Description,
		Category:       domain.AccountCategory(m.Category),
		Subcategory:    m.Subcategory,
		NormalSide:     domain.NormalSide(m.NormalSide),
		Statement:      domain.StatementType(m.Statement),
		DisplayOrder:   m.DisplayOrder,
		Comment:        m.Comment,
		InitialBalance: m.InitialBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
