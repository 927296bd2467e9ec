package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/dto"
)

// Amounts arrive with whatever exponent they were computed at; responses must
// always carry two fractional digits on the wire.
func TestAccountResponse_AmountsHaveTwoFractionalDigits(t *testing.T) {
	acc := &domain.Account{
		AccountID:      1,
		Number:         "101",
		Name:           "Cash",
		Category:       domain.Asset,
		NormalSide:     domain.DebitSide,
		Statement:      domain.BalanceSheet,
		InitialBalance: decimal.NewFromInt(1000),
		Balance:        decimal.RequireFromString("1100.5"),
		IsActive:       true,
	}

	body, err := json.Marshal(dto.ToAccountResponse(acc))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"initialBalance":"1000.00"`)
	assert.Contains(t, string(body), `"balance":"1100.50"`)
}

func TestEntryResponse_AmountsHaveTwoFractionalDigits(t *testing.T) {
	entry := &domain.JournalEntry{
		EntryID:   7,
		EntryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.Pending,
		Lines: []domain.JournalLine{
			{LineID: 1, AccountID: 1, Debit: decimal.NewFromInt(100), LineOrder: 1},
			{LineID: 2, AccountID: 2, Credit: decimal.NewFromInt(100), LineOrder: 2},
		},
	}

	body, err := json.Marshal(dto.ToEntryResponse(entry))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"debit":"100.00"`)
	assert.Contains(t, string(body), `"credit":"100.00"`)
	assert.Contains(t, string(body), `"totalDebits":"100.00"`)
	assert.Contains(t, string(body), `"totalCredits":"100.00"`)
}

func TestLedgerResponse_AmountsHaveTwoFractionalDigits(t *testing.T) {
	ledger := &domain.AccountLedger{
		Account:        domain.Account{AccountID: 1, Number: "101", Name: "Cash"},
		OpeningBalance: decimal.NewFromInt(1000),
		Lines: []domain.LedgerLine{
			{
				EntryID:        3,
				EntryDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
				Debit:          decimal.NewFromInt(100),
				RunningBalance: decimal.NewFromInt(1100),
			},
		},
		ClosingBalance: decimal.NewFromInt(1100),
	}

	body, err := json.Marshal(dto.ToLedgerResponse(ledger))
	require.NoError(t, err)

	assert.Contains(t, string(body), `"openingBalance":"1000.00"`)
	assert.Contains(t, string(body), `"runningBalance":"1100.00"`)
	assert.Contains(t, string(body), `"closingBalance":"1100.00"`)
}
