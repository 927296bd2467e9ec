package accounting

import (
	"testing"

	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedDelta(t *testing.T) {
	debitLine := domain.JournalLine{AccountID: 1, Debit: decimal.NewFromInt(100)}
	creditLine := domain.JournalLine{AccountID: 2, Credit: decimal.NewFromInt(100)}

	t.Run("debit normal account grows with debits", func(t *testing.T) {
		delta, err := SignedDelta(debitLine, domain.DebitSide)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(100)), "got %s", delta)

		delta, err = SignedDelta(creditLine, domain.DebitSide)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-100)), "got %s", delta)
	})

	t.Run("credit normal account grows with credits", func(t *testing.T) {
		delta, err := SignedDelta(creditLine, domain.CreditSide)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(100)), "got %s", delta)

		delta, err = SignedDelta(debitLine, domain.CreditSide)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-100)), "got %s", delta)
	})

	t.Run("unknown normal side is an error", func(t *testing.T) {
		_, err := SignedDelta(debitLine, domain.NormalSide("SIDEWAYS"))
		assert.Error(t, err)
	})
}

func TestSignedDeltaMirrorsSignedMovement(t *testing.T) {
	// A single line and the aggregate of that line must move a balance
	// identically, otherwise posting and reporting drift apart.
	debit := decimal.RequireFromString("12.34")
	credit := decimal.RequireFromString("5.67")
	line := domain.JournalLine{Debit: debit, Credit: credit}

	for _, side := range []domain.NormalSide{domain.DebitSide, domain.CreditSide} {
		delta, err := SignedDelta(line, side)
		require.NoError(t, err)
		movement := SignedMovement(debit, credit, side)
		assert.True(t, delta.Equal(movement), "side %s: delta %s movement %s", side, delta, movement)
	}
}

func TestSignedMovement(t *testing.T) {
	debits := decimal.NewFromInt(250)
	credits := decimal.NewFromInt(100)

	assert.True(t, SignedMovement(debits, credits, domain.DebitSide).Equal(decimal.NewFromInt(150)))
	assert.True(t, SignedMovement(debits, credits, domain.CreditSide).Equal(decimal.NewFromInt(-150)))
}
