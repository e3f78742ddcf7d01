package app

import (
	"testing"

	"github.com/dmedina-dev/pos-tienda/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashWorkflow(t *testing.T) {
	t.Run("tendered equals total -> change zero, validated", func(t *testing.T) {
		w := NewWorkflow(4750)
		require.NoError(t, w.SelectMethod(domain.MethodCash))
		require.NoError(t, w.EnterAmount("47.50"))

		state, err := w.Validate()
		require.NoError(t, err)
		assert.Equal(t, Validated, state)
		assert.Equal(t, int64(0), w.ChangeCents())
	})

	t.Run("a cent short -> rejected, correctable", func(t *testing.T) {
		w := NewWorkflow(4750)
		require.NoError(t, w.SelectMethod(domain.MethodCash))
		require.NoError(t, w.EnterAmount("47.49"))

		state, err := w.Validate()
		require.NoError(t, err)
		assert.Equal(t, Rejected, state)

		require.Error(t, w.Confirm())

		// The operator re-enters a larger amount.
		require.NoError(t, w.EnterAmount("50.00"))
		state, err = w.Validate()
		require.NoError(t, err)
		assert.Equal(t, Validated, state)
		require.NoError(t, w.Confirm())

		attempt, err := w.Attempt()
		require.NoError(t, err)
		assert.Equal(t, int64(5000), attempt.TenderedCents)
		assert.Equal(t, int64(250), attempt.ChangeCents)
	})

	t.Run("empty amount defaults to exact pay", func(t *testing.T) {
		w := NewWorkflow(1000)
		require.NoError(t, w.SelectMethod(domain.MethodCash))
		require.NoError(t, w.EnterAmount(""))

		state, err := w.Validate()
		require.NoError(t, err)
		assert.Equal(t, Validated, state)
	})

	t.Run("garbage amount -> validation error", func(t *testing.T) {
		w := NewWorkflow(1000)
		require.NoError(t, w.SelectMethod(domain.MethodCash))
		require.ErrorIs(t, w.EnterAmount("diez"), ErrValidation)
		require.ErrorIs(t, w.EnterAmount("-5"), ErrValidation)
		require.ErrorIs(t, w.EnterAmount("10.005"), ErrValidation)
	})
}

func TestNonCashWorkflow(t *testing.T) {
	t.Run("reference required", func(t *testing.T) {
		w := NewWorkflow(4750)
		require.NoError(t, w.SelectMethod(domain.MethodCredit))

		state, err := w.Validate()
		require.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, Rejected, state)

		require.NoError(t, w.EnterReference("AUTH-123"))
		state, err = w.Validate()
		require.NoError(t, err)
		assert.Equal(t, Validated, state)
	})

	t.Run("exact pay, no change", func(t *testing.T) {
		w := NewWorkflow(4750)
		require.NoError(t, w.SelectMethod(domain.MethodTransfer))
		require.NoError(t, w.EnterReference("SPEI-9"))
		_, err := w.Validate()
		require.NoError(t, err)
		require.NoError(t, w.Confirm())

		attempt, err := w.Attempt()
		require.NoError(t, err)
		assert.Equal(t, int64(4750), attempt.TenderedCents)
		assert.Equal(t, int64(0), attempt.ChangeCents)
		assert.Equal(t, "SPEI-9", attempt.Reference)
	})

	t.Run("explicit amount rejected for non-cash", func(t *testing.T) {
		w := NewWorkflow(4750)
		require.NoError(t, w.SelectMethod(domain.MethodDebit))
		require.ErrorIs(t, w.EnterAmount("50.00"), ErrValidation)
	})
}

func TestWorkflowStateFences(t *testing.T) {
	w := NewWorkflow(1000)

	// Nothing but method selection works from Idle.
	require.ErrorIs(t, w.EnterAmount("10.00"), ErrInvalidState)
	_, err := w.Validate()
	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorIs(t, w.Confirm(), ErrInvalidState)
	_, err = w.Attempt()
	require.ErrorIs(t, err, ErrNotConfirmed)

	require.NoError(t, w.SelectMethod(domain.MethodCash))
	require.NoError(t, w.EnterAmount("10.00"))
	_, err = w.Validate()
	require.NoError(t, err)
	require.NoError(t, w.Confirm())

	// Confirmed is terminal.
	require.ErrorIs(t, w.SelectMethod(domain.MethodCash), ErrInvalidState)
	require.ErrorIs(t, w.EnterAmount("99.00"), ErrInvalidState)
}

func TestChangeBreakdown(t *testing.T) {
	t.Run("2.50 -> one 2 and one 0.50", func(t *testing.T) {
		b := domain.ChangeBreakdown(250)
		require.Equal(t, []domain.DenominationCount{
			{UnitCents: 200, Count: 1},
			{UnitCents: 50, Count: 1},
		}, b.Lines)
		assert.Equal(t, int64(0), b.RemainderCents)
	})

	t.Run("residual below the smallest denomination", func(t *testing.T) {
		b := domain.ChangeBreakdown(1787)
		require.Equal(t, []domain.DenominationCount{
			{UnitCents: 1000, Count: 1},
			{UnitCents: 500, Count: 1},
			{UnitCents: 200, Count: 1},
			{UnitCents: 50, Count: 1},
			{UnitCents: 20, Count: 1},
			{UnitCents: 10, Count: 1},
		}, b.Lines)
		assert.Equal(t, int64(7), b.RemainderCents)
	})

	t.Run("zero change", func(t *testing.T) {
		b := domain.ChangeBreakdown(0)
		assert.Empty(t, b.Lines)
		assert.Equal(t, int64(0), b.RemainderCents)
	})
}

func TestParseMethod(t *testing.T) {
	m, err := domain.ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodCash, m)

	m, err = domain.ParseMethod(" Credit_Card ")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodCredit, m)

	_, err = domain.ParseMethod("barter")
	require.Error(t, err)
}
