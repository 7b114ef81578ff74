package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPPICushionSizing(t *testing.T) {
	s, err := NewCPPI(1, 1, 0, 0.5, 2, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, s.Floor(), 1e-12)

	// Cushion 500, exposure 1000 capped at the bankroll.
	assert.InDelta(t, 1.0, s.Evaluate(0.6, 1000), 1e-12)

	s.UpdateBankroll(600)
	assert.InDelta(t, 200.0/600.0, s.Evaluate(0.6, 600), 1e-9)

	s.UpdateBankroll(500)
	assert.Equal(t, 0.0, s.Evaluate(0.6, 500))

	s.UpdateBankroll(400)
	assert.Equal(t, 0.0, s.Evaluate(0.6, 400))
}

func TestCPPIFloorStaysFixedAsBankrollGrows(t *testing.T) {
	s, err := NewCPPI(1, 1, 0, 0.5, 1, 1000)
	require.NoError(t, err)

	s.UpdateBankroll(2000)
	// Floor remains 500 of the initial bankroll, cushion is 1500.
	assert.InDelta(t, 500.0, s.Floor(), 1e-12)
	assert.InDelta(t, 1500.0/2000.0, s.Evaluate(0.6, 2000), 1e-9)
}

func TestCPPIIgnoresProbability(t *testing.T) {
	s, err := NewCPPI(1, 1, 0, 0.5, 1, 1000)
	require.NoError(t, err)

	assert.Equal(t, s.Evaluate(0.1, 1000), s.Evaluate(0.9, 1000))
}

func TestCPPIValidation(t *testing.T) {
	_, err := NewCPPI(1, 1, 0, 0, 2, 1000)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewCPPI(1, 1, 0, 1, 2, 1000)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewCPPI(1, 1, 0, 0.5, 0, 1000)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewCPPI(1, 1, 0, 0.5, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCPPIEntryPriceIsCushion(t *testing.T) {
	s, err := NewCPPI(1, 1, 0, 0.5, 2, 1000)
	require.NoError(t, err)

	outcomes := []float64{100, -50}
	probs := []float64{0.6, 0.4}

	// Cushion 300 is below half of wealth.
	price, err := s.MaxEntryPrice(outcomes, probs, 800)
	require.NoError(t, err)
	assert.InDelta(t, 300.0, price, 1e-12)

	// Cushion 1500 exceeds the search bound of half of wealth.
	price, err = s.MaxEntryPrice(outcomes, probs, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, price, 1e-12)

	// At or below the floor nothing is payable.
	price, err = s.MaxEntryPrice(outcomes, probs, 400)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}
