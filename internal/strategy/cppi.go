package strategy

import "fmt"

// CPPI implements constant proportion portfolio insurance: exposure is a
// multiple of the cushion above a protected floor, so bets shrink towards
// zero as the bankroll approaches the floor and never touch the floor
// capital itself.
//
// The tracked bankroll is mutated only through UpdateBankroll; Evaluate never
// infers it from its arguments. Simulators must call UpdateBankroll before
// each Evaluate.
type CPPI struct {
	base
	floor           float64
	multiplier      float64
	trackedBankroll float64
}

// NewCPPI creates a CPPI strategy. floorFraction must be in (0, 1),
// multiplier and initialBankroll positive. The floor is fixed at
// floorFraction of the initial bankroll.
func NewCPPI(payoff, loss, transactionCost, floorFraction, multiplier, initialBankroll float64) (*CPPI, error) {
	if floorFraction <= 0 || floorFraction >= 1 {
		return nil, fmt.Errorf("%w: floor fraction must be in (0, 1), got %v", ErrInvalidParameter, floorFraction)
	}
	if multiplier <= 0 {
		return nil, fmt.Errorf("%w: multiplier must be greater than 0, got %v", ErrInvalidParameter, multiplier)
	}
	if initialBankroll <= 0 {
		return nil, fmt.Errorf("%w: initial bankroll must be greater than 0, got %v", ErrInvalidParameter, initialBankroll)
	}
	b, err := newBase(payoff, loss, transactionCost)
	if err != nil {
		return nil, err
	}
	return &CPPI{
		base:            b,
		floor:           floorFraction * initialBankroll,
		multiplier:      multiplier,
		trackedBankroll: initialBankroll,
	}, nil
}

// Name returns the strategy name.
func (s *CPPI) Name() string { return "cppi" }

// Floor returns the protected capital level.
func (s *CPPI) Floor() float64 { return s.floor }

// UpdateBankroll records the current bankroll used for cushion sizing.
func (s *CPPI) UpdateBankroll(currentBankroll float64) {
	s.trackedBankroll = currentBankroll
}

// Evaluate returns multiplier times the cushion above the floor, expressed as
// a fraction of the tracked bankroll and capped at the whole of it.
func (s *CPPI) Evaluate(probability, currentBankroll float64) float64 {
	_ = probability
	if s.trackedBankroll <= 0 {
		return 0
	}
	cushion := s.trackedBankroll - s.floor
	if cushion <= 0 {
		return 0
	}
	exposure := s.multiplier * cushion
	if exposure > s.trackedBankroll {
		exposure = s.trackedBankroll
	}
	return s.clamp(exposure/s.trackedBankroll, currentBankroll)
}

// MaxEntryPrice is the cushion current wealth holds above the floor, capped
// at the search fraction of wealth. Paying more would risk the protected
// capital.
func (s *CPPI) MaxEntryPrice(outcomes, probabilities []float64, currentWealth float64, opts ...PriceOption) (float64, error) {
	if _, err := gambleEV(outcomes, probabilities); err != nil {
		return 0, err
	}
	o := applyPriceOptions(opts)
	cushion := currentWealth - s.floor
	if cushion <= 0 {
		return 0, nil
	}
	if bound := o.maxSearchFraction * currentWealth; cushion > bound {
		return bound, nil
	}
	return cushion, nil
}
