// Package bankroll holds betting capital and enforces the solvency and
// drawdown invariants every settlement must respect.
package bankroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bankroll manages funds for a single simulation run. It tracks a balance
// history, limits how much of the balance any one bet may touch, and refuses
// transitions that would breach the drawdown floor or drive the balance
// negative. It is not safe for concurrent use; each run gets its own instance.
type Bankroll struct {
	bank            float64
	initialFunds    float64
	percentBettable float64
	maxDrawDown     float64
	history         []float64
	ruined          bool
}

// New creates a bankroll with the given starting funds and risk limits.
// percentBettable and maxDrawDown must both be in (0, 1]. The drawdown floor
// is measured against initialFunds, a fixed baseline; a high-water-mark
// variant is a possible extension but is deliberately not implemented.
func New(initialFunds, percentBettable, maxDrawDown float64) (*Bankroll, error) {
	if initialFunds < 0 {
		return nil, fmt.Errorf("%w: initial funds must be non-negative, got %v", ErrInvalidParameter, initialFunds)
	}
	if percentBettable <= 0 || percentBettable > 1 {
		return nil, fmt.Errorf("%w: percent bettable must be in (0, 1], got %v", ErrInvalidParameter, percentBettable)
	}
	if maxDrawDown <= 0 || maxDrawDown > 1 {
		return nil, fmt.Errorf("%w: max drawdown must be in (0, 1], got %v", ErrInvalidParameter, maxDrawDown)
	}
	b := &Bankroll{
		bank:            initialFunds,
		initialFunds:    initialFunds,
		percentBettable: percentBettable,
		maxDrawDown:     maxDrawDown,
	}
	b.record()
	return b, nil
}

// roundCents rounds a monetary value to two decimal places.
func roundCents(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

func (b *Bankroll) record() {
	b.history = append(b.history, b.TotalFunds())
}

// TotalFunds returns the current balance, rounded to cents.
func (b *Bankroll) TotalFunds() float64 {
	return roundCents(b.bank)
}

// InitialFunds returns the balance at construction.
func (b *Bankroll) InitialFunds() float64 {
	return b.initialFunds
}

// BettableFunds returns the portion of the balance eligible for a single bet.
func (b *Bankroll) BettableFunds() float64 {
	return roundCents(b.bank * b.percentBettable)
}

// DrawdownFloor returns the balance below which the bankroll is ruined.
func (b *Bankroll) DrawdownFloor() float64 {
	return roundCents(b.initialFunds * (1 - b.maxDrawDown))
}

// Ruined reports whether a settlement has breached the loss tolerance.
func (b *Bankroll) Ruined() bool {
	return b.ruined
}

// History returns a copy of the balance after each recorded transaction.
func (b *Bankroll) History() []float64 {
	out := make([]float64, len(b.history))
	copy(out, b.history)
	return out
}

// Deposit adds funds to the bankroll.
func (b *Bankroll) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit of %v", ErrInvalidAmount, amount)
	}
	b.bank += amount
	b.record()
	return nil
}

// Withdraw removes funds from the bankroll. Withdrawals are an owner
// operation, not a bet, so they are bounded by the balance rather than the
// drawdown floor.
func (b *Bankroll) Withdraw(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal of %v", ErrInvalidAmount, amount)
	}
	if amount > b.TotalFunds() {
		return fmt.Errorf("%w: withdrawal of %v exceeds balance %v", ErrInsufficientFunds, amount, b.TotalFunds())
	}
	b.bank -= amount
	b.record()
	return nil
}

// Settlement describes the resolution of a single bet. Payoff and Loss are
// per-unit-staked multipliers; TransactionCost is a fixed cost charged only
// when the stake is non-zero.
type Settlement struct {
	Stake           float64
	Won             bool
	Payoff          float64
	Loss            float64
	TransactionCost float64
}

// SettleBet applies a bet outcome to the bankroll.
//
// The tentative balance is computed first. A balance that would go negative
// is rejected before commit: the bankroll is flagged ruined, the state is
// left untouched, and a RuinError is returned. A balance that stays
// non-negative but breaches the drawdown floor is committed and recorded,
// then flagged: the RuinError is returned with the out-of-bounds balance
// already observable. Callers rely on this bankruptcy-before-drawdown
// ordering to decide whether the final balance is trustworthy.
func (b *Bankroll) SettleBet(s Settlement) error {
	if b.ruined {
		return &RuinError{Balance: b.TotalFunds(), Floor: b.DrawdownFloor(), Reason: "no further bets accepted"}
	}
	if s.Stake < 0 {
		return fmt.Errorf("%w: stake %v is negative", ErrInvalidStake, s.Stake)
	}
	if s.Stake > b.BettableFunds() {
		return fmt.Errorf("%w: stake %v exceeds bettable funds %v", ErrInvalidStake, s.Stake, b.BettableFunds())
	}
	if s.Payoff < 0 || s.Loss < 0 || s.TransactionCost < 0 {
		return fmt.Errorf("%w: negative payoff, loss or transaction cost", ErrInvalidStake)
	}

	var change float64
	if s.Won {
		change = s.Stake * s.Payoff
	} else {
		change = -s.Stake * s.Loss
	}
	if s.Stake > 0 {
		change -= s.TransactionCost
	}

	tentative := b.bank + change
	if tentative < 0 {
		b.ruined = true
		return &RuinError{Balance: roundCents(tentative), Reason: "settlement would bankrupt the bankroll"}
	}

	b.bank = tentative
	b.record()

	if floor := b.initialFunds * (1 - b.maxDrawDown); tentative < floor {
		b.ruined = true
		return &RuinError{
			Balance: b.TotalFunds(),
			Floor:   roundCents(floor),
			Reason:  "drawdown limit breached",
		}
	}
	return nil
}
