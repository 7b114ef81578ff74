package bankroll

import (
	"errors"
	"fmt"
)

// Custom errors. All but ErrRuin are recoverable: the caller may correct the
// arguments and retry, and the bankroll state is unchanged.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidStake      = errors.New("invalid stake")
	ErrInvalidParameter  = errors.New("invalid bankroll parameter")
	ErrRuin              = errors.New("bankroll ruined")
)

// RuinError is the terminal signal for a simulation run: the bankroll has
// breached its loss tolerance and must not accept further bets.
type RuinError struct {
	Balance float64 // balance after the triggering settlement was evaluated
	Floor   float64 // drawdown floor the balance fell below, 0 for bankruptcy
	Reason  string
}

func (e *RuinError) Error() string {
	return fmt.Sprintf("bankroll ruined: %s (balance %.2f, floor %.2f)", e.Reason, e.Balance, e.Floor)
}

// Unwrap lets callers match with errors.Is(err, ErrRuin).
func (e *RuinError) Unwrap() error {
	return ErrRuin
}
