package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourusername/bankroller/internal/bankroll"
)

// Report summarizes a completed simulation run.
type Report struct {
	RunID         string    `json:"run_id"`
	StrategyName  string    `json:"strategy_name"`
	SimulatorName string    `json:"simulator_name"`
	Trials        int       `json:"trials"`
	TrialsRun     int       `json:"trials_run"`
	Seed          int64     `json:"seed"`
	InitialFunds  float64   `json:"initial_funds"`
	FinalFunds    float64   `json:"final_funds"`
	TotalReturn   float64   `json:"total_return"`
	MaxDrawdown   float64   `json:"max_drawdown"`
	BetsPlaced    int       `json:"bets_placed"`
	WinRate       float64   `json:"win_rate"`
	Ruined        bool      `json:"ruined"`
	RuinReason    string    `json:"ruin_reason,omitempty"`
	History       []float64 `json:"history"`
}

// finish fills the fields derived from the bankroll's final state.
func (r *Report) finish(br *bankroll.Bankroll, betsPlaced, wins int) {
	r.FinalFunds = br.TotalFunds()
	r.History = br.History()
	r.BetsPlaced = betsPlaced
	if r.InitialFunds > 0 {
		r.TotalReturn = (r.FinalFunds - r.InitialFunds) / r.InitialFunds
	}
	if betsPlaced > 0 {
		r.WinRate = float64(wins) / float64(betsPlaced)
	}
	r.MaxDrawdown = maxDrawdown(r.History)
}

// maxDrawdown returns the largest peak-to-trough decline over a balance
// history, as a fraction of the peak.
func maxDrawdown(history []float64) float64 {
	peak, worst := 0.0, 0.0
	for _, balance := range history {
		if balance > peak {
			peak = balance
		}
		if peak > 0 {
			if dd := (peak - balance) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
