package bankroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(-1, 1, 0.3)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(1000, 0, 0.3)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(1000, 1.5, 0.3)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(1000, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(1000, 1, 1.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDepositAndWithdraw(t *testing.T) {
	br, err := New(1000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, br.TotalFunds())
	assert.Equal(t, 1000.0, br.BettableFunds())

	require.NoError(t, br.Deposit(500))
	assert.Equal(t, 1500.0, br.TotalFunds())

	require.NoError(t, br.Withdraw(500))
	assert.Equal(t, 1000.0, br.TotalFunds())

	assert.ErrorIs(t, br.Deposit(0), ErrInvalidAmount)
	assert.ErrorIs(t, br.Deposit(-5), ErrInvalidAmount)
	assert.ErrorIs(t, br.Withdraw(-5), ErrInvalidAmount)
	assert.ErrorIs(t, br.Withdraw(2000), ErrInsufficientFunds)

	// Failed operations leave the balance untouched.
	assert.Equal(t, 1000.0, br.TotalFunds())
}

func TestPercentBettable(t *testing.T) {
	br, err := New(1000, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, br.BettableFunds())
	assert.Equal(t, 1000.0, br.TotalFunds())

	require.NoError(t, br.Deposit(500))
	assert.Equal(t, 750.0, br.BettableFunds())
}

func TestHistoryAppendsPerTransaction(t *testing.T) {
	br, err := New(1000, 1, 1)
	require.NoError(t, err)
	require.NoError(t, br.Deposit(100))
	require.NoError(t, br.Withdraw(50))

	assert.Equal(t, []float64{1000, 1100, 1050}, br.History())
}

func TestSettleBetWinAndLoss(t *testing.T) {
	br, err := New(1000, 1, 1)
	require.NoError(t, err)

	require.NoError(t, br.SettleBet(Settlement{Stake: 100, Won: true, Payoff: 1, Loss: 1, TransactionCost: 1}))
	assert.Equal(t, 1099.0, br.TotalFunds())

	require.NoError(t, br.SettleBet(Settlement{Stake: 100, Won: false, Payoff: 1, Loss: 1, TransactionCost: 1}))
	assert.Equal(t, 998.0, br.TotalFunds())
}

func TestSettleBetZeroStakeChargesNothing(t *testing.T) {
	br, err := New(1000, 1, 0.3)
	require.NoError(t, err)

	require.NoError(t, br.SettleBet(Settlement{Stake: 0, Won: false, Payoff: 1, Loss: 1, TransactionCost: 5}))
	assert.Equal(t, 1000.0, br.TotalFunds())
}

func TestSettleBetStakeValidation(t *testing.T) {
	br, err := New(1000, 0.5, 1)
	require.NoError(t, err)

	err = br.SettleBet(Settlement{Stake: -1, Payoff: 1, Loss: 1})
	assert.ErrorIs(t, err, ErrInvalidStake)

	err = br.SettleBet(Settlement{Stake: 600, Payoff: 1, Loss: 1})
	assert.ErrorIs(t, err, ErrInvalidStake)

	// Recoverable failures leave state alone.
	assert.Equal(t, 1000.0, br.TotalFunds())
	assert.False(t, br.Ruined())
}

func TestSettleBetBankruptcyBranch(t *testing.T) {
	// Losing stake would bring funds to -50: rejected before commit.
	br, err := New(1000, 1, 0.3)
	require.NoError(t, err)

	err = br.SettleBet(Settlement{Stake: 1000, Won: false, Payoff: 1, Loss: 1.05})
	var ruin *RuinError
	require.ErrorAs(t, err, &ruin)
	assert.ErrorIs(t, err, ErrRuin)

	assert.Equal(t, 1000.0, br.TotalFunds())
	assert.True(t, br.Ruined())
	assert.Equal(t, []float64{1000}, br.History())
}

func TestSettleBetDrawdownBranch(t *testing.T) {
	// Losing 350 brings funds to 650, a 35% drawdown against a 30% limit:
	// the balance is committed, then the ruin is raised.
	br, err := New(1000, 1, 0.3)
	require.NoError(t, err)

	err = br.SettleBet(Settlement{Stake: 350, Won: false, Payoff: 1, Loss: 1})
	var ruin *RuinError
	require.ErrorAs(t, err, &ruin)
	assert.Equal(t, 650.0, ruin.Balance)
	assert.Equal(t, 700.0, ruin.Floor)

	assert.Equal(t, 650.0, br.TotalFunds())
	assert.True(t, br.Ruined())
	assert.Equal(t, []float64{1000, 650}, br.History())
}

func TestBankruptcyCheckedBeforeDrawdown(t *testing.T) {
	// A settlement that fails both checks reports bankruptcy and commits nothing.
	br, err := New(100, 1, 0.5)
	require.NoError(t, err)

	err = br.SettleBet(Settlement{Stake: 100, Won: false, Payoff: 1, Loss: 1.5})
	var ruin *RuinError
	require.ErrorAs(t, err, &ruin)
	assert.Equal(t, 0.0, ruin.Floor)
	assert.Equal(t, 100.0, br.TotalFunds())
}

func TestRuinedBankrollRefusesFurtherBets(t *testing.T) {
	br, err := New(1000, 1, 0.3)
	require.NoError(t, err)

	err = br.SettleBet(Settlement{Stake: 400, Won: false, Payoff: 1, Loss: 1})
	require.ErrorIs(t, err, ErrRuin)

	err = br.SettleBet(Settlement{Stake: 10, Won: true, Payoff: 1, Loss: 1})
	assert.ErrorIs(t, err, ErrRuin)
	assert.Equal(t, 600.0, br.TotalFunds())
}

func TestHistoryNeverNegative(t *testing.T) {
	br, err := New(50, 1, 1)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		stake := br.BettableFunds()
		if stake == 0 {
			break
		}
		if err := br.SettleBet(Settlement{Stake: stake, Won: false, Payoff: 1, Loss: 0.5}); err != nil {
			break
		}
	}
	for _, v := range br.History() {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
