// internal/game/params.go
package game

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Params holds the fixed rules of the game. None of them change during a run.
type Params struct {
	// StartingBalance is the balance every session starts from, and the
	// threshold a session has to beat to count as a win.
	StartingBalance decimal.Decimal
	// Wager is paid on every round, win or lose.
	Wager decimal.Decimal
	// PayoutMultiplier scales the wager credited back on a winning round.
	PayoutMultiplier decimal.Decimal
	// Rounds is the number of rounds in one session.
	Rounds int
	// DrawMin and DrawMax bound the closed range each round draws from.
	DrawMin int
	DrawMax int
	// WinValue is the draw that wins a round.
	WinValue int
}

// Defaults: 100 starting balance, 5 per round, 3.92x payout, 100 rounds,
// one winning face out of four.
const (
	DefaultRounds   = 100
	DefaultDrawMin  = 1
	DefaultDrawMax  = 4
	DefaultWinValue = 1
)

var (
	DefaultStartingBalance  = decimal.NewFromInt(100)
	DefaultWager            = decimal.NewFromInt(5)
	DefaultPayoutMultiplier = decimal.RequireFromString("3.92")
)

var (
	ErrNegativeRounds = errors.New("rounds must not be negative")
	ErrInvalidWager   = errors.New("wager must be positive")
	ErrInvalidPayout  = errors.New("payout multiplier must not be negative")
	ErrEmptyDrawRange = errors.New("draw range is empty")
)

// DefaultParams returns the standard game.
func DefaultParams() Params {
	return Params{
		StartingBalance:  DefaultStartingBalance,
		Wager:            DefaultWager,
		PayoutMultiplier: DefaultPayoutMultiplier,
		Rounds:           DefaultRounds,
		DrawMin:          DefaultDrawMin,
		DrawMax:          DefaultDrawMax,
		WinValue:         DefaultWinValue,
	}
}

// Validate checks that the parameters describe a playable game.
func (p Params) Validate() error {
	if p.Rounds < 0 {
		return ErrNegativeRounds
	}
	if !p.Wager.IsPositive() {
		return ErrInvalidWager
	}
	if p.PayoutMultiplier.IsNegative() {
		return ErrInvalidPayout
	}
	if p.DrawMin > p.DrawMax {
		return ErrEmptyDrawRange
	}
	if p.WinValue < p.DrawMin || p.WinValue > p.DrawMax {
		return fmt.Errorf("win value %d outside draw range [%d, %d]", p.WinValue, p.DrawMin, p.DrawMax)
	}
	return nil
}

// WinProbability is the chance of a single round drawing WinValue.
func (p Params) WinProbability() decimal.Decimal {
	faces := decimal.NewFromInt(int64(p.DrawMax - p.DrawMin + 1))
	return decimal.NewFromInt(1).Div(faces)
}

// RoundWin is the net change of a winning round: W*(M-1).
func (p Params) RoundWin() decimal.Decimal {
	return p.Wager.Mul(p.PayoutMultiplier).Sub(p.Wager)
}

// RoundLoss is the net change of a losing round: -W.
func (p Params) RoundLoss() decimal.Decimal {
	return p.Wager.Neg()
}

// ExpectedRoundValue is the mean net change of one round.
// With the default 3.92 payout at 1 in 4 it is -0.10, a small house edge.
func (p Params) ExpectedRoundValue() decimal.Decimal {
	q := p.WinProbability()
	return q.Mul(p.RoundWin()).Add(decimal.NewFromInt(1).Sub(q).Mul(p.RoundLoss()))
}

// Bounds returns the lowest and highest final balance a session can reach.
func (p Params) Bounds() (lo, hi decimal.Decimal) {
	rounds := decimal.NewFromInt(int64(p.Rounds))
	allLost := p.StartingBalance.Add(rounds.Mul(p.RoundLoss()))
	allWon := p.StartingBalance.Add(rounds.Mul(p.RoundWin()))
	if allWon.LessThan(allLost) {
		return allWon, allLost
	}
	return allLost, allWon
}
