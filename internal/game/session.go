// internal/game/session.go
package game

import (
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/betsim/internal/rng"
)

// Outcome classifies a finished session.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
)

// String returns the outcome label.
func (o Outcome) String() string {
	if o == OutcomeWin {
		return "win"
	}
	return "loss"
}

// PlaySession plays p.Rounds rounds and returns the final balance.
// The wager is paid every round; a draw equal to p.WinValue credits
// Wager*PayoutMultiplier back.
func PlaySession(p Params, src rng.Source) decimal.Decimal {
	balance := p.StartingBalance
	payout := p.Wager.Mul(p.PayoutMultiplier)

	for i := 0; i < p.Rounds; i++ {
		draw := src.IntRange(p.DrawMin, p.DrawMax)
		balance = balance.Sub(p.Wager)
		if draw == p.WinValue {
			balance = balance.Add(payout)
		}
	}

	return balance
}

// Classify reports a win only when the final balance is strictly above the
// starting balance. Breaking even is a loss.
func Classify(p Params, final decimal.Decimal) Outcome {
	if final.GreaterThan(p.StartingBalance) {
		return OutcomeWin
	}
	return OutcomeLoss
}
