// Package rating implements the RPA match-rating computation: set
// counting, the rating-gap damping factor and the match point formula.
// Everything here is pure arithmetic with no I/O.
package rating

import (
	"math"

	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

// SetSummary is the outcome of counting a set sequence. Winner is
// SideNone when neither side has strictly more sets, e.g. 1-1 with the
// deciding set not yet played.
type SetSummary struct {
	Winner models.Side
	SetsA  int
	SetsB  int
	GamesA int
	GamesB int
}

// ComputeFromSets counts sets and games per side. A set is won by the
// side with strictly more games in it; a tied set counts for neither.
// An empty or all-zero set list yields zero counts and no winner, it
// is not an error.
func ComputeFromSets(sets []models.SetScore) SetSummary {
	var s SetSummary
	for _, set := range sets {
		s.GamesA += set.A
		s.GamesB += set.B
		switch {
		case set.A > set.B:
			s.SetsA++
		case set.B > set.A:
			s.SetsB++
		}
	}
	switch {
	case s.SetsA > s.SetsB:
		s.Winner = models.SideA
	case s.SetsB > s.SetsA:
		s.Winner = models.SideB
	}
	return s
}

// FactorFunc maps the rating gap between the sides to a damping factor
// for the match points. The gap is taken from the winner's perspective
// (loser sum minus winner sum, so a positive gap is an upset). A
// FactorFunc must be total over all reals and never return a negative
// or NaN value.
type FactorFunc func(gap float64) float64

// DefaultFactor is a logistic damping curve: 2 / (1 + 10^(-gap/600)).
// It rewards upsets (factor above 1 for positive gaps) and damps
// expected wins, stays inside (0, 2) for every finite gap, and is
// monotonic increasing in gap.
func DefaultFactor(gap float64) float64 {
	return 2 / (1 + math.Pow(10, -gap/600))
}

// PointsForMatch computes the point delta of a completed match:
//
//	P = round(((sumWinner + sumLoser) / 100 + gameDiff) * factor)
//
// rounded half away from zero. The winner receives +P, the loser -P.
func PointsForMatch(ratingSumWinner, ratingSumLoser float64, gameDiff int, factor float64) int {
	base := (ratingSumWinner+ratingSumLoser)/100 + float64(gameDiff)
	return int(math.Round(base * factor))
}

// MatchDelta is the rating outcome of one completed match.
type MatchDelta struct {
	Summary SetSummary
	// Points is the absolute delta: winner +Points, loser -Points.
	Points int
	// Factor actually used, after the non-negative/NaN guard.
	Factor float64
}

// Engine binds a factor curve to the match formula. The curve is
// pluggable so a club can recalibrate without touching the formula;
// NewEngine(nil) uses DefaultFactor.
type Engine struct {
	factor FactorFunc
}

func NewEngine(factor FactorFunc) *Engine {
	if factor == nil {
		factor = DefaultFactor
	}
	return &Engine{factor: factor}
}

// Factor evaluates the configured curve with the non-negative/NaN
// guard applied: a misbehaving curve degrades to 0, never poisons the
// computation.
func (e *Engine) Factor(gap float64) float64 {
	f := e.factor(gap)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}

// ComputeDelta evaluates a full match: set counting, gap, factor and
// point formula. When the set sequence has no winner the delta is zero
// and Summary.Winner is SideNone.
func (e *Engine) ComputeDelta(ratingSumA, ratingSumB float64, sets []models.SetScore) MatchDelta {
	summary := ComputeFromSets(sets)
	delta := MatchDelta{Summary: summary}
	if summary.Winner == models.SideNone {
		return delta
	}

	sumWinner, sumLoser := ratingSumA, ratingSumB
	gamesWinner, gamesLoser := summary.GamesA, summary.GamesB
	if summary.Winner == models.SideB {
		sumWinner, sumLoser = ratingSumB, ratingSumA
		gamesWinner, gamesLoser = summary.GamesB, summary.GamesA
	}

	gap := sumLoser - sumWinner
	delta.Factor = e.Factor(gap)
	delta.Points = PointsForMatch(sumWinner, sumLoser, gamesWinner-gamesLoser, delta.Factor)
	return delta
}
