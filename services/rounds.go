package services

import "strings"

// RoundKey is a canonical knockout round identifier. The keys double
// as the lookup keys of the knockout bonus table.
type RoundKey string

const (
	RoundOf32       RoundKey = "round_of_32"
	RoundOf16       RoundKey = "round_of_16"
	RoundQuarter    RoundKey = "quarter_finals"
	RoundSemi       RoundKey = "semi_finals"
	RoundFinal      RoundKey = "finals"
	RoundThirdPlace RoundKey = "third_place"
	RoundEliminated RoundKey = "eliminated"
)

// roundMatcher pairs a predicate with the canonical key it selects.
// The list is ordered most-specific first: labels such as "Quarti di
// Finale" or "Semifinal" contain a final keyword but must land on the
// more specific round, so "final" is only reached once every other
// round has been ruled out. Unrecognized labels fall through to
// eliminated, which pays zero points.
type roundMatcher struct {
	match func(string) bool
	key   RoundKey
}

var roundMatchers = []roundMatcher{
	{containsAny("third", "terzo", "3rd", "3°", "bronze"), RoundThirdPlace},
	{containsAny("32", "trentadue"), RoundOf32},
	{containsAny("16", "ottavi", "round of 16", "r16"), RoundOf16},
	{containsAny("quart", "qf"), RoundQuarter},
	{containsAny("semi", "sf"), RoundSemi},
	{containsAny("final"), RoundFinal},
}

// NormalizeRound maps a free-text round label to its canonical key.
// Matching is case-insensitive keyword containment; the first matching
// entry wins.
func NormalizeRound(label string) RoundKey {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return RoundEliminated
	}
	if normalized == "f" {
		return RoundFinal
	}
	for _, m := range roundMatchers {
		if m.match(normalized) {
			return m.key
		}
	}
	return RoundEliminated
}

// RoundOrder returns the display/progression order of a round, early
// rounds first. Eliminated sorts before every real round.
func RoundOrder(key RoundKey) int {
	switch key {
	case RoundOf32:
		return 1
	case RoundOf16:
		return 2
	case RoundQuarter:
		return 3
	case RoundSemi:
		return 4
	case RoundThirdPlace:
		return 5
	case RoundFinal:
		return 6
	default:
		return 0
	}
}

func containsAny(keywords ...string) func(string) bool {
	return func(label string) bool {
		for _, kw := range keywords {
			if strings.Contains(label, kw) {
				return true
			}
		}
		return false
	}
}
