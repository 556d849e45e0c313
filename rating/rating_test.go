package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

func TestComputeFromSets(t *testing.T) {
	tests := []struct {
		name string
		sets []models.SetScore
		want SetSummary
	}{
		{
			name: "three sets decided",
			sets: []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 6, B: 2}},
			want: SetSummary{Winner: models.SideA, SetsA: 2, SetsB: 1, GamesA: 16, GamesB: 12},
		},
		{
			name: "one set all, third not played",
			sets: []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}},
			want: SetSummary{Winner: models.SideNone, SetsA: 1, SetsB: 1, GamesA: 10, GamesB: 10},
		},
		{
			name: "empty set list",
			sets: nil,
			want: SetSummary{},
		},
		{
			name: "tied set counts for neither side",
			sets: []models.SetScore{{A: 5, B: 5}},
			want: SetSummary{Winner: models.SideNone, GamesA: 5, GamesB: 5},
		},
		{
			name: "straight sets for B",
			sets: []models.SetScore{{A: 3, B: 6}, {A: 2, B: 6}},
			want: SetSummary{Winner: models.SideB, SetsB: 2, GamesA: 5, GamesB: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFromSets(tt.sets))
		})
	}
}

func TestDefaultFactor(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultFactor(0), 1e-9, "equal ratings give the neutral factor")
	assert.InDelta(t, 2.0/1.1, DefaultFactor(600), 1e-9)
	assert.InDelta(t, 2.0/11.0, DefaultFactor(-600), 1e-9)

	// Monotonic in the gap, bounded in (0, 2) for every finite input.
	prev := math.Inf(-1)
	for gap := -3000.0; gap <= 3000.0; gap += 250 {
		f := DefaultFactor(gap)
		assert.Greater(t, f, 0.0, "gap %v", gap)
		assert.Less(t, f, 2.0, "gap %v", gap)
		assert.Greater(t, f, prev, "factor must increase with gap")
		prev = f
	}
}

func TestEngineFactorGuard(t *testing.T) {
	assert.Equal(t, 0.0, NewEngine(func(float64) float64 { return math.NaN() }).Factor(100))
	assert.Equal(t, 0.0, NewEngine(func(float64) float64 { return -0.5 }).Factor(100))
	assert.InDelta(t, 1.0, NewEngine(nil).Factor(0), 1e-9, "nil curve falls back to the default")
}

func TestPointsForMatch(t *testing.T) {
	assert.Equal(t, 24, PointsForMatch(1000, 1000, 4, 1.0))
	assert.Equal(t, 0, PointsForMatch(1000, 1000, 4, 0))

	// Rounding is half away from zero on both sides.
	assert.Equal(t, 3, PointsForMatch(125, 125, 0, 1.0))
	assert.Equal(t, -3, PointsForMatch(100, 50, -4, 1.0))
}

func TestComputeDelta(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("side A wins between equal teams", func(t *testing.T) {
		delta := engine.ComputeDelta(1000, 1000, []models.SetScore{{A: 6, B: 4}, {A: 6, B: 4}})
		require.Equal(t, models.SideA, delta.Summary.Winner)
		assert.InDelta(t, 1.0, delta.Factor, 1e-9)
		assert.Equal(t, 24, delta.Points)
	})

	t.Run("side B win orients the formula the same way", func(t *testing.T) {
		delta := engine.ComputeDelta(1000, 1000, []models.SetScore{{A: 4, B: 6}, {A: 4, B: 6}})
		require.Equal(t, models.SideB, delta.Summary.Winner)
		assert.Equal(t, 24, delta.Points)
	})

	t.Run("upset pays more than the neutral factor", func(t *testing.T) {
		delta := engine.ComputeDelta(400, 1000, []models.SetScore{{A: 6, B: 0}, {A: 6, B: 0}})
		require.Equal(t, models.SideA, delta.Summary.Winner)
		assert.InDelta(t, 2.0/1.1, delta.Factor, 1e-9)
		assert.Equal(t, 47, delta.Points)
	})

	t.Run("undecided sets yield a zero delta", func(t *testing.T) {
		delta := engine.ComputeDelta(1000, 1000, []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}})
		assert.Equal(t, models.SideNone, delta.Summary.Winner)
		assert.Equal(t, 0, delta.Points)
	})
}
