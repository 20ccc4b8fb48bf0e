package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMCTS(t *testing.T) {
	t.Run("finds the winning nim move", func(t *testing.T) {
		cases := []struct {
			stones int
			want   int
		}{
			{stones: 4, want: 1},
			{stones: 5, want: 2},
			{stones: 2, want: 2},
		}
		for _, tc := range cases {
			m := NewMCTS(1, WithEpisodes(2000), WithSeed(1))

			move, ok := m.FindNextMove(nim{stones: tc.stones})

			require.True(t, ok)
			require.Equal(t, tc.want, move, "stones=%d", tc.stones)
		}
	})

	t.Run("policy sums to one", func(t *testing.T) {
		m := NewMCTS(4, WithEpisodes(500), WithMetrics())

		policy, metric := m.Simulate(nim{stones: 6})

		total := 0.0
		for _, share := range policy {
			total += share
		}
		require.InDelta(t, 1.0, total, 1e-9)
		require.Len(t, policy, 2)
		require.Equal(t, int64(500), metric.Episodes)
		require.Equal(t, int64(500), metric.FullPlayouts)
	})

	t.Run("cutoff playouts use the evaluation function", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(50), WithCutoff(1), WithMetrics(), WithEvaluationFn(func(State, string) float64 {
			return 0
		}))

		_, metric := m.Simulate(nim{stones: 20})

		require.Positive(t, metric.CutoffPlayouts)
	})

	t.Run("single legal move skips the search", func(t *testing.T) {
		m := NewMCTS(1, WithEpisodes(10))

		move, ok := m.FindNextMove(nim{stones: 1})

		require.True(t, ok)
		require.Equal(t, 1, move)
	})

	t.Run("requires a budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(1) })
	})
}
