package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gears/game"
)

// playCollected runs a game with the first legal move each turn, feeding c the
// way the engine does.
func playCollected(t *testing.T, seed uint64, c Collector) *game.GameState {
	gs, err := game.NewGame(3, game.WithSeed(seed))
	require.NoError(t, err)

	c.Start(gs)
	round := gs.Round
	gs.Observe(func(m game.Move, s *game.GameState) {
		c.AddMove(m, s)
		if s.Round != round {
			c.EndRound(round, s)
			round = s.Round
		}
	})
	for !gs.IsOver() {
		moves := gs.LegalMoves(false)
		require.NotEmpty(t, moves)
		require.NoError(t, gs.Apply(moves[0]))
	}
	return gs
}

func TestCollector(t *testing.T) {
	/*
		Cases:
		- a finished game yields one round row per round and a histogram matching the move count
		- built deltas over all rounds add up to the final board growth
		- winners carry the top VP
		- the dummy collector records nothing
	*/

	t.Run("full game", func(t *testing.T) {
		c := NewCollector()
		gs := playCollected(t, 11, c)
		m := c.Complete(gs)

		require.Equal(t, uint64(11), m.Seed, "seed")
		require.Equal(t, 3, m.Players, "players")
		require.Equal(t, gs.Rules.Rounds(), m.Rounds, "rounds played")
		require.Len(t, m.PerRound, gs.Rules.Rounds(), "one row per round")
		require.Equal(t, gs.MoveCount, m.Moves, "move count")
		require.Equal(t, "0", m.FirstPlayer, "first seat")

		total := 0
		for _, n := range m.Histogram {
			total += n
		}
		require.Equal(t, m.Moves, total, "histogram covers every move")
		require.Positive(t, m.Histogram[game.FinalizeCleanup.String()], "cleanup tagged")

		for seat := 0; seat < 3; seat++ {
			growth := 0
			for _, r := range m.PerRound {
				growth += r.BuiltDelta[seat]
			}
			require.Equal(t, m.BuiltCount[seat]-3, growth, "built deltas of seat %d", seat)
		}

		require.NotEmpty(t, m.WinnerIDs, "winners")
		best := 0
		for _, vp := range m.PlayerVP {
			best = max(best, vp)
		}
		for _, id := range m.WinnerIDs {
			seat := -1
			for i, pid := range gs.Order {
				if string(pid) == id {
					seat = i
				}
			}
			require.Equal(t, best, m.PlayerVP[seat], "winner %s has top VP", id)
		}
		require.Equal(t, m.PlayerVP, m.PerRound[len(m.PerRound)-1].VP, "last row matches final VP")
	})

	t.Run("dummy", func(t *testing.T) {
		c := NewDummyCollector()
		gs := playCollected(t, 11, c)
		require.Equal(t, GameMetric{}, c.Complete(gs), "nothing recorded")
	})
}

func TestWriters(t *testing.T) {
	/*
		Cases:
		- csv files land in a timestamped folder
		- jsonl round trips with and without zstd, skipping junk lines
	*/

	c := NewCollector()
	gs := playCollected(t, 5, c)
	games := []GameMetric{c.Complete(gs)}

	t.Run("csv", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "batch")
		require.NoError(t, err)
		require.NoError(t, w.WriteGameMetrics(games))
		require.NoError(t, w.WriteRoundMetrics(games))
		require.NoError(t, w.WriteHistogram(games[0].Histogram))

		for _, name := range []string{"games.csv", "rounds.csv", "actions.csv"} {
			info, err := os.Stat(filepath.Join(w.Dir(), name))
			require.NoError(t, err, name)
			require.Positive(t, info.Size(), name)
		}
	})

	for _, name := range []string{"games.jsonl", "games.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			w, err := NewJSONLWriter(path)
			require.NoError(t, err)
			require.NoError(t, w.Write(games[0]))
			require.NoError(t, w.Write(map[string]string{"note": "not a game"}))
			require.NoError(t, w.Close())

			read, skipped, err := ReadGameMetrics(path)
			require.NoError(t, err)
			require.Equal(t, 1, skipped, "junk line skipped")
			require.Len(t, read, 1)
			require.Equal(t, games[0].PlayerVP, read[0].PlayerVP, "vp")
			require.Equal(t, games[0].WinnerIDs, read[0].WinnerIDs, "winners")
			require.Equal(t, games[0].Histogram, read[0].Histogram, "histogram")
		})
	}
}
