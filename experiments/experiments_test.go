package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gears/experiments/metrics"
	"gears/game"
)

func TestRunBatch(t *testing.T) {
	/*
		Cases:
		- seeds run from SeedBase upwards in order
		- worker count does not change the outcome
		- empty batches are refused
		- unknown agents fail the batch
	*/

	cfg := BatchConfig{Games: 4, SeedBase: 100, Players: 3, Strict: true}

	t.Run("serial", func(t *testing.T) {
		games, err := RunBatch(cfg)
		require.NoError(t, err)
		require.Len(t, games, 4)
		for i, g := range games {
			require.Equal(t, uint64(100+i), g.Seed, "seed of game %d", i)
			require.Equal(t, 3, g.Players)
			require.Len(t, g.PlayerVP, 3)
		}
	})

	t.Run("parallel matches serial", func(t *testing.T) {
		serial, err := RunBatch(cfg)
		require.NoError(t, err)
		parallel := cfg
		parallel.Workers = 3
		concurrent, err := RunBatch(parallel)
		require.NoError(t, err)
		for i := range serial {
			require.Equal(t, serial[i].PlayerVP, concurrent[i].PlayerVP, "vp of game %d", i)
			require.Equal(t, serial[i].WinnerIDs, concurrent[i].WinnerIDs, "winners of game %d", i)
		}
	})

	t.Run("no games", func(t *testing.T) {
		_, err := RunBatch(BatchConfig{Players: 2})
		require.Error(t, err)
	})

	t.Run("unknown agent", func(t *testing.T) {
		bad := cfg
		bad.Seats = []AgentConfig{{Name: "oracle"}}
		_, err := RunBatch(bad)
		require.Error(t, err)
	})
}

func TestAggregate(t *testing.T) {
	/*
		Cases:
		- averages, population variance and win rates per seat
		- tied winners each score a win
		- games with a different player count or no VP are skipped
		- nothing valid is an error
	*/

	games := []metrics.GameMetric{
		{Seed: 7, PlayerVP: []int{10, 4}, WinnerIDs: []string{"0"}, Moves: 100, Histogram: map[string]int{"inventType": 3}},
		{Seed: 5, PlayerVP: []int{6, 6}, WinnerIDs: []string{"0", "1"}, Moves: 80, Histogram: map[string]int{"inventType": 1, "endBuildTurn": 2}},
		{Seed: 6, PlayerVP: []int{1, 2, 3}},
		{Seed: 4},
	}

	t.Run("summary", func(t *testing.T) {
		s, err := Aggregate(games, 1)
		require.NoError(t, err)
		require.Equal(t, 2, s.Games)
		require.Equal(t, 3, s.Skipped, "one passed in, two bad games")
		require.Equal(t, 2, s.Players)
		require.Equal(t, uint64(5), s.SeedBase, "lowest valid seed")
		require.Equal(t, []float64{8, 5}, s.AvgVP)
		require.Equal(t, []float64{4, 1}, s.VPVar)
		require.Equal(t, []float64{1, 0.5}, s.WinRate)
		require.Equal(t, 1.0, s.FirstPlayerWinRate)
		require.Equal(t, 90.0, s.AvgMoves)
		require.Equal(t, map[string]int{"inventType": 4, "endBuildTurn": 2}, s.Histogram)
		_, err = uuid.Parse(s.RunID)
		require.NoError(t, err, "run id")
	})

	t.Run("nothing valid", func(t *testing.T) {
		_, err := Aggregate(games[3:], 0)
		require.ErrorIs(t, err, ErrNoGames)
	})
}

func TestCheckReproducible(t *testing.T) {
	/*
		Cases:
		- random and heuristic seatings replay identically
		- early era rules replay identically too
	*/

	t.Run("mixed seats", func(t *testing.T) {
		cfg := BatchConfig{Players: 4, Seats: []AgentConfig{{Name: "random"}, {Name: "heuristic"}}}
		require.NoError(t, CheckReproducible(cfg, 2024))
	})

	t.Run("early eras", func(t *testing.T) {
		cfg := BatchConfig{Players: 2, Rules: game.NewEarlyEraRules()}
		require.NoError(t, CheckReproducible(cfg, 1))
	})
}

func TestRunMatchups(t *testing.T) {
	base := BatchConfig{Games: 2, SeedBase: 1, Players: 2}
	results, err := RunMatchups(base, []Matchup{
		{Name: "random-heuristic", Seats: []AgentConfig{{Name: "random"}, {Name: "heuristic"}}},
		{Name: "heuristic-random", Seats: []AgentConfig{{Name: "heuristic"}, {Name: "random"}}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Equal(t, 2, r.Summary.Games, r.Matchup.Name)
	}
}

func TestWriteResults(t *testing.T) {
	cfg := BatchConfig{Games: 2, SeedBase: 1, Players: 2}
	games, err := RunBatch(cfg)
	require.NoError(t, err)
	summary, err := Aggregate(games, 0)
	require.NoError(t, err)

	dir, err := WriteResults(t.TempDir(), "smoke", games, summary, true)
	require.NoError(t, err)
	for _, name := range []string{"games.csv", "rounds.csv", "actions.csv", "games.jsonl.zst", "summary.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	read, skipped, err := metrics.ReadGameMetrics(filepath.Join(dir, "games.jsonl.zst"))
	require.NoError(t, err)
	require.Zero(t, skipped)
	again, err := Aggregate(read, skipped)
	require.NoError(t, err)
	require.Equal(t, summary.AvgVP, again.AvgVP, "summary survives the round trip")
}
