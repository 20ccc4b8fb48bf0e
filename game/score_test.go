package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scoringState(built map[PlayerID][]string, faceDown map[PlayerID][]string, roundOrder []PlayerID) *GameState {
	cards := map[string]*Card{
		"vp1":  {ID: "vp1", Kind: TechCard, VP: 1},
		"vp2":  {ID: "vp2", Kind: TechCard, VP: 2},
		"vp3":  {ID: "vp3", Kind: TechCard, VP: 3},
		"w5":   {ID: "w5", Kind: WonderCard, VP: 5, Era: Era2},
		"pend": {ID: "pend", Kind: TechCard, VP: 9},
	}
	gs := &GameState{
		Players:    map[PlayerID]*PlayerState{},
		Order:      []PlayerID{"0", "1", "2"},
		RoundOrder: roundOrder,
		Cards:      cards,
	}
	for _, pid := range gs.Order {
		p := newPlayerState(pid, 7)
		p.Built = built[pid]
		p.BuiltFaceDown = faceDown[pid]
		p.PendingBuilt = []string{"pend"}
		gs.Players[pid] = p
	}
	return gs
}

func TestScore(t *testing.T) {
	t.Run("face-down cards count and pending cards do not", func(t *testing.T) {
		gs := scoringState(
			map[PlayerID][]string{"0": {"vp1"}, "1": {"vp2"}, "2": {"w5"}},
			map[PlayerID][]string{"0": {"vp3", "vp2"}},
			[]PlayerID{"0", "1", "2"},
		)

		result := Score(gs)

		require.Equal(t, map[PlayerID]int{"0": 6, "1": 2, "2": 5}, result.Scores)
		require.Equal(t, PlayerID("0"), result.Winner)
		require.Equal(t, []PlayerID{"0"}, result.Tied)
		require.Equal(t, []PlayerID{"0", "2", "1"}, result.Ranking)
	})

	t.Run("ties go to the earliest player in the final turn order", func(t *testing.T) {
		gs := scoringState(
			map[PlayerID][]string{"0": {"vp3"}, "1": {"vp1"}, "2": {"vp1", "vp2"}},
			nil,
			[]PlayerID{"1", "2", "0"},
		)

		result := Score(gs)

		require.Equal(t, PlayerID("2"), result.Winner)
		require.Equal(t, []PlayerID{"2", "0"}, result.Tied)
		require.Equal(t, []PlayerID{"2", "0", "1"}, result.Ranking)
	})

	t.Run("result copies do not alias", func(t *testing.T) {
		gs := scoringState(nil, nil, []PlayerID{"0", "1", "2"})
		result := Score(gs)

		cp := result.Copy()
		cp.Scores["0"] = 100
		cp.Ranking[0] = "x"

		require.Equal(t, 0, result.Scores["0"])
		require.NotEqual(t, PlayerID("x"), result.Ranking[0])
	})
}

func TestEvaluate(t *testing.T) {
	gs := scoringState(
		map[PlayerID][]string{"0": {"vp3"}, "1": {"vp1"}},
		nil,
		[]PlayerID{"0", "1", "2"},
	)

	require.InDelta(t, 0.5, EvaluateVP(gs, "0"), 1e-9)
	require.InDelta(t, -0.5, EvaluateVP(gs, "1"), 1e-9)
	require.InDelta(t, -1.0, EvaluateVP(gs, "2"), 1e-9)
	require.Zero(t, EvaluateVP(gs, "missing"))

	economy := EvaluateEconomy(gs, "0")
	require.Greater(t, economy, 0.0)
	require.LessOrEqual(t, economy, 1.0)
}
