package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	/*
		Cases:
		- every enumerated move, board edits included, is accepted on a copy in every phase of a game
		- the list always offers a way to end the turn
		- board edits only appear when asked for
	*/

	t.Run("enumerated moves are accepted", func(t *testing.T) {
		gs, err := NewGame(3, WithSeed(31))
		require.NoError(t, err)
		for !gs.IsOver() {
			moves := gs.LegalMoves(true)
			require.NotEmpty(t, moves, "round %d %s", gs.Round, gs.Phase)
			for _, m := range moves {
				_, err := gs.Play(m)
				require.NoError(t, err, "round %d %s: %s", gs.Round, gs.Phase, m)
			}
			// the last move always ends the turn or spends an action
			require.NoError(t, gs.Apply(moves[len(moves)-1]))
		}
	})

	t.Run("board edits on request", func(t *testing.T) {
		gs := newTestGame(t, 2)
		passUntil(t, gs, 1, CleanupPhase)

		plain := gs.LegalMoves(false)
		require.Equal(t, []Move{{Type: FinalizeCleanup, Player: gs.CurrentPlayer()}}, plain)

		edits := gs.LegalMoves(true)
		require.Greater(t, len(edits), 1)
		for _, m := range edits[:len(edits)-1] {
			require.Equal(t, ToggleFace, m.Type)
		}
		require.Equal(t, FinalizeCleanup, edits[len(edits)-1].Type)
	})
}

func TestObserve(t *testing.T) {
	/*
		Cases:
		- observers see accepted moves with the updated state
		- rejected moves and moves on copies are not observed
	*/

	gs := newTestGame(t, 2)
	var seen []Move
	gs.Observe(func(m Move, s *GameState) {
		require.Same(t, gs, s)
		require.Equal(t, s.MoveCount, len(seen)+1)
		seen = append(seen, m)
	})

	require.Error(t, gs.Apply(Move{Type: InventType, BuildType: Land}))
	require.Empty(t, seen, "rejected move")

	_, err := gs.Play(Move{Type: EndPolicyTurn})
	require.NoError(t, err)
	require.Empty(t, seen, "copy")

	require.NoError(t, gs.Apply(Move{Type: EndPolicyTurn}))
	require.Len(t, seen, 1)
	require.Equal(t, PlayerID("0"), seen[0].Player, "player filled in")
}
