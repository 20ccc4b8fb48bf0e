package searcher

import "fmt"

type mockMove struct {
	id int
}

type mockState struct {
	player string
	moves  []Move
	played []Move
	hash   uint64
	winner string
}

func (m mockState) Player() string {
	return m.player
}

func (m mockState) LegalMoves() []Move {
	return m.moves
}

func (m mockState) Play(move Move) State {
	return mockState{played: append(append([]Move{}, m.played...), move)}
}

func (m mockState) Hash() uint64 {
	return m.hash
}

func (m mockState) Winner() string {
	return m.winner
}

// nim is a two-player take-away game: each turn removes 1 or 2 stones and
// whoever takes the last stone wins.
type nim struct {
	stones int
	turn   int
}

func (n nim) Player() string {
	return fmt.Sprint(n.turn % 2)
}

func (n nim) LegalMoves() []Move {
	var moves []Move
	for take := 1; take <= 2 && take <= n.stones; take++ {
		moves = append(moves, take)
	}
	return moves
}

func (n nim) Play(move Move) State {
	return nim{stones: n.stones - move.(int), turn: n.turn + 1}
}

func (n nim) Hash() uint64 {
	return uint64(n.stones<<8 | n.turn%2)
}

func (n nim) Winner() string {
	if n.stones > 0 {
		return ""
	}
	// The player who just moved took the last stone
	return fmt.Sprint((n.turn + 1) % 2)
}
