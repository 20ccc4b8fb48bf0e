package game

import "fmt"

type MoveType int

const (
	InvestAndMove MoveType = iota
	EndPolicyTurn
	InventType
	EndInventionTurn
	BuildFromMarket
	BuildWonderFromMarket
	Demolish
	EndBuildTurn
	ToggleFace
	FinalizeCleanup
)

var moveTypeNames = map[MoveType]string{
	InvestAndMove:         "investAndMove",
	EndPolicyTurn:         "endPolicyTurn",
	InventType:            "inventType",
	EndInventionTurn:      "endInventionTurn",
	BuildFromMarket:       "buildFromMarket",
	BuildWonderFromMarket: "buildWonderFromMarket",
	Demolish:              "demolish",
	EndBuildTurn:          "endBuildTurn",
	ToggleFace:            "toggleFace",
	FinalizeCleanup:       "finalizeCleanup",
}

func (t MoveType) String() string {
	if s, ok := moveTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Move is one player action. Player may be left empty, in which case the move
// is attributed to whoever holds the turn.
type Move struct {
	Type      MoveType
	Player    PlayerID
	Steps     int
	BuildType BuildType
	CardID    string
}

func (m Move) String() string {
	switch m.Type {
	case InvestAndMove:
		return fmt.Sprintf("%s(%d)", m.Type, m.Steps)
	case InventType:
		return fmt.Sprintf("%s(%s)", m.Type, m.BuildType)
	case BuildFromMarket, BuildWonderFromMarket, Demolish, ToggleFace:
		return fmt.Sprintf("%s(%s)", m.Type, m.CardID)
	default:
		return m.Type.String()
	}
}

// MoveAPI is the move vocabulary bound to one player. Every call is validated
// against the current state; a rejected call returns a *RejectedError and
// changes nothing.
type MoveAPI struct {
	gs  *GameState
	pid PlayerID
}

// Moves returns the move vocabulary acting as pid.
func (gs *GameState) Moves(pid PlayerID) *MoveAPI {
	return &MoveAPI{gs: gs, pid: pid}
}

func (m *MoveAPI) Player() PlayerID {
	return m.pid
}

// Apply submits mv as this player, whatever player it names.
func (m *MoveAPI) Apply(mv Move) error {
	mv.Player = m.pid
	return m.gs.Apply(mv)
}

func (m *MoveAPI) InvestAndMove(steps int) error {
	return m.gs.Apply(Move{Type: InvestAndMove, Player: m.pid, Steps: steps})
}

func (m *MoveAPI) EndPolicyTurn() error {
	return m.gs.Apply(Move{Type: EndPolicyTurn, Player: m.pid})
}

func (m *MoveAPI) InventType(t BuildType) error {
	return m.gs.Apply(Move{Type: InventType, Player: m.pid, BuildType: t})
}

func (m *MoveAPI) EndInventionTurn() error {
	return m.gs.Apply(Move{Type: EndInventionTurn, Player: m.pid})
}

func (m *MoveAPI) BuildFromMarket(cardID string) error {
	return m.gs.Apply(Move{Type: BuildFromMarket, Player: m.pid, CardID: cardID})
}

func (m *MoveAPI) BuildWonderFromMarket(cardID string) error {
	return m.gs.Apply(Move{Type: BuildWonderFromMarket, Player: m.pid, CardID: cardID})
}

func (m *MoveAPI) Demolish(cardID string) error {
	return m.gs.Apply(Move{Type: Demolish, Player: m.pid, CardID: cardID})
}

func (m *MoveAPI) EndBuildTurn() error {
	return m.gs.Apply(Move{Type: EndBuildTurn, Player: m.pid})
}

func (m *MoveAPI) ToggleFace(cardID string) error {
	return m.gs.Apply(Move{Type: ToggleFace, Player: m.pid, CardID: cardID})
}

func (m *MoveAPI) FinalizeCleanup() error {
	return m.gs.Apply(Move{Type: FinalizeCleanup, Player: m.pid})
}
