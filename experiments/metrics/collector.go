package metrics

import (
	"time"

	"gears/game"
)

// RoundMetric is every player's board at the end of one round, by seating order.
type RoundMetric struct {
	Round         int   `json:"round"`
	VP            []int `json:"vp"`
	BuiltDelta    []int `json:"builtDelta"`
	Gears         []int `json:"gears"`
	Food          []int `json:"food"`
	FreeLeaders   []int `json:"freeLeaders"`
	AvailableCost []int `json:"availableCost"`
}

type GameMetric struct {
	Seed        uint64         `json:"seed"`
	Players     int            `json:"players"`
	WinnerIDs   []string       `json:"winnerIds"`
	PlayerVP    []int          `json:"playerVP"`
	FirstPlayer string         `json:"firstPlayerId"`
	Rounds      int            `json:"rounds"`
	BuiltCount  []int          `json:"builtCount"`
	WonderCount []int          `json:"wonderCount"`
	Histogram   map[string]int `json:"actionTagHistogram"`
	Moves       int            `json:"moves"`
	Shortfalls  int            `json:"shortfalls"`
	PerRound    []RoundMetric  `json:"perRound,omitempty"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     time.Time      `json:"endTime"`
	Duration    time.Duration  `json:"duration"`
}

// Collector observes a game without influencing it. The engine feeds it every
// accepted move and every round boundary.
type Collector interface {
	Start(gs *game.GameState)
	AddMove(m game.Move, gs *game.GameState)
	EndRound(round int, gs *game.GameState)
	Complete(gs *game.GameState) GameMetric
}

type collector struct {
	startTime  time.Time
	histogram  map[string]int
	perRound   []RoundMetric
	lastBuilt  []int
	moves      int
	shortfalls int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(gs *game.GameState) {
	c.startTime = time.Now()
	c.histogram = make(map[string]int)
	c.perRound = nil
	c.moves = 0
	c.shortfalls = 0
	c.lastBuilt = builtCounts(gs)
}

func (c *collector) AddMove(m game.Move, gs *game.GameState) {
	c.histogram[m.Type.String()]++
	c.moves++
}

func (c *collector) EndRound(round int, gs *game.GameState) {
	n := len(gs.Order)
	row := RoundMetric{
		Round:         round,
		VP:            make([]int, n),
		BuiltDelta:    make([]int, n),
		Gears:         make([]int, n),
		Food:          make([]int, n),
		FreeLeaders:   make([]int, n),
		AvailableCost: make([]int, n),
	}
	built := builtCounts(gs)
	for i, pid := range gs.Order {
		p := gs.Players[pid]
		row.VP[i] = game.VictoryPoints(p, gs.Cards)
		row.BuiltDelta[i] = built[i] - c.lastBuilt[i]
		row.Gears[i] = p.Base.Gear + p.RoundDelta.Gear
		row.Food[i] = p.Base.Food + p.RoundDelta.Food
		row.FreeLeaders[i] = p.FreeLeadersRaw()
		row.AvailableCost[i] = p.AvailableCost()
		if gs.Shortfall[pid] > 0 {
			c.shortfalls++
		}
	}
	c.lastBuilt = built
	c.perRound = append(c.perRound, row)
}

func (c *collector) Complete(gs *game.GameState) GameMetric {
	metric := Summarize(gs)
	metric.Histogram = c.histogram
	metric.Moves = c.moves
	metric.Shortfalls = c.shortfalls
	metric.PerRound = c.perRound
	metric.StartTime = c.startTime
	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(c.startTime)
	return metric
}

// Summarize reads the end-of-game figures straight off the state.
func Summarize(gs *game.GameState) GameMetric {
	n := len(gs.Order)
	metric := GameMetric{
		Seed:        gs.Seed,
		Players:     n,
		PlayerVP:    make([]int, n),
		BuiltCount:  builtCounts(gs),
		WonderCount: make([]int, n),
		Rounds:      gs.Round - 1,
		Histogram:   map[string]int{},
	}
	if len(gs.Order) > 0 {
		metric.FirstPlayer = string(gs.Order[0])
	}
	for i, pid := range gs.Order {
		p := gs.Players[pid]
		metric.PlayerVP[i] = game.VictoryPoints(p, gs.Cards)
		for _, id := range append(append([]string{}, p.Built...), p.BuiltFaceDown...) {
			if gs.Cards[id].IsWonder() {
				metric.WonderCount[i]++
			}
		}
	}
	if result, ok := gs.Result(); ok {
		for _, pid := range result.Tied {
			metric.WinnerIDs = append(metric.WinnerIDs, string(pid))
		}
	}
	return metric
}

func builtCounts(gs *game.GameState) []int {
	counts := make([]int, len(gs.Order))
	for i, pid := range gs.Order {
		counts[i] = gs.Players[pid].BoardSize()
	}
	return counts
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(gs *game.GameState)                {}
func (c *dummyCollector) AddMove(m game.Move, gs *game.GameState) {}
func (c *dummyCollector) EndRound(round int, gs *game.GameState)  {}
func (c *dummyCollector) Complete(gs *game.GameState) GameMetric  { return GameMetric{} }
