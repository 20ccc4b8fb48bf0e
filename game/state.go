package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"golang.org/x/exp/rand"

	"gears/meta"
	"gears/utils"
)

// EnforcementRecord is an entry of the free-leader repair log.
type EnforcementRecord struct {
	Round  int
	Phase  Phase
	Player PlayerID
	EnforceReport
}

// GameState is the aggregate root of one game. It is mutated in place by
// Apply and is not safe for concurrent use.
type GameState struct {
	Players    map[PlayerID]*PlayerState
	Order      []PlayerID // fixed seating
	RoundOrder []PlayerID // turn order, recomputed at the end of each policy phase
	Queue      []PlayerID // players still to act this phase; the head holds the turn
	Phase      Phase
	Round      int // 1..Rounds, Rounds+1 once the game is over

	Ring   Ring
	Market Market
	Cards  map[string]*Card // registry of every card minted at setup, read-only

	InventRemaining map[PlayerID]int
	BuildRemaining  map[PlayerID]int
	BuildBudget     map[PlayerID]int

	Shortfall    map[PlayerID]int // free leaders missing after the last enforcement
	Enforcements []EnforcementRecord

	Rules     Rules
	Seed      uint64
	MoveCount int
	LastMove  *Move
	Outcome   *Result

	flip      FlipPolicy
	observers []Observer
}

// Observer is called after every accepted move with the updated state. It must
// not mutate the state.
type Observer func(m Move, gs *GameState)

// Observe registers fn for moves applied to this state. Copies do not inherit
// observers, so searches on copies stay silent.
func (gs *GameState) Observe(fn Observer) {
	gs.observers = append(gs.observers, fn)
}

type Option func(o *options)

type options struct {
	seed    uint64
	rng     *rand.Rand
	rules   Rules
	catalog *Catalog
	flip    FlipPolicy
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRand injects the random source used for setup shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithRules(rules Rules) Option {
	return func(o *options) {
		if rules != nil {
			o.rules = rules
		}
	}
}

func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithFlipPolicy replaces the card choice of free-leader enforcement.
func WithFlipPolicy(flip FlipPolicy) Option {
	return func(o *options) {
		if flip != nil {
			o.flip = flip
		}
	}
}

// NewRand returns the seeded source the engine and agents share.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewGame sets up a game: shuffled policy ring and tech deck, full wonder
// pools, and three starter cards built for every player. Identical seeds give
// identical games.
func NewGame(numPlayers int, opts ...Option) (*GameState, error) {
	if numPlayers < meta.MIN_PLAYERS || numPlayers > meta.MAX_PLAYERS {
		return nil, fmt.Errorf("player count %d outside %d..%d", numPlayers, meta.MIN_PLAYERS, meta.MAX_PLAYERS)
	}
	o := options{
		seed:    uint64(time.Now().UnixNano()),
		rules:   NewStandardRules(),
		catalog: DefaultCatalog(),
		flip:    FlipMostRecent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(o.seed)
	}

	order := make([]PlayerID, numPlayers)
	players := make(map[PlayerID]*PlayerState, numPlayers)
	for i := range order {
		order[i] = PlayerID(strconv.Itoa(i))
		players[order[i]] = newPlayerState(order[i], o.rules.TotalLeaders())
	}

	policies := o.catalog.PolicyDeck(o.rules.PolicySlots(numPlayers), o.rng)
	for i, pid := range order {
		players[pid].PolicyPos = i % len(policies)
	}

	techDeck := o.catalog.TechDeck()
	shuffle(o.rng, techDeck)
	wonders := o.catalog.WondersByEra()

	cards := make(map[string]*Card)
	register := func(cs []*Card) {
		for _, c := range cs {
			cards[c.ID] = c
		}
	}
	register(policies)
	register(techDeck)
	for _, era := range Eras {
		register(wonders[era])
	}
	for _, pid := range order {
		starters := o.catalog.StarterCards(pid)
		register(starters)
		for _, c := range starters {
			players[pid].Built = append(players[pid].Built, c.ID)
		}
	}

	gs := &GameState{
		Players:    players,
		Order:      order,
		RoundOrder: utils.Clone(order),
		Round:      1,
		Ring:       Ring{Policies: policies},
		Market: Market{
			TechDeck:     techDeck,
			TechFaceUp:   []*Card{},
			TechMarket:   []*Card{},
			WondersByEra: wonders,
			WonderMarket: []*Card{},
		},
		Cards:           cards,
		InventRemaining: make(map[PlayerID]int, numPlayers),
		BuildRemaining:  make(map[PlayerID]int, numPlayers),
		BuildBudget:     make(map[PlayerID]int, numPlayers),
		Shortfall:       make(map[PlayerID]int, numPlayers),
		Rules:           o.rules,
		Seed:            o.seed,
		flip:            o.flip,
	}
	for _, pid := range order {
		gs.InventRemaining[pid] = 0
		gs.BuildRemaining[pid] = 0
		gs.BuildBudget[pid] = 0
		gs.Shortfall[pid] = 0
	}
	// an era that starts in round 1 gets no rotation before play begins
	gs.Market.Rotate(NoEra, o.rules.EraOfRound(1))
	gs.enterPhase(PolicyPhase)
	return gs, nil
}

func shuffle(rng *rand.Rand, cards []*Card) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// CurrentPlayer returns the player holding the turn, or "" once the game is over.
func (gs *GameState) CurrentPlayer() PlayerID {
	if gs.Phase == GameOverPhase || len(gs.Queue) == 0 {
		return ""
	}
	return gs.Queue[0]
}

func (gs *GameState) IsOver() bool {
	return gs.Phase == GameOverPhase
}

// Result returns the final standings, or false while the game is running.
func (gs *GameState) Result() (Result, bool) {
	if gs.Outcome == nil {
		return Result{}, false
	}
	return *gs.Outcome, true
}

func (gs *GameState) Player(pid PlayerID) *PlayerState {
	return gs.Players[pid]
}

// HasWonderInEra checks built, face-down and pending cards.
func (gs *GameState) HasWonderInEra(pid PlayerID, era Era) bool {
	p := gs.Players[pid]
	if p == nil {
		return false
	}
	for _, id := range p.Owned() {
		if c := gs.Cards[id]; c.IsWonder() && c.Era == era {
			return true
		}
	}
	return false
}

// Copy returns a deep copy. Cards, rules and the flip policy are shared since
// they never change after setup.
func (gs *GameState) Copy() *GameState {
	players := make(map[PlayerID]*PlayerState, len(gs.Players))
	for id, p := range gs.Players {
		players[id] = p.Copy()
	}
	cp := &GameState{
		Players:         players,
		Order:           utils.Clone(gs.Order),
		RoundOrder:      utils.Clone(gs.RoundOrder),
		Queue:           utils.Clone(gs.Queue),
		Phase:           gs.Phase,
		Round:           gs.Round,
		Ring:            gs.Ring.Copy(),
		Market:          gs.Market.Copy(),
		Cards:           gs.Cards,
		InventRemaining: copyCounts(gs.InventRemaining),
		BuildRemaining:  copyCounts(gs.BuildRemaining),
		BuildBudget:     copyCounts(gs.BuildBudget),
		Shortfall:       copyCounts(gs.Shortfall),
		Enforcements:    utils.Clone(gs.Enforcements),
		Rules:           gs.Rules,
		Seed:            gs.Seed,
		MoveCount:       gs.MoveCount,
		flip:            gs.flip,
	}
	if gs.LastMove != nil {
		m := *gs.LastMove
		cp.LastMove = &m
	}
	if gs.Outcome != nil {
		r := gs.Outcome.Copy()
		cp.Outcome = &r
	}
	return cp
}

func copyCounts(m map[PlayerID]int) map[PlayerID]int {
	out := make(map[PlayerID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type StateHash uint64

// Hash fingerprints everything that affects future play.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	writeInt := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	writeString := func(s string) {
		hasher.Write([]byte(s))
		hasher.Write([]byte{0})
	}
	writeCards := func(cs []*Card) {
		writeInt(len(cs))
		for _, c := range cs {
			writeString(c.ID)
		}
	}
	writeIDs := func(ids []string) {
		writeInt(len(ids))
		for _, id := range ids {
			writeString(id)
		}
	}

	writeInt(int(gs.Phase))
	writeInt(gs.Round)
	writeInt(gs.Ring.StartMarker)
	for _, pid := range gs.Queue {
		writeString(string(pid))
	}
	for _, pid := range gs.RoundOrder {
		writeString(string(pid))
	}
	for _, pid := range gs.Order {
		p := gs.Players[pid]
		writeString(string(pid))
		writeIDs(p.Built)
		writeIDs(p.BuiltFaceDown)
		writeIDs(p.PendingBuilt)
		for _, v := range []int{
			p.Base.Gear, p.Base.Food, p.RoundDelta.Gear, p.RoundDelta.Food,
			p.Labor.Required, p.Labor.Reduction, p.RoundLaborDelta.Required, p.RoundLaborDelta.Reduction,
			p.TotalLeaders, p.LockedLeaders, p.RoundBuildActionsBonus, p.RoundInventActionsBonus,
			p.PolicyPos, p.PolicySpent,
			gs.InventRemaining[pid], gs.BuildRemaining[pid], gs.BuildBudget[pid],
		} {
			writeInt(v)
		}
	}
	writeCards(gs.Ring.Policies)
	writeCards(gs.Market.TechDeck)
	writeCards(gs.Market.TechFaceUp)
	writeCards(gs.Market.TechMarket)
	writeCards(gs.Market.WonderMarket)
	for _, era := range Eras {
		writeCards(gs.Market.WondersByEra[era])
	}
	return StateHash(hasher.Sum64())
}

// Snapshot is a compact view of a state used to compare runs.
type Snapshot struct {
	Round int
	Phase Phase
	Hash  StateHash
	VP    []int // by seating order
}

func (gs *GameState) Snapshot() Snapshot {
	vp := make([]int, len(gs.Order))
	for i, pid := range gs.Order {
		vp[i] = VictoryPoints(gs.Players[pid], gs.Cards)
	}
	return Snapshot{Round: gs.Round, Phase: gs.Phase, Hash: gs.Hash(), VP: vp}
}
