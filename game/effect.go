package game

import "fmt"

type EffectKind int

const (
	GearDelta EffectKind = iota
	FoodDelta
	LaborRequired
	LaborReduction
	BuildActionBonus
	InventActionBonus
)

var effectKindNames = map[EffectKind]string{
	GearDelta:         "gear",
	FoodDelta:         "food",
	LaborRequired:     "labor_required",
	LaborReduction:    "labor_reduction",
	BuildActionBonus:  "build_action_bonus",
	InventActionBonus: "invent_action_bonus",
}

func (k EffectKind) String() string {
	if s, ok := effectKindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	for kind, name := range effectKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown effect kind %q", text)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Timing int

const (
	ThisRound Timing = iota
	Permanent
)

func (t Timing) String() string {
	if t == Permanent {
		return "permanent"
	}
	return "this_round"
}

func (t *Timing) UnmarshalText(text []byte) error {
	switch string(text) {
	case "this_round":
		*t = ThisRound
	case "permanent":
		*t = Permanent
	default:
		return fmt.Errorf("unknown timing %q", text)
	}
	return nil
}

func (t Timing) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Effect is one entry of a card's effect list.
type Effect struct {
	Kind   EffectKind `yaml:"kind"`
	Amount int        `yaml:"amount"`
	Timing Timing     `yaml:"timing"`
}

// ApplyEffect resolves e against p. Permanent effects only land outside a
// round pass (base resources, labor); this-round effects only land during a
// round pass (round deltas, action bonuses). Every other combination, and any
// kind the resolver does not know, is a no-op.
func ApplyEffect(p *PlayerState, e Effect, roundPass bool) {
	switch {
	case e.Timing == Permanent && !roundPass:
		applyPermanent(p, e)
	case e.Timing == ThisRound && roundPass:
		applyThisRound(p, e)
	}
}

func applyPermanent(p *PlayerState, e Effect) {
	switch e.Kind {
	case GearDelta:
		p.Base.Gear += e.Amount
	case FoodDelta:
		p.Base.Food += e.Amount
	case LaborRequired:
		p.Labor.Required += e.Amount
	case LaborReduction:
		p.Labor.Reduction += e.Amount
	}
}

func applyThisRound(p *PlayerState, e Effect) {
	switch e.Kind {
	case GearDelta:
		p.RoundDelta.Gear += e.Amount
	case FoodDelta:
		p.RoundDelta.Food += e.Amount
	case LaborRequired:
		p.RoundLaborDelta.Required += e.Amount
	case LaborReduction:
		p.RoundLaborDelta.Reduction += e.Amount
	case BuildActionBonus:
		p.RoundBuildActionsBonus += e.Amount
	case InventActionBonus:
		p.RoundInventActionsBonus += e.Amount
	}
}

// ApplyCard resolves every effect printed on c.
func ApplyCard(p *PlayerState, c *Card, roundPass bool) {
	if c == nil {
		return
	}
	for _, e := range c.Effects {
		ApplyEffect(p, e, roundPass)
	}
}
