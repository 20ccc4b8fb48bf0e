package game

import "fmt"

type CardKind int

const (
	PolicyCard CardKind = iota // 0
	TechCard                   // 1
	WonderCard                 // 2
)

var cardKindNames = map[CardKind]string{
	PolicyCard: "Policy",
	TechCard:   "Tech",
	WonderCard: "Wonder",
}

func (k CardKind) String() string {
	if s, ok := cardKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// BuildType is the category of a tech card. The declaration order is the
// canonical order used to sort the market.
type BuildType int

const (
	Land           BuildType = iota // 0
	FoodFacility                    // 1
	ProdFacility                    // 2
	Infrastructure                  // 3
	Government                      // 4
)

// BuildTypes lists every build type in canonical order.
var BuildTypes = []BuildType{Land, FoodFacility, ProdFacility, Infrastructure, Government}

var buildTypeNames = map[BuildType]string{
	Land:           "land",
	FoodFacility:   "food_facility",
	ProdFacility:   "prod_facility",
	Infrastructure: "infrastructure",
	Government:     "government",
}

func (t BuildType) String() string {
	if s, ok := buildTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

func (t *BuildType) UnmarshalText(text []byte) error {
	for k, name := range buildTypeNames {
		if name == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown build type %q", text)
}

func (t BuildType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Era gates which wonders are purchasable. Zero means no era has started yet.
type Era int

const (
	NoEra Era = iota
	Era1
	Era2
	Era3
)

// Eras lists the playable eras in order.
var Eras = []Era{Era1, Era2, Era3}

// Card is a single card instance. Policy, Tech and Wonder cards share the
// struct; BuildType and Serial only mean something for Tech cards and Era only
// for Wonder cards. Cards are immutable once registered.
type Card struct {
	ID        string
	Name      string
	Kind      CardKind
	Cost      int
	VP        int
	Effects   []Effect
	BuildType BuildType
	Serial    int
	Era       Era
}

func (c *Card) IsWonder() bool {
	return c != nil && c.Kind == WonderCard
}

// lessForMarket orders tech cards by build type, then serial, then id.
func lessForMarket(a, b *Card) bool {
	if a.BuildType != b.BuildType {
		return a.BuildType < b.BuildType
	}
	if a.Serial != b.Serial {
		return a.Serial < b.Serial
	}
	return a.ID < b.ID
}
