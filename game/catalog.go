package game

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CardSpec is a catalog entry. A tech spec with Copies > 1 mints that many
// cards with ids "<ID>#1".."<ID>#n".
type CardSpec struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	BuildType BuildType `yaml:"build_type"`
	Serial    int       `yaml:"serial"`
	Era       Era       `yaml:"era"`
	Cost      int       `yaml:"cost"`
	VP        int       `yaml:"vp"`
	Copies    int       `yaml:"copies"`
	Effects   []Effect  `yaml:"effects"`
}

// Catalog is the card content of a game: data, not rules.
type Catalog struct {
	Policies []CardSpec `yaml:"policies"`
	Starters []CardSpec `yaml:"starters"`
	Tech     []CardSpec `yaml:"tech"`
	Wonders  []CardSpec `yaml:"wonders"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Starters) == 0 {
		return fmt.Errorf("no starter cards")
	}
	seen := make(map[string]bool)
	check := func(section string, specs []CardSpec) error {
		for _, s := range specs {
			if s.ID == "" {
				return fmt.Errorf("%s: card without id", section)
			}
			if seen[s.ID] {
				return fmt.Errorf("%s: duplicate id %q", section, s.ID)
			}
			seen[s.ID] = true
			if s.Cost < 0 {
				return fmt.Errorf("%s: card %q has negative cost", section, s.ID)
			}
		}
		return nil
	}
	if err := check("policies", c.Policies); err != nil {
		return err
	}
	if err := check("starters", c.Starters); err != nil {
		return err
	}
	if err := check("tech", c.Tech); err != nil {
		return err
	}
	if err := check("wonders", c.Wonders); err != nil {
		return err
	}
	for _, w := range c.Wonders {
		if w.Era < Era1 || w.Era > Era3 {
			return fmt.Errorf("wonders: card %q has era %d outside 1..3", w.ID, w.Era)
		}
	}
	return nil
}

func (s CardSpec) mint(id string, kind CardKind) *Card {
	return &Card{
		ID:        id,
		Name:      s.Name,
		Kind:      kind,
		Cost:      s.Cost,
		VP:        s.VP,
		Effects:   append([]Effect{}, s.Effects...),
		BuildType: s.BuildType,
		Serial:    s.Serial,
		Era:       s.Era,
	}
}

// PolicyDeck mints the whole policy catalog, pads it with no-op policies up
// to slots, shuffles it and keeps the first slots cards. Every catalog policy
// can make it into a short ring.
func (c *Catalog) PolicyDeck(slots int, rng *rand.Rand) []*Card {
	deck := make([]*Card, 0, max(slots, len(c.Policies)))
	for _, s := range c.Policies {
		deck = append(deck, s.mint(s.ID, PolicyCard))
	}
	for len(deck) < slots {
		deck = append(deck, &Card{
			ID:   fmt.Sprintf("P-NOOP-%d", len(deck)),
			Name: "No Policy",
			Kind: PolicyCard,
		})
	}
	shuffle(rng, deck)
	return deck[:slots]
}

// StarterCards mints the pre-built cards for one player. Ids carry the player
// id so the registry stays unique across seats.
func (c *Catalog) StarterCards(pid PlayerID) []*Card {
	cards := make([]*Card, 0, len(c.Starters))
	for _, s := range c.Starters {
		cards = append(cards, s.mint(fmt.Sprintf("%s-P%s", s.ID, pid), TechCard))
	}
	return cards
}

// TechDeck mints the unshuffled tech deck.
func (c *Catalog) TechDeck() []*Card {
	var deck []*Card
	for _, s := range c.Tech {
		if s.Copies <= 1 {
			deck = append(deck, s.mint(s.ID, TechCard))
			continue
		}
		for k := 1; k <= s.Copies; k++ {
			deck = append(deck, s.mint(fmt.Sprintf("%s#%d", s.ID, k), TechCard))
		}
	}
	return deck
}

// WondersByEra mints the wonder pools.
func (c *Catalog) WondersByEra() map[Era][]*Card {
	pools := map[Era][]*Card{Era1: {}, Era2: {}, Era3: {}}
	for _, s := range c.Wonders {
		pools[s.Era] = append(pools[s.Era], s.mint(s.ID, WonderCard))
	}
	return pools
}
