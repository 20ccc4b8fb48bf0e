package game

import "sort"

// Market holds every tech and wonder card that is not on a player board.
type Market struct {
	TechDeck     []*Card // unrevealed
	TechFaceUp   []*Card // revealed in an earlier round, never built
	TechMarket   []*Card // revealed this round, buildable
	WondersByEra map[Era][]*Card
	WonderMarket []*Card
}

func (m *Market) Copy() Market {
	byEra := make(map[Era][]*Card, len(m.WondersByEra))
	for era, pool := range m.WondersByEra {
		byEra[era] = append([]*Card{}, pool...)
	}
	return Market{
		TechDeck:     append([]*Card{}, m.TechDeck...),
		TechFaceUp:   append([]*Card{}, m.TechFaceUp...),
		TechMarket:   append([]*Card{}, m.TechMarket...),
		WondersByEra: byEra,
		WonderMarket: append([]*Card{}, m.WonderMarket...),
	}
}

func indexOfType(pool []*Card, t BuildType) int {
	for i, c := range pool {
		if c.BuildType == t {
			return i
		}
	}
	return -1
}

func indexOfID(pool []*Card, id string) int {
	for i, c := range pool {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(pool []*Card, i int) []*Card {
	return append(pool[:i], pool[i+1:]...)
}

// HasTechOfType reports whether a reveal of t could succeed.
func (m *Market) HasTechOfType(t BuildType) bool {
	return indexOfType(m.TechFaceUp, t) >= 0 || indexOfType(m.TechDeck, t) >= 0
}

// Reveal pulls the oldest face-up card of type t, falling back to the deck,
// and adds it to the sorted tech market. It returns nil when no card matches.
func (m *Market) Reveal(t BuildType) *Card {
	var c *Card
	if i := indexOfType(m.TechFaceUp, t); i >= 0 {
		c = m.TechFaceUp[i]
		m.TechFaceUp = removeAt(m.TechFaceUp, i)
	} else if i := indexOfType(m.TechDeck, t); i >= 0 {
		c = m.TechDeck[i]
		m.TechDeck = removeAt(m.TechDeck, i)
	} else {
		return nil
	}
	m.TechMarket = append(m.TechMarket, c)
	sort.SliceStable(m.TechMarket, func(i, j int) bool {
		return lessForMarket(m.TechMarket[i], m.TechMarket[j])
	})
	return c
}

// TakeTech removes a card from the tech market.
func (m *Market) TakeTech(id string) (*Card, bool) {
	i := indexOfID(m.TechMarket, id)
	if i < 0 {
		return nil, false
	}
	c := m.TechMarket[i]
	m.TechMarket = removeAt(m.TechMarket, i)
	return c, true
}

// TakeWonder removes a card from the wonder market.
func (m *Market) TakeWonder(id string) (*Card, bool) {
	i := indexOfID(m.WonderMarket, id)
	if i < 0 {
		return nil, false
	}
	c := m.WonderMarket[i]
	m.WonderMarket = removeAt(m.WonderMarket, i)
	return c, true
}

// Rotate carries unbought tech into the face-up pool. When the era changes the
// new era's pool becomes the wonder market and all earlier pools, along with
// any wonders left in the previous market, leave the game.
func (m *Market) Rotate(prevEra, nextEra Era) {
	if len(m.TechMarket) > 0 {
		m.TechFaceUp = append(m.TechFaceUp, m.TechMarket...)
		m.TechMarket = []*Card{}
	}
	if nextEra == prevEra || nextEra == NoEra {
		return
	}
	m.WonderMarket = append([]*Card{}, m.WondersByEra[nextEra]...)
	m.WondersByEra[nextEra] = []*Card{}
	for _, era := range Eras {
		if era < nextEra {
			m.WondersByEra[era] = []*Card{}
		}
	}
}
