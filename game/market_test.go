package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func techCard(id string, t BuildType, serial int) *Card {
	return &Card{ID: id, Kind: TechCard, BuildType: t, Serial: serial}
}

func ids(cs []*Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestMarketReveal(t *testing.T) {
	t.Run("face-up cards are revealed before the deck", func(t *testing.T) {
		m := Market{
			TechDeck:   []*Card{techCard("L-deck", Land, 0), techCard("F-deck", FoodFacility, 0)},
			TechFaceUp: []*Card{techCard("L-old", Land, 3)},
		}

		c := m.Reveal(Land)

		require.Equal(t, "L-old", c.ID)
		require.Empty(t, m.TechFaceUp)
		require.Len(t, m.TechDeck, 2)
	})

	t.Run("falls back to the deck in deck order", func(t *testing.T) {
		m := Market{
			TechDeck: []*Card{techCard("G-1", Government, 1), techCard("L-1", Land, 1), techCard("G-0", Government, 0)},
		}

		c := m.Reveal(Government)

		require.Equal(t, "G-1", c.ID)
		require.Equal(t, []string{"L-1", "G-0"}, ids(m.TechDeck))
	})

	t.Run("market stays sorted by type, serial and id", func(t *testing.T) {
		m := Market{
			TechDeck: []*Card{
				techCard("G-2", Government, 2),
				techCard("L-5b", Land, 5),
				techCard("L-5a", Land, 5),
				techCard("L-1", Land, 1),
			},
		}
		for _, bt := range []BuildType{Government, Land, Land, Land} {
			require.NotNil(t, m.Reveal(bt))
		}

		require.Equal(t, []string{"L-1", "L-5a", "L-5b", "G-2"}, ids(m.TechMarket))
	})

	t.Run("missing type reveals nothing", func(t *testing.T) {
		m := Market{TechDeck: []*Card{techCard("L-1", Land, 1)}}

		require.False(t, m.HasTechOfType(Infrastructure))
		require.Nil(t, m.Reveal(Infrastructure))
		require.Len(t, m.TechDeck, 1)
		require.Empty(t, m.TechMarket)
	})
}

func TestMarketRotate(t *testing.T) {
	wonders := func() map[Era][]*Card {
		return map[Era][]*Card{
			Era1: {{ID: "W1-a", Kind: WonderCard, Era: Era1}, {ID: "W1-b", Kind: WonderCard, Era: Era1}},
			Era2: {{ID: "W2-a", Kind: WonderCard, Era: Era2}},
			Era3: {{ID: "W3-a", Kind: WonderCard, Era: Era3}},
		}
	}

	t.Run("unbought tech moves face-up", func(t *testing.T) {
		m := Market{
			TechFaceUp:   []*Card{techCard("L-old", Land, 0)},
			TechMarket:   []*Card{techCard("F-1", FoodFacility, 1)},
			WondersByEra: wonders(),
		}

		m.Rotate(NoEra, NoEra)

		require.Equal(t, []string{"L-old", "F-1"}, ids(m.TechFaceUp))
		require.Empty(t, m.TechMarket)
		require.Empty(t, m.WonderMarket)
	})

	t.Run("era change reveals the new pool", func(t *testing.T) {
		m := Market{WondersByEra: wonders()}

		m.Rotate(NoEra, Era1)

		require.Equal(t, []string{"W1-a", "W1-b"}, ids(m.WonderMarket))
		require.Empty(t, m.WondersByEra[Era1])
		require.Len(t, m.WondersByEra[Era2], 1)
	})

	t.Run("lapsed era wonders leave the game", func(t *testing.T) {
		m := Market{WondersByEra: wonders()}
		m.Rotate(NoEra, Era1)
		m.TakeWonder("W1-a")

		m.Rotate(Era1, Era2)

		require.Equal(t, []string{"W2-a"}, ids(m.WonderMarket))
		require.Empty(t, m.WondersByEra[Era1])
		require.Empty(t, m.WondersByEra[Era2])
		require.Len(t, m.WondersByEra[Era3], 1)
	})

	t.Run("same era keeps the wonder market", func(t *testing.T) {
		m := Market{WondersByEra: wonders()}
		m.Rotate(NoEra, Era1)

		m.Rotate(Era1, Era1)

		require.Equal(t, []string{"W1-a", "W1-b"}, ids(m.WonderMarket))
	})
}
