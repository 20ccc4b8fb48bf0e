package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Matchup is one seating of agents to compare.
type Matchup struct {
	Name  string        `yaml:"name"`
	Seats []AgentConfig `yaml:"seats"`
}

type MatchupResult struct {
	Matchup Matchup
	Summary Summary
}

// RunMatchups plays a batch per matchup on top of base, each over the same
// seeds so that seatings face identical decks.
func RunMatchups(base BatchConfig, matchups []Matchup) ([]MatchupResult, error) {
	results := make([]MatchupResult, 0, len(matchups))
	for mi, m := range matchups {
		log.Info().Msgf("starting matchup %d of %d (%s) with seats %+v...", mi+1, len(matchups), m.Name, m.Seats)

		cfg := base
		cfg.Seats = m.Seats
		games, err := RunBatch(cfg)
		if err != nil {
			return nil, fmt.Errorf("matchup %s: %w", m.Name, err)
		}
		summary, err := Aggregate(games, 0)
		if err != nil {
			return nil, fmt.Errorf("matchup %s: %w", m.Name, err)
		}
		results = append(results, MatchupResult{Matchup: m, Summary: summary})

		log.Info().Msgf("completed matchup %d of %d: win rates %v", mi+1, len(matchups), summary.WinRate)
	}
	return results, nil
}
