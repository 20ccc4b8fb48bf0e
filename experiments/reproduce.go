package experiments

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

var ErrNotReproducible = errors.New("same seed produced different games")

// CheckReproducible plays seed twice and compares the per-round snapshots and
// the final VP of both runs.
func CheckReproducible(cfg BatchConfig, seed uint64) error {
	first, err := RunGame(cfg, seed)
	if err != nil {
		return fmt.Errorf("first run: %w", err)
	}
	second, err := RunGame(cfg, seed)
	if err != nil {
		return fmt.Errorf("second run: %w", err)
	}

	if len(first.Snapshots) != len(second.Snapshots) {
		return fmt.Errorf("%w: seed %d played %d and %d rounds", ErrNotReproducible, seed, len(first.Snapshots), len(second.Snapshots))
	}
	for i, a := range first.Snapshots {
		b := second.Snapshots[i]
		if a.Hash != b.Hash {
			return fmt.Errorf("%w: seed %d diverged in round %d (%x vs %x)", ErrNotReproducible, seed, a.Round, a.Hash, b.Hash)
		}
	}
	if !slices.Equal(first.Metric.PlayerVP, second.Metric.PlayerVP) {
		return fmt.Errorf("%w: seed %d final VP %v vs %v", ErrNotReproducible, seed, first.Metric.PlayerVP, second.Metric.PlayerVP)
	}

	log.Info().Msgf("seed %d reproduced over %d rounds", seed, len(first.Snapshots))
	return nil
}
