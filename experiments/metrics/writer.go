package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder of dir/name for one batch.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameMetrics(games []GameMetric) error {
	path := filepath.Join(w.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"seed", "players", "winners", "player_vp", "first_player", "rounds", "built", "wonders", "moves", "shortfalls", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}

	for _, g := range games {
		row := []string{
			strconv.FormatUint(g.Seed, 10),
			strconv.Itoa(g.Players),
			strings.Join(g.WinnerIDs, ";"),
			joinInts(g.PlayerVP),
			g.FirstPlayer,
			strconv.Itoa(g.Rounds),
			joinInts(g.BuiltCount),
			joinInts(g.WonderCount),
			strconv.Itoa(g.Moves),
			strconv.Itoa(g.Shortfalls),
			g.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game row: %w", err)
		}
	}

	return nil
}

// WriteRoundMetrics writes one row per game, round and seat.
func (w *Writer) WriteRoundMetrics(games []GameMetric) error {
	path := filepath.Join(w.baseDir, "rounds.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create rounds file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"seed", "round", "seat", "vp", "built_delta", "gears", "food", "free_leaders", "available_cost"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write rounds header: %w", err)
	}

	for _, g := range games {
		for _, r := range g.PerRound {
			for seat := range r.VP {
				row := []string{
					strconv.FormatUint(g.Seed, 10),
					strconv.Itoa(r.Round),
					strconv.Itoa(seat),
					strconv.Itoa(r.VP[seat]),
					strconv.Itoa(r.BuiltDelta[seat]),
					strconv.Itoa(r.Gears[seat]),
					strconv.Itoa(r.Food[seat]),
					strconv.Itoa(r.FreeLeaders[seat]),
					strconv.Itoa(r.AvailableCost[seat]),
				}
				err = writer.Write(row)
				if err != nil {
					return fmt.Errorf("failed to write round row: %w", err)
				}
			}
		}
	}

	return nil
}

// WriteHistogram writes action counts sorted by tag.
func (w *Writer) WriteHistogram(histogram map[string]int) error {
	path := filepath.Join(w.baseDir, "actions.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create actions file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	err = writer.Write([]string{"action", "count"})
	if err != nil {
		return fmt.Errorf("failed to write actions header: %w", err)
	}

	tags := make([]string, 0, len(histogram))
	for tag := range histogram {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		err = writer.Write([]string{tag, strconv.Itoa(histogram[tag])})
		if err != nil {
			return fmt.Errorf("failed to write action row: %w", err)
		}
	}

	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}
