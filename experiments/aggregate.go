package experiments

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gears/experiments/metrics"
)

var ErrNoGames = errors.New("no valid game metrics")

// Summary aggregates a batch. Per-seat slices are indexed by seating order.
type Summary struct {
	RunID              string         `json:"runId"`
	Games              int            `json:"games"`
	Skipped            int            `json:"skipped"`
	Players            int            `json:"players"`
	SeedBase           uint64         `json:"seedBase"`
	AvgVP              []float64      `json:"avgVP"`
	VPVar              []float64      `json:"vpVar"`
	WinRate            []float64      `json:"winRate"`
	FirstPlayerWinRate float64        `json:"firstPlayerWinRate"`
	AvgMoves           float64        `json:"avgMoves"`
	Histogram          map[string]int `json:"actionTagHistogram"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

// Aggregate summarizes games. The player count is taken from the first game;
// games with a different count or no VP are skipped. Every tied winner counts
// as a win, so win rates may add up to more than one.
func Aggregate(games []metrics.GameMetric, skipped int) (Summary, error) {
	s := Summary{
		Skipped:   skipped,
		SeedBase:  math.MaxUint64,
		Histogram: make(map[string]int),
	}
	var sum, sumSq, wins []float64
	moves := 0
	for _, g := range games {
		if len(g.PlayerVP) == 0 {
			s.Skipped++
			continue
		}
		if s.Players == 0 {
			s.Players = len(g.PlayerVP)
			sum = make([]float64, s.Players)
			sumSq = make([]float64, s.Players)
			wins = make([]float64, s.Players)
		}
		if len(g.PlayerVP) != s.Players {
			s.Skipped++
			continue
		}

		for i, vp := range g.PlayerVP {
			sum[i] += float64(vp)
			sumSq[i] += float64(vp * vp)
		}
		for _, id := range g.WinnerIDs {
			seat, err := strconv.Atoi(id)
			if err == nil && seat >= 0 && seat < s.Players {
				wins[seat]++
			}
		}
		for tag, n := range g.Histogram {
			s.Histogram[tag] += n
		}
		s.SeedBase = min(s.SeedBase, g.Seed)
		moves += g.Moves
		s.Games++
	}
	if s.Games == 0 {
		return Summary{}, ErrNoGames
	}

	n := float64(s.Games)
	s.AvgVP = make([]float64, s.Players)
	s.VPVar = make([]float64, s.Players)
	s.WinRate = make([]float64, s.Players)
	for i := range s.AvgVP {
		s.AvgVP[i] = sum[i] / n
		s.VPVar[i] = sumSq[i]/n - s.AvgVP[i]*s.AvgVP[i]
		s.WinRate[i] = wins[i] / n
	}
	s.FirstPlayerWinRate = s.WinRate[0]
	s.AvgMoves = float64(moves) / n
	s.RunID = uuid.NewString()
	s.GeneratedAt = time.Now().UTC()
	return s, nil
}
