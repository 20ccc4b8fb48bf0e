package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gears/config"
	"gears/experiments"
	"gears/experiments/metrics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gears", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML run configuration")
	envPath := fs.String("env", ".env", "dotenv file with GEARS_* overrides")
	numGames := fs.Int("games", 0, "number of games")
	seed := fs.Uint64("seed", 0, "seed of the first game")
	players := fs.Int("players", 0, "players per game")
	agentName := fs.String("agent", "", "agent for every seat")
	seats := fs.String("seats", "", "comma separated agents, cycled over the seats")
	workers := fs.Int("workers", 0, "games run concurrently")
	strict := fs.Bool("strict", false, "validate state consistency after every move")
	outDir := fs.String("out", "", "results directory")
	compress := fs.Bool("compress", false, "zstd-compress the game log")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn or error")
	matchups := fs.Bool("matchups", false, "run the matchups of the config file instead of a single batch")
	repro := fs.Bool("check-repro", false, "play the first seed twice and compare the runs")
	summarize := fs.String("aggregate", "", "summarize an existing games.jsonl[.zst] and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := config.LoadDotEnv(*envPath); err != nil {
		return err
	}
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	// explicit flags win over file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *numGames
		case "seed":
			cfg.SeedBase = *seed
		case "players":
			cfg.Players = *players
		case "agent":
			cfg.Agent = *agentName
			cfg.Seats = nil
		case "seats":
			cfg.Seats = nil
			for _, name := range strings.Split(*seats, ",") {
				cfg.Seats = append(cfg.Seats, experiments.AgentConfig{Name: strings.TrimSpace(name)})
			}
		case "workers":
			cfg.Workers = *workers
		case "strict":
			cfg.Strict = *strict
		case "out":
			cfg.OutDir = *outDir
		case "compress":
			cfg.Compress = *compress
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	if *summarize != "" {
		return aggregateFile(*summarize)
	}

	batch, err := cfg.Batch()
	if err != nil {
		return err
	}

	switch {
	case *repro:
		return experiments.CheckReproducible(batch, cfg.SeedBase)
	case *matchups:
		if len(cfg.Matchups) == 0 {
			return fmt.Errorf("no matchups configured")
		}
		results, err := experiments.RunMatchups(batch, cfg.Matchups)
		if err != nil {
			return err
		}
		for _, r := range results {
			log.Info().Msgf("%s: avg VP %v, win rate %v", r.Matchup.Name, r.Summary.AvgVP, r.Summary.WinRate)
		}
		return nil
	}

	games, err := experiments.RunBatch(batch)
	if err != nil {
		return err
	}
	summary, err := experiments.Aggregate(games, 0)
	if err != nil {
		return err
	}
	dir, err := experiments.WriteResults(cfg.OutDir, "batch", games, summary, cfg.Compress)
	if err != nil {
		return err
	}
	log.Info().Msgf("avg VP %v, win rate %v, first player win rate %.2f", summary.AvgVP, summary.WinRate, summary.FirstPlayerWinRate)
	log.Info().Msgf("results stored in %s", dir)
	return nil
}

func aggregateFile(path string) error {
	games, skipped, err := metrics.ReadGameMetrics(path)
	if err != nil {
		return err
	}
	summary, err := experiments.Aggregate(games, skipped)
	if err != nil {
		return err
	}
	log.Info().Msgf("%d games (%d skipped): avg VP %v, VP variance %v, win rate %v", summary.Games, summary.Skipped, summary.AvgVP, summary.VPVar, summary.WinRate)
	return nil
}
