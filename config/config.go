package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gears/experiments"
	"gears/game"
	"gears/meta"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "GEARS_"

type RulesConfig struct {
	Rounds            int   `yaml:"rounds"`
	TotalLeaders      int   `yaml:"total_leaders"`
	MinFreeLeaders    int   `yaml:"min_free_leaders"`
	MaxBuildSlots     int   `yaml:"max_build_slots"`
	ExtraPolicySlots  int   `yaml:"extra_policy_slots"`
	EraStartRounds    []int `yaml:"era_start_rounds"`
	BoardRoundEffects bool  `yaml:"board_round_effects"`
}

// Config is a simulation run.
type Config struct {
	Games    int                       `yaml:"games"`
	SeedBase uint64                    `yaml:"seed_base"`
	Players  int                       `yaml:"players"`
	Agent    string                    `yaml:"agent"`
	Seats    []experiments.AgentConfig `yaml:"seats"`
	Matchups []experiments.Matchup     `yaml:"matchups"`
	Workers  int                       `yaml:"workers"`
	MaxSteps int                       `yaml:"max_steps"`
	Strict   bool                      `yaml:"strict"`
	Catalog  string                    `yaml:"catalog"` // YAML card catalog, embedded one when empty
	OutDir   string                    `yaml:"out_dir"`
	Compress bool                      `yaml:"compress"`
	LogLevel string                    `yaml:"log_level"`
	Rules    RulesConfig               `yaml:"rules"`
}

func Default() Config {
	return Config{
		Games:    10,
		SeedBase: 1,
		Players:  4,
		Agent:    "random",
		Workers:  1,
		MaxSteps: meta.MAX_STEPS,
		OutDir:   "results",
		LogLevel: "info",
		Rules: RulesConfig{
			Rounds:           meta.ROUNDS,
			TotalLeaders:     meta.TOTAL_LEADERS,
			MinFreeLeaders:   meta.MIN_FREE_LEADERS,
			MaxBuildSlots:    meta.MAX_BUILD_SLOTS,
			ExtraPolicySlots: meta.EXTRA_POLICY_SLOTS,
			EraStartRounds:   []int{3, 6, 9},
		},
	}
}

// Load overlays the YAML file at path on the defaults. Unknown keys are an
// error.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from GEARS_* environment variables.
func (c *Config) ApplyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	num("GAMES", &c.Games)
	if v, ok := os.LookupEnv(EnvPrefix + "SEED_BASE"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED_BASE: %w", EnvPrefix, err))
		} else {
			c.SeedBase = n
		}
	}
	num("PLAYERS", &c.Players)
	str("AGENT", &c.Agent)
	num("WORKERS", &c.Workers)
	num("MAX_STEPS", &c.MaxSteps)
	flag("STRICT", &c.Strict)
	str("CATALOG", &c.Catalog)
	str("OUT_DIR", &c.OutDir)
	flag("COMPRESS", &c.Compress)
	str("LOG_LEVEL", &c.LogLevel)
	num("ROUNDS", &c.Rules.Rounds)
	flag("BOARD_ROUND_EFFECTS", &c.Rules.BoardRoundEffects)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Players < meta.MIN_PLAYERS || c.Players > meta.MAX_PLAYERS {
		errs = append(errs, fmt.Errorf("players must be within %d..%d, got %d", meta.MIN_PLAYERS, meta.MAX_PLAYERS, c.Players))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if _, err := c.GameRules(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GameRules builds the rule set. Era start rounds must be three increasing
// rounds within the game.
func (c Config) GameRules() (game.Rules, error) {
	r := c.Rules
	if r.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", r.Rounds)
	}
	// three leaders start locked and one sits on the ring
	if least := max(4, r.MinFreeLeaders+1); r.TotalLeaders < least {
		return nil, fmt.Errorf("total leaders must be at least %d, got %d", least, r.TotalLeaders)
	}
	if r.MaxBuildSlots < 1 {
		return nil, fmt.Errorf("max build slots must be positive, got %d", r.MaxBuildSlots)
	}
	if len(r.EraStartRounds) != 3 {
		return nil, fmt.Errorf("need three era start rounds, got %v", r.EraStartRounds)
	}
	for i, round := range r.EraStartRounds {
		if round < 1 || (i > 0 && round <= r.EraStartRounds[i-1]) {
			return nil, fmt.Errorf("era start rounds must be increasing and positive, got %v", r.EraStartRounds)
		}
	}

	rules := game.NewStandardRules()
	rules.NumRounds = r.Rounds
	rules.Leaders = r.TotalLeaders
	rules.MinFree = r.MinFreeLeaders
	rules.BuildSlots = r.MaxBuildSlots
	rules.ExtraPolicies = r.ExtraPolicySlots
	copy(rules.EraStartRounds[:], r.EraStartRounds)
	rules.RoundEffects = r.BoardRoundEffects
	return rules, nil
}

// SeatConfigs returns Seats, or the single Agent for every seat.
func (c Config) SeatConfigs() []experiments.AgentConfig {
	if len(c.Seats) > 0 {
		return c.Seats
	}
	return []experiments.AgentConfig{{Name: c.Agent}}
}

// Batch translates the run settings for the batch runner.
func (c Config) Batch() (experiments.BatchConfig, error) {
	rules, err := c.GameRules()
	if err != nil {
		return experiments.BatchConfig{}, err
	}
	var catalog *game.Catalog
	if c.Catalog != "" {
		catalog, err = game.LoadCatalog(c.Catalog)
		if err != nil {
			return experiments.BatchConfig{}, fmt.Errorf("catalog: %w", err)
		}
	}
	return experiments.BatchConfig{
		Games:    c.Games,
		SeedBase: c.SeedBase,
		Players:  c.Players,
		Seats:    c.SeatConfigs(),
		Workers:  c.Workers,
		Rules:    rules,
		Catalog:  catalog,
		Strict:   c.Strict,
		MaxSteps: c.MaxSteps,
	}, nil
}
