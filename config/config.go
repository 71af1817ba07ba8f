// ABOUTME: Configuration management for the scheduling genetic algorithm
// ABOUTME: Handles loading/saving TOML config files, defaults and validation

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable parameters of a scheduling run
type Config struct {
	// Population parameters
	PopulationSize int `toml:"population_size"`
	Generations    int `toml:"generations"`
	TournamentSize int `toml:"tournament_size"`

	// Initial adaptive parameter values
	MutationRate      float64 `toml:"mutation_rate"`      // initial rate, decays over the run
	ContinuityPenalty float64 `toml:"continuity_penalty"` // initial continuity weight

	// Elite fraction bounds
	EliteFractionMin float64 `toml:"elite_fraction_min"`
	EliteFractionMax float64 `toml:"elite_fraction_max"`

	// Reinsertion of fresh individuals
	ReinsertionInterval int     `toml:"reinsertion_interval"`
	ReinsertionFraction float64 `toml:"reinsertion_fraction"`
	DiversityThreshold  float64 `toml:"diversity_threshold"`

	// Termination targets, each with its own enable flag. Disabled targets
	// are treated as satisfied; if none are enabled the run goes to the last
	// generation.
	TargetConflicts        int     `toml:"target_conflicts"`
	EnableTargetConflicts  bool    `toml:"enable_target_conflicts"`
	TargetContinuity       float64 `toml:"target_continuity"`
	EnableTargetContinuity bool    `toml:"enable_target_continuity"`
	TargetCost             float64 `toml:"target_cost"`
	EnableTargetCost       bool    `toml:"enable_target_cost"`

	// Slot grid start times ("HH:MM"). Empty means the built-in default grid.
	SlotStarts []string `toml:"slot_starts"`
}

// DefaultConfig returns the default run configuration. The termination
// default mirrors the original behavior of stopping once a conflict-free
// schedule is found.
func DefaultConfig() Config {
	return Config{
		PopulationSize:        100,
		Generations:           500,
		TournamentSize:        3,
		MutationRate:          0.3,
		ContinuityPenalty:     10.0,
		EliteFractionMin:      0.02,
		EliteFractionMax:      0.10,
		ReinsertionInterval:   50,
		ReinsertionFraction:   0.20,
		DiversityThreshold:    0.01,
		TargetConflicts:       0,
		EnableTargetConflicts: true,
	}
}

// Validate rejects configurations the optimizer cannot run with. It is
// called once before a run starts; nothing inside the generation loop
// re-checks these.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return errors.New("population_size must be positive")
	}

	if c.Generations <= 0 {
		return errors.New("generations must be positive")
	}

	if c.TournamentSize <= 0 {
		return errors.New("tournament_size must be positive")
	}

	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1], got %v", c.MutationRate)
	}

	if c.ContinuityPenalty < 0 {
		return fmt.Errorf("continuity_penalty must be non-negative, got %v", c.ContinuityPenalty)
	}

	if c.ReinsertionInterval <= 0 {
		return errors.New("reinsertion_interval must be positive")
	}

	if c.ReinsertionFraction < 0 || c.ReinsertionFraction > 1 {
		return fmt.Errorf("reinsertion_fraction must be in [0,1], got %v", c.ReinsertionFraction)
	}

	if c.DiversityThreshold < 0 {
		return fmt.Errorf("diversity_threshold must be non-negative, got %v", c.DiversityThreshold)
	}

	if c.EliteFractionMin < 0 || c.EliteFractionMin > 1 {
		return fmt.Errorf("elite_fraction_min must be in [0,1], got %v", c.EliteFractionMin)
	}

	if c.EliteFractionMax < 0 || c.EliteFractionMax > 1 {
		return fmt.Errorf("elite_fraction_max must be in [0,1], got %v", c.EliteFractionMax)
	}

	if c.EliteFractionMin > c.EliteFractionMax {
		return fmt.Errorf("elite_fraction_min %v exceeds elite_fraction_max %v", c.EliteFractionMin, c.EliteFractionMax)
	}

	return nil
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns the default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/course-scheduler/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./course-scheduler.toml"); err == nil {
		return "./course-scheduler.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./course-scheduler.toml"
	}

	return filepath.Join(home, ".config", "course-scheduler", "config.toml")
}

// SharedConfig wraps Config with a mutex for thread-safe access between the
// optimizer host and the TUI. The engine snapshots it once per run; edits
// apply to the next run.
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.config
}

// Update updates the config (thread-safe write)
func (sc *SharedConfig) Update(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
}
