// ABOUTME: Shared initialization code for CLI and TUI modes
// ABOUTME: Provides universe loading, config setup and the debug logger

package main

import (
	"fmt"
	"log"
	"os"

	"course-scheduler/config"
	"course-scheduler/timetable"
)

// Debug logger - writes to file for debugging
var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	DataDir    string
	DryRun     bool
	OutputPath string
	DebugLog   bool
	Seed       uint64
}

// RunContext contains the loaded universe and associated configuration
type RunContext struct {
	Universe     *timetable.Universe
	Config       config.Config
	SharedConfig *config.SharedConfig
}

// InitializeRun loads the configuration, resolves the slot grid and loads
// the four data files from the data directory. Configuration and input-shape
// errors surface here, before any optimization starts.
func InitializeRun(dataDir string, verbose bool) (*RunContext, error) {
	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if verbose {
		fmt.Printf("Reading timetable data: %s\n", dataDir)
	}

	universe, err := timetable.LoadUniverse(dataDir, slotGrid(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable data: %w", err)
	}

	if verbose {
		fmt.Printf("Loaded %d courses, %d classrooms, %d instructors, %d slots\n",
			len(universe.Courses), len(universe.Classrooms), len(universe.Instructors), len(universe.Slots))
	}

	sharedConfig := &config.SharedConfig{}
	sharedConfig.Update(cfg)

	return &RunContext{
		Universe:     universe,
		Config:       cfg,
		SharedConfig: sharedConfig,
	}, nil
}

// slotGrid resolves the configured slot start times, falling back to the
// default grid
func slotGrid(cfg config.Config) []timetable.Slot {
	if len(cfg.SlotStarts) > 0 {
		return timetable.SlotsFromStarts(cfg.SlotStarts)
	}

	return timetable.DefaultSlots()
}

// SetupDebugLog initializes debug logging to the specified file
func SetupDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages to file if debug logger is enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate truncates a string to maxLen characters, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
