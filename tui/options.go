// ABOUTME: Options and telemetry types shared between the TUI and its host
// ABOUTME: Defines the Update frame and the epoch Runner contract

package tui

import (
	"time"

	"course-scheduler/timetable"
)

// Options configures the dashboard
type Options struct {
	DataDir string // directory watched for input file changes
}

// Update is one frame of optimizer telemetry for the dashboard. The final
// frame of an epoch has Done set and carries the run summary.
type Update struct {
	Epoch         int
	Generation    int
	Generations   int
	BestCost      float64
	Conflicts     int
	ContinuityPct float64
	Diversity     float64
	MutationRate  float64
	EliteCount    int
	Schedule      []timetable.ScheduleRow

	Done        bool
	Convergence int
	Elapsed     time.Duration
	Err         error
}

// Runner executes one optimization epoch, streaming frames into updates and
// closing the channel when the run finishes. Each epoch reloads its inputs,
// so a restart picks up edited data and config files.
type Runner func(epoch int, updates chan<- Update)
