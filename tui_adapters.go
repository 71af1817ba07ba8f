// ABOUTME: Wires the genetic engine to the TUI dashboard
// ABOUTME: Runs each epoch on a goroutine and converts telemetry frames

package main

import (
	"fmt"

	"course-scheduler/config"
	"course-scheduler/timetable"
	"course-scheduler/tui"
)

// RunTUI starts the visual mode: the engine runs epoch by epoch on a
// background goroutine while the dashboard renders its telemetry. Editing
// the data files or the config file and restarting picks the changes up.
func RunTUI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("course-scheduler-debug.log"); err != nil {
			return err
		}
	}

	// Fail fast on broken inputs before entering the alternate screen.
	run, err := InitializeRun(opts.DataDir, false)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{DataDir: opts.DataDir}, newEpochRunner(opts, run.SharedConfig), debugf)
}

// newEpochRunner returns the per-epoch optimization function for the TUI.
// Every epoch re-reads config and data into the shared snapshot so a restart
// reflects edits; the seed is offset by the epoch so restarts explore a
// different trajectory while a fixed -seed run stays reproducible.
func newEpochRunner(opts RunOptions, shared *config.SharedConfig) tui.Runner {
	return func(epoch int, updates chan<- tui.Update) {
		defer close(updates)

		fail := func(err error) {
			updates <- tui.Update{Epoch: epoch, Err: err, Done: true}
		}

		if fresh, err := config.LoadConfig(config.GetConfigPath()); err == nil {
			shared.Update(fresh)
		}

		cfg := shared.Get()

		if err := cfg.Validate(); err != nil {
			fail(fmt.Errorf("invalid configuration: %w", err))

			return
		}

		universe, err := timetable.LoadUniverse(opts.DataDir, slotGrid(cfg))
		if err != nil {
			fail(fmt.Errorf("failed to load timetable data: %w", err))

			return
		}

		observer := ObserverFunc(func(u Update) {
			frame := tui.Update{
				Epoch:         epoch,
				Generation:    u.Generation,
				Generations:   cfg.Generations,
				BestCost:      u.BestCost,
				Conflicts:     u.Conflicts,
				ContinuityPct: u.ContinuityPct,
				Diversity:     u.Diversity,
				MutationRate:  u.MutationRate,
				EliteCount:    u.EliteCount,
				Schedule:      u.Schedule,
			}

			// Never block the engine on a slow UI; dropped frames are only
			// cosmetic, the final summary below is delivered reliably.
			select {
			case updates <- frame:
			default:
			}
		})

		scheduler, err := NewScheduler(universe, cfg, opts.Seed+uint64(epoch), observer)
		if err != nil {
			fail(err)

			return
		}

		debugf("[TUI] Epoch %d: starting run (%d courses)", epoch, len(universe.Courses))

		result := scheduler.Run()

		updates <- tui.Update{
			Epoch:         epoch,
			Generation:    result.Convergence,
			Generations:   cfg.Generations,
			BestCost:      result.Cost,
			Conflicts:     result.Conflicts,
			ContinuityPct: result.ContinuityPct,
			Schedule:      result.Best,
			Done:          true,
			Convergence:   result.Convergence,
			Elapsed:       result.Elapsed,
		}
	}
}
