// ABOUTME: CLI mode implementation for non-interactive timetable optimization
// ABOUTME: Handles progress display, result output and schedule rendering

package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"course-scheduler/timetable"
)

const spinnerUpdateInterval = 500 * time.Millisecond

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunCLI executes CLI mode optimization
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("course-scheduler-debug.log"); err != nil {
			return err
		}
	}

	run, err := InitializeRun(opts.DataDir, true)
	if err != nil {
		return err
	}

	fmt.Printf("\nOptimizing timetable... (%d generations, population %d)\n\n",
		run.Config.Generations, run.Config.PopulationSize)

	result, err := cliSchedule(run, opts.Seed)
	if err != nil {
		return err
	}

	fmt.Printf("\nConverged at generation %d of %d\n", result.Convergence, run.Config.Generations)
	fmt.Printf("Best cost: %.2f, conflicts: %d, continuity: %.1f%%\n",
		result.Cost, result.Conflicts, result.ContinuityPct)
	fmt.Printf("Elapsed: %v, memory: %.1f MB\n",
		result.Elapsed.Round(time.Millisecond), float64(result.MemoryBytes)/(1024*1024))

	fmt.Println("\nBest schedule:")
	printSchedule(result.Best)

	if opts.DryRun {
		fmt.Println("\n--dry-run mode: schedule not written")

		return nil
	}

	if opts.OutputPath != "" {
		fmt.Printf("\nWriting schedule to: %s\n", opts.OutputPath)

		if err := timetable.WriteSchedule(opts.OutputPath, result.Best); err != nil {
			return fmt.Errorf("failed to write schedule: %w", err)
		}

		fmt.Println("Done!")
	}

	return nil
}

// cliSchedule runs the engine with CLI-specific progress display
func cliSchedule(run *RunContext, seed uint64) (Result, error) {
	startTime := time.Now()

	updateChan := make(chan Update, 10)

	scheduler, err := NewScheduler(run.Universe, run.Config, seed, channelObserver{updates: updateChan})
	if err != nil {
		return Result{}, err
	}

	done := make(chan Result, 1)

	go func() {
		done <- scheduler.Run()
		close(updateChan)
	}()

	// Progress state: print a line whenever the best cost improves, keep a
	// spinner alive in between on interactive terminals.
	previousBest := math.MaxFloat64
	minPrecision := 2
	isTerminal := isTTY(os.Stdout)

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerIdx := 0

	var statusTicker *time.Ticker
	if isTerminal {
		statusTicker = time.NewTicker(spinnerUpdateInterval)
		defer statusTicker.Stop()
	}

	tickerChan := func() <-chan time.Time {
		if statusTicker != nil {
			return statusTicker.C
		}

		// Non-TTY: never-firing channel, no spinner spam in logs
		return nil
	}

	formatElapsed := func(d time.Duration) string {
		var s string
		if d >= time.Minute {
			s = fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
		} else {
			s = fmt.Sprintf("%ds", int(d.Seconds()))
		}

		return fmt.Sprintf("%6s", s)
	}

	var currentGen int

	var result Result

loop:
	for {
		select {
		case update, ok := <-updateChan:
			if !ok {
				result = <-done

				break loop
			}

			currentGen = update.Generation

			if update.BestCost < previousBest {
				if isTerminal {
					fmt.Print("\r\033[K")
				}

				var costStr string
				costStr, minPrecision = FormatWithMonotonicPrecision(previousBest, update.BestCost, minPrecision)
				fmt.Printf("%s Gen %5d - cost: %s  conflicts: %d  continuity: %.1f%%\n",
					formatElapsed(time.Since(startTime)), currentGen, costStr, update.Conflicts, update.ContinuityPct)
				previousBest = update.BestCost
			}

		case <-tickerChan():
			elapsed := time.Since(startTime)
			fmt.Printf("\r%s Gen %d %s     ", formatElapsed(elapsed), currentGen, spinnerFrames[spinnerIdx])
			spinnerIdx = (spinnerIdx + 1) % len(spinnerFrames)

		case result = <-done:
			// Drain any buffered updates so the channel close doesn't race
			for range updateChan {
			}

			break loop
		}
	}

	if isTerminal {
		fmt.Print("\r\033[K")
	}

	return result, nil
}

// printSchedule renders the schedule as a table sorted by slot then classroom
func printSchedule(rows []timetable.ScheduleRow) {
	sorted := make([]timetable.ScheduleRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Slot.Start != sorted[j].Slot.Start {
			return sorted[i].Slot.Start < sorted[j].Slot.Start
		}

		return sorted[i].Classroom.Name < sorted[j].Classroom.Name
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "Slot\tClassroom\tCourse\tCode\tCareer\tSem\tInstructor"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "----\t---------\t------\t----\t------\t---\t----------"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for _, row := range sorted {
		instructor := "-"
		if row.Instructor != nil {
			instructor = row.Instructor.Name
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Slot.String(),
			truncate(row.Classroom.Name, 15),
			truncate(row.Course.Name, 30),
			row.Course.Code,
			truncate(row.Course.Career, 20),
			row.Course.Semester,
			truncate(instructor, 25),
		); err != nil {
			log.Printf("Warning: failed to write schedule row: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}
}
