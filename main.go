// ABOUTME: Entry point for the course-scheduler application
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI or TUI modes

// Package main provides the entry point for course-scheduler, a genetic
// algorithm-based university timetable generator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	visual := flag.Bool("visual", false, "run in visual/interactive mode with a live dashboard")
	debug := flag.Bool("debug", false, "enable debug logging to course-scheduler-debug.log")
	dryRun := flag.Bool("dry-run", false, "preview optimization without writing the schedule")
	output := flag.String("output", "", "write the best schedule to this CSV file")
	seed := flag.Uint64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: course-scheduler [flags] <data-dir>")
		fmt.Println("Example: course-scheduler ./data")
		fmt.Println("\nThe data directory must contain cursos.csv, salones.csv,")
		fmt.Println("docentes.csv and relaciones_docente_curso.csv")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	opts := RunOptions{
		DataDir:    args[0],
		DryRun:     *dryRun,
		OutputPath: *output,
		DebugLog:   *debug,
		Seed:       *seed,
	}

	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *visual {
		if err := RunTUI(opts); err != nil {
			log.Printf("TUI error: %v", err)

			return 1
		}

		return 0
	}

	if err := RunCLI(opts); err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
