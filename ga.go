// ABOUTME: Core genetic algorithm engine for course timetable optimization
// ABOUTME: Owns the population, the generation loop, reinsertion and termination

package main

import (
	"cmp"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"course-scheduler/config"
	"course-scheduler/pool"
	"course-scheduler/timetable"
)

// Gene is one course assignment: ordinals into the universe's classroom,
// slot and instructor lists. Instructor is -1 when the course has no
// eligible instructor.
type Gene struct {
	Classroom  int
	Slot       int
	Instructor int
}

// Individual is a complete candidate schedule: one gene per course, indexed
// by course ordinal, with the cached evaluation of its latest scoring
// (lower cost = better).
type Individual struct {
	Genes      []Gene
	Cost       float64
	Conflicts  int
	Continuity float64
}

// Compare returns -1 if this individual is better (lower cost), 0 if equal, 1 if worse
func (ind Individual) Compare(other Individual) int {
	return cmp.Compare(ind.Cost, other.Cost)
}

// Clone returns a deep copy of the individual
func (ind Individual) Clone() Individual {
	clone := ind
	clone.Genes = slices.Clone(ind.Genes)

	return clone
}

// copyFrom overwrites this individual with src, reusing the gene buffer
func (ind *Individual) copyFrom(src *Individual) {
	copy(ind.Genes, src.Genes)
	ind.Cost = src.Cost
	ind.Conflicts = src.Conflicts
	ind.Continuity = src.Continuity
}

// Result is everything a host learns from a finished run.
type Result struct {
	Best             []timetable.ScheduleRow
	Cost             float64
	Conflicts        int
	ContinuityPct    float64
	Convergence      int // generation the termination targets were met, or Generations
	Elapsed          time.Duration
	MemoryBytes      uint64
	ConflictSeries   []int
	ContinuitySeries []float64
}

// Scheduler runs the adaptive genetic search over a fixed universe. It owns
// the only random source of the run; parallel workers never touch it, so a
// seed fully determines the outcome.
type Scheduler struct {
	universe *timetable.Universe
	config   config.Config
	ctrl     controller
	rng      *rand.Rand
	observer Observer

	cohortOf  []int      // course ordinal -> cohort id
	cohorts   [][]int    // cohort id -> course ordinals
	available [][]bool   // instructor ordinal x slot ordinal
	tourney   []int      // reusable index buffer for tournament sampling
}

// NewScheduler validates the configuration and precomputes the evaluation
// tables. The same seed with the same universe and config reproduces the run
// exactly.
func NewScheduler(universe *timetable.Universe, cfg config.Config, seed uint64, observer Observer) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		universe: universe,
		config:   cfg,
		ctrl:     controller{cfg: cfg},
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		observer: observer,
		cohorts:  universe.Cohorts(),
		tourney:  make([]int, cfg.PopulationSize),
	}

	s.cohortOf = make([]int, len(universe.Courses))
	for id, group := range s.cohorts {
		for _, course := range group {
			s.cohortOf[course] = id
		}
	}

	// Availability never changes during a run, so resolve the shift windows
	// against the slot grid once instead of parsing clock strings per pair.
	s.available = make([][]bool, len(universe.Instructors))
	for di, instructor := range universe.Instructors {
		s.available[di] = make([]bool, len(universe.Slots))
		for si, slot := range universe.Slots {
			s.available[di][si] = instructor.Available(slot)
		}
	}

	return s, nil
}

// Run executes the generation loop to termination or the configured
// generation count and returns the best schedule found.
func (s *Scheduler) Run() Result {
	var (
		startTime = time.Now()
		gens      = s.config.Generations
		popSize   = s.config.PopulationSize
	)

	// Scored population and breeding buffers, reused every generation.
	population := make([]Individual, popSize)
	nextGen := make([]Individual, popSize)

	for i := range population {
		population[i] = s.newIndividual()
		nextGen[i] = Individual{Genes: make([]Gene, len(s.universe.Courses))}
	}

	workers := pool.NewWorkerPool(popSize)
	defer workers.Close()

	best := Individual{Cost: math.MaxFloat64}
	convergence := gens

	conflictSeries := make([]int, 0, gens)
	continuitySeries := make([]float64, 0, gens)

	for gen := range gens {
		diversity := populationDiversity(population)

		mutationRate := s.ctrl.mutationRate(gen, diversity)
		weight := s.ctrl.continuityWeight(gen)
		eliteCount := s.ctrl.eliteCount(gen, diversity, popSize)

		debugf("[GA] Gen %d: diversity=%.4f rate=%.3f weight=%.1f elites=%d", gen, diversity, mutationRate, weight, eliteCount)

		// Evaluate every individual (parallelized; evaluation reads only the
		// individual and the immutable tables, never the random source).
		workers.Run(popSize, func(i int) {
			s.evaluate(&population[i], weight)
		})

		slices.SortFunc(population, func(a, b Individual) int { return a.Compare(b) })

		if population[0].Cost < best.Cost {
			best = population[0].Clone()
		}

		conflictSeries = append(conflictSeries, population[0].Conflicts)
		continuitySeries = append(continuitySeries, population[0].Continuity)

		if s.observer != nil {
			s.observer.Generation(Update{
				Generation:    gen,
				BestCost:      population[0].Cost,
				Conflicts:     population[0].Conflicts,
				ContinuityPct: population[0].Continuity,
				Diversity:     diversity,
				MutationRate:  mutationRate,
				EliteCount:    eliteCount,
				Schedule:      s.scheduleRows(population[0].Genes),
			})
		}

		if s.targetsMet(&population[0]) {
			convergence = gen

			break
		}

		// Elites carry over verbatim; the rest of the next generation is bred
		// from tournament winners.
		for i := range eliteCount {
			nextGen[i].copyFrom(&population[i])
		}

		children := nextGen[eliteCount:]

		for i := range children {
			parent1 := s.tournament(population)
			parent2 := s.tournament(population)
			s.crossover(&children[i], parent1, parent2, gen)
			s.mutate(&children[i], gen, mutationRate, weight)
		}

		s.reinsert(children, gen, diversity, weight, workers)

		population, nextGen = nextGen, population
	}

	var mem runtime.MemStats

	runtime.ReadMemStats(&mem)

	return Result{
		Best:             s.scheduleRows(best.Genes),
		Cost:             best.Cost,
		Conflicts:        best.Conflicts,
		ContinuityPct:    best.Continuity,
		Convergence:      convergence,
		Elapsed:          time.Since(startTime),
		MemoryBytes:      mem.Sys,
		ConflictSeries:   conflictSeries,
		ContinuitySeries: continuitySeries,
	}
}

// reinsert replaces the worst individuals of the non-elite pool with fresh
// samples, either because diversity collapsed below the threshold or on the
// periodic interval. The pool is scored at the current generation so "worst"
// is well defined, and left sorted.
func (s *Scheduler) reinsert(children []Individual, gen int, diversity float64, weight float64, workers *pool.WorkerPool) {
	cfg := s.config

	triggered := diversity < cfg.DiversityThreshold ||
		(gen > 0 && gen%cfg.ReinsertionInterval == 0)
	if !triggered {
		return
	}

	count := int(float64(cfg.PopulationSize) * cfg.ReinsertionFraction)
	if count > len(children) {
		count = len(children)
	}

	if count == 0 {
		return
	}

	debugf("[GA] Gen %d: reinserting %d fresh individuals (diversity=%.4f)", gen, count, diversity)

	workers.Run(len(children), func(i int) {
		s.evaluate(&children[i], weight)
	})

	slices.SortFunc(children, func(a, b Individual) int { return a.Compare(b) })

	for i := range count {
		s.sampleInto(&children[len(children)-1-i])
	}

	workers.Run(len(children), func(i int) {
		s.evaluate(&children[i], weight)
	})

	slices.SortFunc(children, func(a, b Individual) int { return a.Compare(b) })
}

// targetsMet applies the AND of all enabled termination criteria to the best
// individual of the current generation. With no criteria enabled the loop
// always runs to the last generation.
func (s *Scheduler) targetsMet(best *Individual) bool {
	cfg := s.config

	enabled := cfg.EnableTargetConflicts || cfg.EnableTargetContinuity || cfg.EnableTargetCost
	if !enabled {
		return false
	}

	if cfg.EnableTargetConflicts && best.Conflicts > cfg.TargetConflicts {
		return false
	}

	if cfg.EnableTargetContinuity && best.Continuity < cfg.TargetContinuity {
		return false
	}

	if cfg.EnableTargetCost && best.Cost > cfg.TargetCost {
		return false
	}

	return true
}

// scheduleRows converts a gene vector back to the course-keyed schedule
// exposed outside the engine. The rows snapshot immutable universe entries,
// so they are safe to hand to another goroutine.
func (s *Scheduler) scheduleRows(genes []Gene) []timetable.ScheduleRow {
	rows := make([]timetable.ScheduleRow, len(genes))

	for ci, gene := range genes {
		row := timetable.ScheduleRow{
			Course:    s.universe.Courses[ci],
			Classroom: s.universe.Classrooms[gene.Classroom],
			Slot:      s.universe.Slots[gene.Slot],
		}
		if gene.Instructor >= 0 {
			row.Instructor = &s.universe.Instructors[gene.Instructor]
		}

		rows[ci] = row
	}

	return rows
}
