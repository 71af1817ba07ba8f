// ABOUTME: Genetic operators: initialization, tournament selection, crossover and mutation
// ABOUTME: All random draws go through the scheduler's single seeded source

package main

// repairAttempts is how many alternative assignments the repair mutation
// tries per selected course.
const repairAttempts = 3

// randomGene samples a uniform assignment for the course: any classroom, any
// slot, and an eligible instructor (or none when the course has no eligible
// instructors).
func (s *Scheduler) randomGene(course int) Gene {
	gene := Gene{
		Classroom:  s.rng.IntN(len(s.universe.Classrooms)),
		Slot:       s.rng.IntN(len(s.universe.Slots)),
		Instructor: -1,
	}

	if eligible := s.universe.Eligible(course); len(eligible) > 0 {
		gene.Instructor = eligible[s.rng.IntN(len(eligible))]
	}

	return gene
}

// sampleInto refreshes every gene of the individual with independent uniform
// samples, invalidating its cached evaluation
func (s *Scheduler) sampleInto(ind *Individual) {
	for course := range ind.Genes {
		ind.Genes[course] = s.randomGene(course)
	}

	ind.Cost = 0
	ind.Conflicts = 0
	ind.Continuity = 0
}

// newIndividual allocates and samples a fresh individual
func (s *Scheduler) newIndividual() Individual {
	ind := Individual{Genes: make([]Gene, len(s.universe.Courses))}
	s.sampleInto(&ind)

	return ind
}

// tournament picks the configured number of distinct individuals uniformly
// without replacement and returns the lowest-cost one. Ties go to the earlier
// sample. Callers must only read the returned individual.
func (s *Scheduler) tournament(population []Individual) *Individual {
	n := len(population)

	k := s.config.TournamentSize
	if k > n {
		k = n
	}

	// Partial Fisher-Yates over the index buffer gives k distinct indices.
	if cap(s.tourney) < n {
		s.tourney = make([]int, n)
	}

	idx := s.tourney[:n]
	for i := range idx {
		idx[i] = i
	}

	best := -1

	for i := range k {
		j := i + s.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]

		if best == -1 || population[idx[i]].Cost < population[best].Cost {
			best = idx[i]
		}
	}

	return &population[best]
}

// crossover breeds dst from two parents. Early in the run the split-point
// form dominates to preserve large assignment blocks; late in the run the
// uniform form takes over for finer mixing.
func (s *Scheduler) crossover(dst *Individual, parent1, parent2 *Individual, gen int) {
	if s.rng.Float64() < 1-s.ctrl.ratio(gen) {
		s.singlePointCrossover(dst, parent1, parent2)
	} else {
		s.uniformCrossover(dst, parent1, parent2)
	}
}

// singlePointCrossover takes parent1's assignments below the fixed midpoint
// split and parent2's from it onward
func (s *Scheduler) singlePointCrossover(dst, parent1, parent2 *Individual) {
	split := len(dst.Genes) / 2

	copy(dst.Genes[:split], parent1.Genes[:split])
	copy(dst.Genes[split:], parent2.Genes[split:])
}

// uniformCrossover takes each course's assignment from either parent with
// equal probability
func (s *Scheduler) uniformCrossover(dst, parent1, parent2 *Individual) {
	for i := range dst.Genes {
		if s.rng.Float64() < 0.5 {
			dst.Genes[i] = parent1.Genes[i]
		} else {
			dst.Genes[i] = parent2.Genes[i]
		}
	}
}

// mutate applies the adaptive mutation mix: mostly cost-guided repair early
// in the run, shifting to pure random replacement late.
func (s *Scheduler) mutate(ind *Individual, gen int, rate float64, weight float64) {
	if s.rng.Float64() < 1-s.ctrl.ratio(gen) {
		s.repairMutate(ind, rate, weight)
	} else {
		s.randomMutate(ind, rate)
	}
}

// randomMutate independently replaces each course's assignment with a fresh
// uniform sample at the given rate
func (s *Scheduler) randomMutate(ind *Individual, rate float64) {
	for course := range ind.Genes {
		if s.rng.Float64() < rate {
			ind.Genes[course] = s.randomGene(course)
		}
	}
}

// repairMutate independently considers each course at the given rate. For a
// selected course it samples a few alternative assignments and adopts the
// best one only if it strictly lowers the schedule's total cost; otherwise
// the original gene stays.
func (s *Scheduler) repairMutate(ind *Individual, rate float64, weight float64) {
	s.evaluate(ind, weight)

	for course := range ind.Genes {
		if s.rng.Float64() >= rate {
			continue
		}

		bestGene := ind.Genes[course]
		bestCost := ind.Cost
		bestConflicts := ind.Conflicts
		bestContinuity := ind.Continuity

		for range repairAttempts {
			alternative := s.randomGene(course)

			ind.Genes[course] = alternative
			s.evaluate(ind, weight)

			if ind.Cost < bestCost {
				bestGene = alternative
				bestCost = ind.Cost
				bestConflicts = ind.Conflicts
				bestContinuity = ind.Continuity
			}
		}

		ind.Genes[course] = bestGene
		ind.Cost = bestCost
		ind.Conflicts = bestConflicts
		ind.Continuity = bestContinuity
	}
}
