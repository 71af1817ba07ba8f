// ABOUTME: Tests for the pairwise distance and population diversity metric
// ABOUTME: Covers the degenerate small-population cases and the [0,1] bounds

package main

import (
	"testing"

	"course-scheduler/timetable"
)

func TestDistance(t *testing.T) {
	a := Individual{Genes: []Gene{
		{Classroom: 0, Slot: 0, Instructor: -1},
		{Classroom: 1, Slot: 1, Instructor: 0},
		{Classroom: 2, Slot: 2, Instructor: 1},
		{Classroom: 3, Slot: 3, Instructor: -1},
	}}

	identical := a.Clone()
	if got := distance(&a, &identical); got != 0 {
		t.Errorf("distance to clone = %v, want 0", got)
	}

	// A differing instructor alone makes the whole triple differ
	oneOff := a.Clone()
	oneOff.Genes[1].Instructor = 1

	if got := distance(&a, &oneOff); got != 0.25 {
		t.Errorf("distance with 1 of 4 differing = %v, want 0.25", got)
	}

	allOff := Individual{Genes: []Gene{
		{Classroom: 9, Slot: 9, Instructor: -1},
		{Classroom: 9, Slot: 9, Instructor: -1},
		{Classroom: 9, Slot: 9, Instructor: -1},
		{Classroom: 9, Slot: 9, Instructor: -1},
	}}

	if got := distance(&a, &allOff); got != 1 {
		t.Errorf("distance with all differing = %v, want 1", got)
	}
}

func TestPopulationDiversity(t *testing.T) {
	base := Individual{Genes: []Gene{
		{Classroom: 0, Slot: 0, Instructor: -1},
		{Classroom: 1, Slot: 1, Instructor: -1},
	}}

	if got := populationDiversity(nil); got != 0 {
		t.Errorf("diversity of empty population = %v, want 0", got)
	}

	if got := populationDiversity([]Individual{base}); got != 0 {
		t.Errorf("diversity of single individual = %v, want 0", got)
	}

	clones := []Individual{base.Clone(), base.Clone(), base.Clone()}
	if got := populationDiversity(clones); got != 0 {
		t.Errorf("diversity of clones = %v, want 0", got)
	}

	// Two individuals differing in one of two genes: mean distance 0.5
	half := base.Clone()
	half.Genes[0].Classroom = 5

	if got := populationDiversity([]Individual{base, half}); got != 0.5 {
		t.Errorf("diversity = %v, want 0.5", got)
	}
}

func TestPopulationDiversityBounds(t *testing.T) {
	u, err := timetable.NewUniverse(distinctCohortCourses(5), testClassrooms(3), nil, nil, testSlots(4))
	if err != nil {
		t.Fatalf("NewUniverse failed: %v", err)
	}

	s, err := NewScheduler(u, testConfig(), 13, nil)
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}

	population := make([]Individual, 10)
	for i := range population {
		population[i] = s.newIndividual()
	}

	d := populationDiversity(population)
	if d < 0 || d > 1 {
		t.Errorf("diversity %v out of [0,1]", d)
	}
}

// BenchmarkPopulationDiversity measures the O(n²) diversity scan
func BenchmarkPopulationDiversity(b *testing.B) {
	u, err := timetable.NewUniverse(distinctCohortCourses(20), testClassrooms(6), nil, nil, timetable.DefaultSlots())
	if err != nil {
		b.Fatalf("NewUniverse failed: %v", err)
	}

	s, err := NewScheduler(u, testConfig(), 1, nil)
	if err != nil {
		b.Fatalf("NewScheduler failed: %v", err)
	}

	population := make([]Individual, 50)
	for i := range population {
		population[i] = s.newIndividual()
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		populationDiversity(population)
	}
}
