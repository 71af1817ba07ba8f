// ABOUTME: Tests for the cost evaluator: hard conflicts, cohort clash and continuity
// ABOUTME: Includes symmetry under course reordering and continuity bounds

package main

import (
	"testing"

	"course-scheduler/timetable"
)

// evalScheduler builds a scheduler for direct evaluator tests (the seed and
// observer are irrelevant here)
func evalScheduler(t *testing.T, u *timetable.Universe) *Scheduler {
	t.Helper()

	s, err := NewScheduler(u, testConfig(), 1, nil)
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}

	return s
}

func TestEvaluateClassroomClash(t *testing.T) {
	u := buildTestUniverse(t, distinctCohortCourses(2), testClassrooms(2), nil, nil, testSlots(2))
	s := evalScheduler(t, u)

	ind := Individual{Genes: []Gene{
		{Classroom: 0, Slot: 0, Instructor: -1},
		{Classroom: 0, Slot: 0, Instructor: -1},
	}}

	s.evaluate(&ind, 0)

	if ind.Cost != 5 || ind.Conflicts != 1 {
		t.Errorf("Shared (classroom, slot): cost=%v conflicts=%d, want 5/1", ind.Cost, ind.Conflicts)
	}

	// Same classroom, different slots: no clash
	ind.Genes[1].Slot = 1
	s.evaluate(&ind, 0)

	if ind.Cost != 0 || ind.Conflicts != 0 {
		t.Errorf("Different slots: cost=%v conflicts=%d, want 0/0", ind.Cost, ind.Conflicts)
	}
}

func TestEvaluateInstructorClash(t *testing.T) {
	u := buildTestUniverse(t,
		distinctCohortCourses(2),
		testClassrooms(2),
		allDayInstructors(1),
		[]timetable.Relation{
			{Registration: "100", Code: "C0"},
			{Registration: "100", Code: "C1"},
		},
		testSlots(2),
	)
	s := evalScheduler(t, u)

	ind := Individual{Genes: []Gene{
		{Classroom: 0, Slot: 0, Instructor: 0},
		{Classroom: 1, Slot: 0, Instructor: 0},
	}}

	s.evaluate(&ind, 0)

	if ind.Cost != 1 || ind.Conflicts != 1 {
		t.Errorf("Same instructor, same slot: cost=%v conflicts=%d, want 1/1", ind.Cost, ind.Conflicts)
	}

	// Null instructors never clash with each other
	ind.Genes[0].Instructor = -1
	ind.Genes[1].Instructor = -1
	s.evaluate(&ind, 0)

	if ind.Cost != 0 || ind.Conflicts != 0 {
		t.Errorf("Null instructors: cost=%v conflicts=%d, want 0/0", ind.Cost, ind.Conflicts)
	}
}

func TestEvaluateAvailabilityBreach(t *testing.T) {
	instructors := []timetable.Instructor{
		{Name: "Late", Registration: "100", ShiftStart: "15:00", ShiftEnd: "20:00"},
	}

	u := buildTestUniverse(t,
		distinctCohortCourses(1),
		testClassrooms(1),
		instructors,
		[]timetable.Relation{{Registration: "100", Code: "C0"}},
		testSlots(3), // 13:40, 14:30, 15:20
	)
	s := evalScheduler(t, u)

	ind := Individual{Genes: []Gene{{Classroom: 0, Slot: 0, Instructor: 0}}}

	s.evaluate(&ind, 0)

	if ind.Cost != 5 || ind.Conflicts != 1 {
		t.Errorf("Instructor outside shift: cost=%v conflicts=%d, want 5/1", ind.Cost, ind.Conflicts)
	}

	// 15:20 is inside the 15:00-20:00 shift
	ind.Genes[0].Slot = 2
	s.evaluate(&ind, 0)

	if ind.Cost != 0 || ind.Conflicts != 0 {
		t.Errorf("Instructor inside shift: cost=%v conflicts=%d, want 0/0", ind.Cost, ind.Conflicts)
	}
}

func TestEvaluateCohortClash(t *testing.T) {
	u := buildTestUniverse(t, sameCohortCourses(2), testClassrooms(2), nil, nil, testSlots(2))
	s := evalScheduler(t, u)

	// Same cohort, same slot, different classrooms: the soft penalty counts
	// toward cost but not toward conflicts.
	ind := Individual{Genes: []Gene{
		{Classroom: 0, Slot: 0, Instructor: -1},
		{Classroom: 1, Slot: 0, Instructor: -1},
	}}

	s.evaluate(&ind, 0)

	if ind.Conflicts != 0 {
		t.Errorf("Cohort clash conflicts = %d, want 0 (soft penalty)", ind.Conflicts)
	}

	// Cohort slots [0,0] have no consecutive pair, so continuity is 0 and
	// the weighted shortfall is charged on top of the clash point.
	if ind.Continuity != 0 {
		t.Errorf("Continuity = %v, want 0", ind.Continuity)
	}

	if ind.Cost != 1 {
		t.Errorf("Cost at weight 0 = %v, want 1", ind.Cost)
	}

	s.evaluate(&ind, 10)

	if ind.Cost != 11 {
		t.Errorf("Cost at weight 10 = %v, want 11 (1 + 10*(1-0))", ind.Cost)
	}
}

func TestContinuity(t *testing.T) {
	tests := []struct {
		name  string
		slots []int
		want  float64
	}{
		{"fully consecutive", []int{0, 1, 2}, 100},
		{"reversed order still consecutive", []int{2, 1, 0}, 100},
		{"fully scattered", []int{0, 2, 4}, 0},
		{"half consecutive", []int{0, 1, 4}, 50},
		{"duplicate slots are not consecutive", []int{1, 1, 2}, 50},
	}

	u := buildTestUniverse(t, sameCohortCourses(3), testClassrooms(3), nil, nil, testSlots(5))
	s := evalScheduler(t, u)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genes := make([]Gene, 3)
			for i, slot := range tt.slots {
				genes[i] = Gene{Classroom: i, Slot: slot, Instructor: -1}
			}

			got := s.continuity(genes)
			if got != tt.want {
				t.Errorf("continuity(%v) = %v, want %v", tt.slots, got, tt.want)
			}

			if got < 0 || got > 100 {
				t.Errorf("continuity out of bounds: %v", got)
			}
		})
	}
}

func TestContinuityNoValidGroups(t *testing.T) {
	// Every cohort has a single course: continuity is vacuously 100
	u := buildTestUniverse(t, distinctCohortCourses(3), testClassrooms(3), nil, nil, testSlots(5))
	s := evalScheduler(t, u)

	genes := []Gene{
		{Classroom: 0, Slot: 0, Instructor: -1},
		{Classroom: 1, Slot: 2, Instructor: -1},
		{Classroom: 2, Slot: 4, Instructor: -1},
	}

	if got := s.continuity(genes); got != 100 {
		t.Errorf("continuity with no groups = %v, want 100", got)
	}
}

// TestEvaluateSymmetry: the cost is invariant under permutation of the course
// enumeration, since every pair rule is symmetric
func TestEvaluateSymmetry(t *testing.T) {
	courses := []timetable.Course{
		{Name: "A", Code: "A", Career: "Sys", Semester: "1"},
		{Name: "B", Code: "B", Career: "Sys", Semester: "1"},
		{Name: "C", Code: "C", Career: "Civil", Semester: "2"},
	}

	relations := []timetable.Relation{
		{Registration: "100", Code: "A"},
		{Registration: "100", Code: "B"},
		{Registration: "100", Code: "C"},
	}

	genes := []Gene{
		{Classroom: 0, Slot: 0, Instructor: 0},
		{Classroom: 0, Slot: 0, Instructor: 0},
		{Classroom: 1, Slot: 1, Instructor: -1},
	}

	// Permuted enumeration of the same schedule
	permutation := []int{2, 0, 1}

	permutedCourses := make([]timetable.Course, len(courses))
	permutedGenes := make([]Gene, len(genes))

	for i, p := range permutation {
		permutedCourses[i] = courses[p]
		permutedGenes[i] = genes[p]
	}

	u1 := buildTestUniverse(t, courses, testClassrooms(2), allDayInstructors(1), relations, testSlots(3))
	u2 := buildTestUniverse(t, permutedCourses, testClassrooms(2), allDayInstructors(1), relations, testSlots(3))

	s1 := evalScheduler(t, u1)
	s2 := evalScheduler(t, u2)

	ind1 := Individual{Genes: genes}
	ind2 := Individual{Genes: permutedGenes}

	s1.evaluate(&ind1, 25)
	s2.evaluate(&ind2, 25)

	if ind1.Cost != ind2.Cost || ind1.Conflicts != ind2.Conflicts || ind1.Continuity != ind2.Continuity {
		t.Errorf("Permuted evaluation differs: %v/%d/%v vs %v/%d/%v",
			ind1.Cost, ind1.Conflicts, ind1.Continuity,
			ind2.Cost, ind2.Conflicts, ind2.Continuity)
	}
}

// BenchmarkEvaluate measures the O(n²) evaluator on a mid-sized schedule
func BenchmarkEvaluate(b *testing.B) {
	courses := append(sameCohortCourses(10), distinctCohortCourses(10)...)

	u, err := timetable.NewUniverse(courses, testClassrooms(6), allDayInstructors(4), nil, timetable.DefaultSlots())
	if err != nil {
		b.Fatalf("NewUniverse failed: %v", err)
	}

	s, err := NewScheduler(u, testConfig(), 1, nil)
	if err != nil {
		b.Fatalf("NewScheduler failed: %v", err)
	}

	ind := s.newIndividual()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.evaluate(&ind, 25)
	}
}
