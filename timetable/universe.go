// ABOUTME: Builds the immutable scheduling universe from loaded records
// ABOUTME: Precomputes the eligibility index and the (career, semester) cohorts

package timetable

import "errors"

// Input-shape errors. The optimizer cannot construct a valid assignment
// without at least one course, one classroom and one slot.
var (
	ErrNoCourses    = errors.New("course universe is empty")
	ErrNoClassrooms = errors.New("classroom universe is empty")
	ErrNoSlots      = errors.New("slot list is empty")
)

// Universe is the immutable input to a scheduling run: the course, classroom,
// instructor and slot lists in loader order, plus the derived eligibility
// index and cohort grouping. Build it once with NewUniverse and share it
// freely; nothing here mutates after construction.
type Universe struct {
	Courses     []Course
	Classrooms  []Classroom
	Instructors []Instructor
	Slots       []Slot

	eligible [][]int // course ordinal -> eligible instructor ordinals
	cohorts  [][]int // (career, semester) groups -> course ordinals
}

// NewUniverse validates the input shape and precomputes the eligibility index
// and cohort groups. Relations referencing unknown registrations or course
// codes are skipped, as are duplicate pairs. A course with no relation simply
// has an empty eligibility list.
func NewUniverse(courses []Course, classrooms []Classroom, instructors []Instructor, relations []Relation, slots []Slot) (*Universe, error) {
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}

	if len(classrooms) == 0 {
		return nil, ErrNoClassrooms
	}

	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	u := &Universe{
		Courses:     courses,
		Classrooms:  classrooms,
		Instructors: instructors,
		Slots:       slots,
	}

	u.eligible = buildEligibility(courses, instructors, relations)
	u.cohorts = buildCohorts(courses)

	return u, nil
}

// Eligible returns the instructor ordinals permitted to teach the course at
// the given ordinal. The returned slice is shared; callers must not modify it.
func (u *Universe) Eligible(course int) []int {
	return u.eligible[course]
}

// Cohorts returns the course ordinals grouped by (career, semester), in first
// appearance order. The returned slices are shared; callers must not modify
// them.
func (u *Universe) Cohorts() [][]int {
	return u.cohorts
}

// buildEligibility resolves the relation pairs to ordinals
func buildEligibility(courses []Course, instructors []Instructor, relations []Relation) [][]int {
	courseByCode := make(map[string]int, len(courses))
	for i, c := range courses {
		courseByCode[c.Code] = i
	}

	instructorByReg := make(map[string]int, len(instructors))
	for i, d := range instructors {
		instructorByReg[d.Registration] = i
	}

	eligible := make([][]int, len(courses))

	for _, rel := range relations {
		ci, ok := courseByCode[rel.Code]
		if !ok {
			continue
		}

		di, ok := instructorByReg[rel.Registration]
		if !ok {
			continue
		}

		if contains(eligible[ci], di) {
			continue
		}

		eligible[ci] = append(eligible[ci], di)
	}

	return eligible
}

// buildCohorts groups course ordinals by (career, semester)
func buildCohorts(courses []Course) [][]int {
	type cohortKey struct {
		career   string
		semester string
	}

	index := make(map[cohortKey]int)

	var cohorts [][]int

	for i, c := range courses {
		key := cohortKey{career: c.Career, semester: c.Semester}

		gi, ok := index[key]
		if !ok {
			gi = len(cohorts)
			index[key] = gi
			cohorts = append(cohorts, nil)
		}

		cohorts[gi] = append(cohorts[gi], i)
	}

	return cohorts
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}

	return false
}
