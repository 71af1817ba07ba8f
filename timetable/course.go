// ABOUTME: Defines the Course, Classroom and Instructor domain types
// ABOUTME: Includes the instructor availability check against a time slot

// Package timetable holds the university scheduling domain: courses,
// classrooms, instructors, time slots and the immutable universe the
// optimizer draws assignments from. It also reads the tabular input files
// and writes the chosen schedule back out.
package timetable

import (
	"fmt"
	"time"
)

// Course is a single scheduled teaching unit. Code is the unique key; Career
// and Semester together identify the cohort the course belongs to.
type Course struct {
	Name     string
	Code     string
	Career   string
	Semester string
	Section  string
	Type     string
}

// String returns a formatted string representation of the course
func (c Course) String() string {
	return fmt.Sprintf("%s (%s, %s sem %s)", c.Name, c.Code, c.Career, c.Semester)
}

// Classroom is a physical room courses can be assigned to. ID is the unique key.
type Classroom struct {
	ID   string
	Name string
}

// Instructor teaches courses within a daily shift window. Registration is the
// unique key. Shift bounds are kept as the raw "HH:MM" strings from the input
// file; malformed bounds simply make the instructor unavailable everywhere.
type Instructor struct {
	Name         string
	Registration string
	ShiftStart   string // "HH:MM" 24h
	ShiftEnd     string // "HH:MM" 24h
}

// Relation links an instructor to a course they are allowed to teach.
type Relation struct {
	Registration string // foreign key to Instructor.Registration
	Code         string // foreign key to Course.Code
}

// String returns a formatted string representation of the instructor
func (d Instructor) String() string {
	return fmt.Sprintf("%s (%s, %s-%s)", d.Name, d.Registration, d.ShiftStart, d.ShiftEnd)
}

// Available reports whether the instructor can teach a class starting at the
// given slot: the shift must have begun by the slot start and last until the
// class ends. Malformed time strings on either side make this false rather
// than an error.
func (d Instructor) Available(s Slot) bool {
	start, err := parseClock(s.Start)
	if err != nil {
		return false
	}

	shiftStart, err := parseClock(d.ShiftStart)
	if err != nil {
		return false
	}

	shiftEnd, err := parseClock(d.ShiftEnd)
	if err != nil {
		return false
	}

	end := start.Add(SlotDuration)

	return !start.Before(shiftStart) && !end.After(shiftEnd)
}

// parseClock parses an "HH:MM" 24h clock string
func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
