// ABOUTME: Reads the four tabular input files (courses, classrooms, instructors, relations)
// ABOUTME: Writes the chosen schedule back out as a CSV grid source

package timetable

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Standard file names inside a data directory.
const (
	CoursesFile     = "cursos.csv"
	ClassroomsFile  = "salones.csv"
	InstructorsFile = "docentes.csv"
	RelationsFile   = "relaciones_docente_curso.csv"
)

// LoadCourses reads a course CSV with columns name, code, career, semester,
// section, type (header row required, any column order).
func LoadCourses(path string) ([]Course, error) {
	rows, err := readCSV(path, "name", "code", "career", "semester", "section", "type")
	if err != nil {
		return nil, err
	}

	courses := make([]Course, len(rows))
	for i, row := range rows {
		courses[i] = Course{
			Name:     row["name"],
			Code:     row["code"],
			Career:   row["career"],
			Semester: row["semester"],
			Section:  row["section"],
			Type:     row["type"],
		}
	}

	return courses, nil
}

// LoadClassrooms reads a classroom CSV with columns id, name.
func LoadClassrooms(path string) ([]Classroom, error) {
	rows, err := readCSV(path, "id", "name")
	if err != nil {
		return nil, err
	}

	classrooms := make([]Classroom, len(rows))
	for i, row := range rows {
		classrooms[i] = Classroom{ID: row["id"], Name: row["name"]}
	}

	return classrooms, nil
}

// LoadInstructors reads an instructor CSV with columns name, registration,
// hora_entrada, hora_salida. Shift bounds stay raw strings; validity is
// decided at availability-check time.
func LoadInstructors(path string) ([]Instructor, error) {
	rows, err := readCSV(path, "name", "registration", "hora_entrada", "hora_salida")
	if err != nil {
		return nil, err
	}

	instructors := make([]Instructor, len(rows))
	for i, row := range rows {
		instructors[i] = Instructor{
			Name:         row["name"],
			Registration: row["registration"],
			ShiftStart:   row["hora_entrada"],
			ShiftEnd:     row["hora_salida"],
		}
	}

	return instructors, nil
}

// LoadRelations reads the instructor-course relation CSV with columns
// registro, codigo.
func LoadRelations(path string) ([]Relation, error) {
	rows, err := readCSV(path, "registro", "codigo")
	if err != nil {
		return nil, err
	}

	relations := make([]Relation, len(rows))
	for i, row := range rows {
		relations[i] = Relation{Registration: row["registro"], Code: row["codigo"]}
	}

	return relations, nil
}

// LoadUniverse loads the four standard files from a data directory and builds
// the universe with the given slot list.
func LoadUniverse(dir string, slots []Slot) (*Universe, error) {
	courses, err := LoadCourses(filepath.Join(dir, CoursesFile))
	if err != nil {
		return nil, err
	}

	classrooms, err := LoadClassrooms(filepath.Join(dir, ClassroomsFile))
	if err != nil {
		return nil, err
	}

	instructors, err := LoadInstructors(filepath.Join(dir, InstructorsFile))
	if err != nil {
		return nil, err
	}

	relations, err := LoadRelations(filepath.Join(dir, RelationsFile))
	if err != nil {
		return nil, err
	}

	return NewUniverse(courses, classrooms, instructors, relations, slots)
}

// ScheduleRow is one line of the final schedule: a course with its chosen
// classroom, slot and instructor (nil when the course has no eligible
// instructor).
type ScheduleRow struct {
	Course     Course
	Classroom  Classroom
	Slot       Slot
	Instructor *Instructor
}

// WriteSchedule writes the schedule rows as a CSV file suitable for feeding a
// grid renderer. An existing file is moved aside to a .bak backup first.
func WriteSchedule(path string, rows []ScheduleRow) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create schedule file: %w", err)
	}

	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)

	header := []string{"course", "code", "career", "semester", "classroom", "start", "end", "instructor"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		instructor := ""
		if row.Instructor != nil {
			instructor = row.Instructor.Name
		}

		record := []string{
			row.Course.Name,
			row.Course.Code,
			row.Course.Career,
			row.Course.Semester,
			row.Classroom.Name,
			row.Slot.Start,
			row.Slot.End(),
			instructor,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write schedule row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush schedule: %w", err)
	}

	return nil
}

// readCSV reads all records from path and maps each row by the named columns.
// The first record must be a header containing every wanted column.
func readCSV(path string, columns ...string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	header := records[0]
	indexes := make(map[string]int, len(columns))

	for _, col := range columns {
		idx := -1

		for i, name := range header {
			if name == col {
				idx = i

				break
			}
		}

		if idx == -1 {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}

		indexes[col] = idx
	}

	rows := make([]map[string]string, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))

		for col, idx := range indexes {
			if idx >= len(record) {
				return nil, fmt.Errorf("%s: short row %v", path, record)
			}

			row[col] = record[idx]
		}

		rows = append(rows, row)
	}

	return rows, nil
}
