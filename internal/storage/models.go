package storage

import "database/sql"

// Student is one row from student_enrollment_information.
// Nullable registrar columns use sql.NullString so missing phone
// numbers render as "not listed" instead of empty strings.
type Student struct {
	EnrollmentNo string         `db:"enrollment_no"`
	Name         string         `db:"name"`
	Branch       string         `db:"branch"`
	Semester     string         `db:"semester"`
	Class        string         `db:"class"`
	Batch        sql.NullString `db:"batch"`
	Phone        sql.NullString `db:"phone"`
	ParentPhone  sql.NullString `db:"parent_phone"`
	Email        sql.NullString `db:"email"`
	Gender       sql.NullString `db:"gender"`
	Hosteller    sql.NullString `db:"hosteller_commuters"`
}

// Teacher is one row from teacher_enrollment_info.
type Teacher struct {
	EmployeeID string         `db:"employee_id"`
	Name       string         `db:"name"`
	Email      sql.NullString `db:"email"`
	Short      sql.NullString `db:"short"`
}

// TimetableEntry is one scheduled lesson for a batch.
// Times are HH:MM:SS strings from the periods table.
type TimetableEntry struct {
	BatchName     string `db:"batch_name"`
	SubjectName   string `db:"subject_name"`
	LessonType    string `db:"lesson_type"`
	Period        string `db:"period"`
	Days          string `db:"days"`
	ClassroomName string `db:"classroom_name"`
	StartTime     string `db:"start_time"`
	EndTime       string `db:"end_time"`
}

// Room is a classroom that is free in the requested window.
type Room struct {
	ClassroomID string `db:"classroom_id"`
	Name        string `db:"classroom_name"`
}
