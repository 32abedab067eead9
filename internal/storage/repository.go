package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guni-dev/guni-chatbot-go/internal/config"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
	"github.com/guni-dev/guni-chatbot-go/internal/stringutil"
)

// QueryMetrics records query timing and failures.
type QueryMetrics interface {
	RecordQuery(operation string, duration float64)
	RecordQueryError(operation string)
}

// Repository runs campus data queries against Postgres.
type Repository struct {
	db      *DB
	log     *logger.Logger
	metrics QueryMetrics // optional
}

// NewRepository creates a repository over the given connection.
func NewRepository(db *DB, log *logger.Logger) *Repository {
	return &Repository{db: db, log: log.WithModule("storage")}
}

// SetMetrics attaches a metrics recorder. Safe to skip in tests.
func (r *Repository) SetMetrics(m QueryMetrics) {
	r.metrics = m
}

// observe logs slow queries and feeds the metrics recorder.
func (r *Repository) observe(operation string, start time.Time, err error) {
	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.RecordQuery(operation, elapsed.Seconds())
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			r.metrics.RecordQueryError(operation)
		}
	}
	if elapsed > config.SlowQueryThreshold {
		r.log.Warn("slow query",
			"operation", operation,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}

const studentColumns = `
	enrollment_no,
	name_of_student AS name,
	branch,
	semester::text AS semester,
	class,
	batch,
	student_phone_no AS phone,
	parents_phone_no AS parent_phone,
	student_gnu_mail_id AS email,
	gender,
	hosteller_commuters`

// StudentByEnrollment fetches a single student by 11-digit enrollment number.
// Returns (nil, nil) when no student matches.
func (r *Repository) StudentByEnrollment(ctx context.Context, enrollment string) (*Student, error) {
	query := `SELECT ` + studentColumns + `
	FROM student_enrollment_information
	WHERE enrollment_no = $1
	LIMIT 1`

	start := time.Now()
	var s Student
	err := r.db.conn.GetContext(ctx, &s, query, enrollment)
	r.observe("student_by_enrollment", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("student by enrollment: %w", err)
	}
	return &s, nil
}

// TeacherByID fetches a single teacher by 5-6 digit employee ID.
// Returns (nil, nil) when no teacher matches.
func (r *Repository) TeacherByID(ctx context.Context, id string) (*Teacher, error) {
	query := `SELECT
		user_id AS employee_id,
		tt_display_full_name AS name,
		email_id AS email,
		short
	FROM teacher_enrollment_info
	WHERE user_id = $1
	LIMIT 1`

	start := time.Now()
	var t Teacher
	err := r.db.conn.GetContext(ctx, &t, query, id)
	r.observe("teacher_by_id", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("teacher by id: %w", err)
	}
	return &t, nil
}

// StudentsByPhone finds students whose own or parent's number matches
// the 10-digit phone.
func (r *Repository) StudentsByPhone(ctx context.Context, phone string) ([]Student, error) {
	query := `SELECT ` + studentColumns + `
	FROM student_enrollment_information
	WHERE student_phone_no = $1
	   OR parents_phone_no = $1
	LIMIT 10`

	start := time.Now()
	var students []Student
	err := r.db.conn.SelectContext(ctx, &students, query, phone)
	r.observe("students_by_phone", start, err)
	if err != nil {
		return nil, fmt.Errorf("students by phone: %w", err)
	}
	return students, nil
}

// StudentsByEmail finds students by university or personal email,
// matched as a case-insensitive substring.
func (r *Repository) StudentsByEmail(ctx context.Context, email string) ([]Student, error) {
	query := `SELECT ` + studentColumns + `
	FROM student_enrollment_information
	WHERE student_gnu_mail_id ILIKE $1
	   OR student_personal_mail_id ILIKE $1
	LIMIT 10`

	start := time.Now()
	var students []Student
	err := r.db.conn.SelectContext(ctx, &students, query, "%"+email+"%")
	r.observe("students_by_email", start, err)
	if err != nil {
		return nil, fmt.Errorf("students by email: %w", err)
	}
	return students, nil
}

// StudentsByName searches students case-insensitively. Single-word
// names match anywhere in the stored name. Multi-word names prefer
// a full-phrase match and fall back to first+last word co-occurrence.
func (r *Repository) StudentsByName(ctx context.Context, name string) ([]Student, error) {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) == 0 {
		return nil, nil
	}

	start := time.Now()
	var (
		students []Student
		err      error
	)
	if len(parts) == 1 {
		query := `SELECT ` + studentColumns + `
	FROM student_enrollment_information
	WHERE name_of_student ILIKE $1
	ORDER BY name_of_student
	LIMIT 10`
		err = r.db.conn.SelectContext(ctx, &students, query, "%"+parts[0]+"%")
	} else {
		fullName := "%" + strings.Join(parts, " ") + "%"
		firstName := "%" + parts[0] + "%"
		lastName := "%" + parts[len(parts)-1] + "%"
		query := `SELECT ` + studentColumns + `
	FROM student_enrollment_information
	WHERE name_of_student ILIKE $1
	   OR (name_of_student ILIKE $2 AND name_of_student ILIKE $3)
	ORDER BY
		CASE WHEN name_of_student ILIKE $1 THEN 0 ELSE 1 END,
		name_of_student
	LIMIT 10`
		err = r.db.conn.SelectContext(ctx, &students, query, fullName, firstName, lastName)
	}
	r.observe("students_by_name", start, err)
	if err != nil {
		return nil, fmt.Errorf("students by name: %w", err)
	}
	return students, nil
}

// TeachersByName searches teachers by display name, case-insensitively.
// Used as a fallback when a name lookup finds no students. Multi-word
// queries match on the first word in SQL and filter for the remaining
// words in Go, so "ramesh patel" also finds "Patel Ramesh Kumar".
func (r *Repository) TeachersByName(ctx context.Context, name string) ([]Teacher, error) {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) == 0 {
		return nil, nil
	}

	query := `SELECT
		user_id AS employee_id,
		tt_display_full_name AS name,
		email_id AS email,
		short
	FROM teacher_enrollment_info
	WHERE tt_display_full_name ILIKE $1
	ORDER BY tt_display_full_name
	LIMIT 10`

	start := time.Now()
	var teachers []Teacher
	err := r.db.conn.SelectContext(ctx, &teachers, query, "%"+parts[0]+"%")
	r.observe("teachers_by_name", start, err)
	if err != nil {
		return nil, fmt.Errorf("teachers by name: %w", err)
	}

	if len(parts) == 1 {
		return teachers, nil
	}
	matched := teachers[:0]
	for _, t := range teachers {
		if stringutil.ContainsAllWords(t.Name, name) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// BatchTimetable returns the lessons for a batch on the day encoded
// by dayBinary, ordered by start time. Lessons reference groups and
// classrooms through Postgres array-literal text columns, unpacked
// with string_to_array.
func (r *Repository) BatchTimetable(ctx context.Context, batch, dayBinary string) ([]TimetableEntry, error) {
	query := `SELECT
		b.name AS batch_name,
		s.name AS subject_name,
		l.lesson_type,
		c.period::text AS period,
		c.days,
		cr.name AS classroom_name,
		p.start_time::text AS start_time,
		p.end_time::text AS end_time
	FROM batch b
	JOIN "group" g ON g.class_id = b.class_id
	JOIN lesson l ON g.group_id::text = ANY(
		string_to_array(trim(both '{}' from l.group_ids), ',')
	)
	JOIN card c ON c.lesson_id = l.lesson_id
	JOIN subject s ON s.subject_id = l.subject_id
	JOIN classroom cr ON cr.classroom_id::text = ANY(
		string_to_array(trim(both '{}' from l.classroom_ids), ',')
	)
	JOIN periods p ON p.period = c.period
	WHERE b.name = $1
	  AND c.days = $2
	ORDER BY p.start_time`

	start := time.Now()
	var entries []TimetableEntry
	err := r.db.conn.SelectContext(ctx, &entries, query, batch, dayBinary)
	r.observe("batch_timetable", start, err)
	if err != nil {
		return nil, fmt.Errorf("batch timetable: %w", err)
	}
	return entries, nil
}

// WhereIsBatch returns the lesson a batch is sitting in at the given
// wall-clock time on the day encoded by dayBinary. Usually zero or
// one row; free periods return none.
func (r *Repository) WhereIsBatch(ctx context.Context, batch, dayBinary string, now time.Time) ([]TimetableEntry, error) {
	query := `SELECT
		b.name AS batch_name,
		s.name AS subject_name,
		l.lesson_type,
		c.period::text AS period,
		c.days,
		cr.name AS classroom_name,
		p.start_time::text AS start_time,
		p.end_time::text AS end_time
	FROM batch b
	JOIN "group" g ON g.class_id = b.class_id
	JOIN lesson l ON g.group_id::text = ANY(
		string_to_array(trim(both '{}' from l.group_ids), ',')
	)
	JOIN card c ON c.lesson_id = l.lesson_id
	JOIN subject s ON s.subject_id = l.subject_id
	JOIN classroom cr ON cr.classroom_id::text = ANY(
		string_to_array(trim(both '{}' from l.classroom_ids), ',')
	)
	JOIN periods p ON p.period = c.period
	WHERE b.name = $1
	  AND c.days = $2
	  AND $3::time BETWEEN p.start_time AND p.end_time`

	start := time.Now()
	var entries []TimetableEntry
	err := r.db.conn.SelectContext(ctx, &entries, query, batch, dayBinary, now.Format("15:04:05"))
	r.observe("where_is_batch", start, err)
	if err != nil {
		return nil, fmt.Errorf("where is batch: %w", err)
	}
	return entries, nil
}

// FreeRoomsNow returns classrooms with no session covering the given
// wall-clock time.
func (r *Repository) FreeRoomsNow(ctx context.Context, now time.Time) ([]Room, error) {
	query := `SELECT
		c.classroom_id::text AS classroom_id,
		c.name AS classroom_name
	FROM classroom c
	WHERE c.classroom_id NOT IN (
		SELECT s.classroom_id
		FROM session s
		WHERE $1::time BETWEEN s.start_time::time AND s.end_time::time
	)`

	start := time.Now()
	var rooms []Room
	err := r.db.conn.SelectContext(ctx, &rooms, query, now.Format("15:04:05"))
	r.observe("free_rooms_now", start, err)
	if err != nil {
		return nil, fmt.Errorf("free rooms now: %w", err)
	}
	return rooms, nil
}

// FreeRoomsAt returns classrooms with no session overlapping the
// [startTime, endTime) window. Times are HH:MM:SS strings.
func (r *Repository) FreeRoomsAt(ctx context.Context, startTime, endTime string) ([]Room, error) {
	query := `SELECT
		c.classroom_id::text AS classroom_id,
		c.name AS classroom_name
	FROM classroom c
	WHERE c.classroom_id NOT IN (
		SELECT s.classroom_id
		FROM session s
		WHERE s.start_time::time < $2::time
		  AND s.end_time::time > $1::time
	)`

	start := time.Now()
	var rooms []Room
	err := r.db.conn.SelectContext(ctx, &rooms, query, startTime, endTime)
	r.observe("free_rooms_at", start, err)
	if err != nil {
		return nil, fmt.Errorf("free rooms at: %w", err)
	}
	return rooms, nil
}
