package database

import (
	"database/sql"
	"fmt"
	"time"

	"healy-academy/app/models"
)

// MarkAttendance records or updates a student's attendance for a day. The
// (student_id, date) pair is unique so a re-mark overwrites the earlier one.
func MarkAttendance(db *sql.DB, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (student_id, date, status, marked_by, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by,
		              notes = EXCLUDED.notes, updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		attendance.StudentID, attendance.Date, attendance.Status,
		attendance.MarkedBy, nullableString(attendance.Notes),
	).Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark attendance: %w", err)
	}

	return nil
}

// GetAttendanceByDate returns every attendance row for one training day with
// the student joined in.
func GetAttendanceByDate(db *sql.DB, date time.Time) ([]*models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.date, a.status, a.marked_by, COALESCE(a.notes, ''),
		       a.created_at, a.updated_at,
		       s.id, s.student_id, s.first_name, s.last_name
		FROM attendance a
		JOIN students s ON a.student_id = s.id AND s.deleted_at IS NULL
		WHERE a.date = $1 AND a.deleted_at IS NULL
		ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{Student: &models.Student{}}
		err := rows.Scan(
			&record.ID, &record.StudentID, &record.Date, &record.Status,
			&record.MarkedBy, &record.Notes, &record.CreatedAt, &record.UpdatedAt,
			&record.Student.ID, &record.Student.StudentID,
			&record.Student.FirstName, &record.Student.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetStudentAttendance returns one student's attendance history, newest first.
func GetStudentAttendance(db *sql.DB, studentID string, limit int) ([]*models.Attendance, error) {
	query := `
		SELECT id, student_id, date, status, marked_by, COALESCE(notes, ''), created_at, updated_at
		FROM attendance
		WHERE student_id = $1 AND deleted_at IS NULL
		ORDER BY date DESC`

	args := []interface{}{studentID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get student attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		record := &models.Attendance{}
		err := rows.Scan(
			&record.ID, &record.StudentID, &record.Date, &record.Status,
			&record.MarkedBy, &record.Notes, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetAttendanceRate returns the share of present or late marks over the last
// given number of days, as a percentage. Days with no marks at all count as
// no data, not as absences.
func GetAttendanceRate(db *sql.DB, days int) (float64, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status IN ('present', 'late')), COUNT(*)
		FROM attendance
		WHERE date >= CURRENT_DATE - $1::int AND deleted_at IS NULL`

	var present, total int
	if err := db.QueryRow(query, days).Scan(&present, &total); err != nil {
		return 0, fmt.Errorf("failed to get attendance rate: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	return float64(present) / float64(total) * 100, nil
}
