package database

import (
	"database/sql"
	"fmt"
	"strings"

	"healy-academy/app/models"
)

// CreateStudent inserts a new student. StudentID must already be set; use
// GenerateStudentID when the caller does not provide one.
func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, first_name, last_name, gender, date_of_birth, guardian_name, phone, coach_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		student.StudentID, student.FirstName, student.LastName,
		nullableString(string(student.Gender)), student.DateOfBirth,
		nullableString(student.GuardianName), nullableString(student.Phone),
		student.CoachID,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GenerateStudentID returns the next registration number in the HA-YYYY-NNNN
// sequence for the current year.
func GenerateStudentID(db *sql.DB) (string, error) {
	var maxID sql.NullString
	query := `
		SELECT MAX(student_id) FROM students
		WHERE student_id LIKE 'HA-' || to_char(now(), 'YYYY') || '-%'`

	if err := db.QueryRow(query).Scan(&maxID); err != nil {
		return "", fmt.Errorf("failed to generate student id: %w", err)
	}

	next := 1
	if maxID.Valid {
		parts := strings.Split(maxID.String, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &next)
			next++
		}
	}

	var year string
	if err := db.QueryRow(`SELECT to_char(now(), 'YYYY')`).Scan(&year); err != nil {
		return "", fmt.Errorf("failed to generate student id: %w", err)
	}

	return fmt.Sprintf("HA-%s-%04d", year, next), nil
}

// GetStudentByID returns one student with their responsible coach joined in.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `
		SELECT s.id, s.student_id, s.first_name, s.last_name,
		       COALESCE(s.gender, ''), s.date_of_birth,
		       COALESCE(s.guardian_name, ''), COALESCE(s.phone, ''),
		       s.coach_id, s.is_active, s.created_at, s.updated_at,
		       c.id, c.first_name, c.last_name, c.email
		FROM students s
		LEFT JOIN users c ON s.coach_id = c.id AND c.deleted_at IS NULL
		WHERE s.id = $1 AND s.deleted_at IS NULL`

	student := &models.Student{}
	var gender string
	var coachID, coachFirst, coachLast, coachEmail sql.NullString

	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.StudentID, &student.FirstName, &student.LastName,
		&gender, &student.DateOfBirth, &student.GuardianName, &student.Phone,
		&student.CoachID, &student.IsActive, &student.CreatedAt, &student.UpdatedAt,
		&coachID, &coachFirst, &coachLast, &coachEmail,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	student.Gender = models.Gender(gender)
	if coachID.Valid {
		student.Coach = &models.User{
			ID:        coachID.String,
			FirstName: coachFirst.String,
			LastName:  coachLast.String,
			Email:     coachEmail.String,
		}
	}

	return student, nil
}

// StudentFilters narrows GetStudents. Zero values mean "no filter".
type StudentFilters struct {
	Search  string
	CoachID string
	Gender  string
	Status  string // active, inactive
	Limit   int
	Offset  int
}

// GetStudents returns students matching the filters, newest first, with the
// responsible coach joined in and the unpaginated total count.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	conditions := []string{"s.deleted_at IS NULL"}
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(s.first_name || ' ' || s.last_name) LIKE $%d OR LOWER(s.student_id) LIKE $%d)", n, n))
	}
	if filters.CoachID != "" {
		args = append(args, filters.CoachID)
		conditions = append(conditions, fmt.Sprintf("s.coach_id = $%d", len(args)))
	}
	if filters.Gender != "" {
		args = append(args, filters.Gender)
		conditions = append(conditions, fmt.Sprintf("s.gender = $%d", len(args)))
	}
	if filters.Status == "active" {
		conditions = append(conditions, "s.is_active = true")
	} else if filters.Status == "inactive" {
		conditions = append(conditions, "s.is_active = false")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM students s WHERE " + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query := `
		SELECT s.id, s.student_id, s.first_name, s.last_name,
		       COALESCE(s.gender, ''), s.date_of_birth,
		       COALESCE(s.guardian_name, ''), COALESCE(s.phone, ''),
		       s.coach_id, s.is_active, s.created_at, s.updated_at,
		       c.id, c.first_name, c.last_name, c.email
		FROM students s
		LEFT JOIN users c ON s.coach_id = c.id AND c.deleted_at IS NULL
		WHERE ` + where + `
		ORDER BY s.created_at DESC`

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		var gender string
		var coachID, coachFirst, coachLast, coachEmail sql.NullString

		err := rows.Scan(
			&student.ID, &student.StudentID, &student.FirstName, &student.LastName,
			&gender, &student.DateOfBirth, &student.GuardianName, &student.Phone,
			&student.CoachID, &student.IsActive, &student.CreatedAt, &student.UpdatedAt,
			&coachID, &coachFirst, &coachLast, &coachEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student: %w", err)
		}

		student.Gender = models.Gender(gender)
		if coachID.Valid {
			student.Coach = &models.User{
				ID:        coachID.String,
				FirstName: coachFirst.String,
				LastName:  coachLast.String,
				Email:     coachEmail.String,
			}
		}

		students = append(students, student)
	}

	return students, total, rows.Err()
}

// UpdateStudent persists edits to an existing student's fields.
func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, gender = $3, date_of_birth = $4,
		    guardian_name = $5, phone = $6, coach_id = $7, is_active = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9 AND deleted_at IS NULL`

	result, err := db.Exec(query,
		student.FirstName, student.LastName,
		nullableString(string(student.Gender)), student.DateOfBirth,
		nullableString(student.GuardianName), nullableString(student.Phone),
		student.CoachID, student.IsActive, student.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteStudent soft deletes a student.
func DeleteStudent(db *sql.DB, id string) error {
	query := `UPDATE students SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
