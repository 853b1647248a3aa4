package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

// AssessmentStore is the SQL-backed record store consumed by the batch
// engine. Skills are stored as a JSONB array; deletes are soft.
type AssessmentStore struct {
	DB *sql.DB
}

func NewAssessmentStore(db *sql.DB) *AssessmentStore {
	return &AssessmentStore{DB: db}
}

// QueryRecords fetches assessment records matching the filter, joined with
// the student (and the student's responsible coach) and the assessing coach.
func (s *AssessmentStore) QueryRecords(filter assessment.RecordFilter) ([]*models.AssessmentRecord, error) {
	query := `
		SELECT
			r.id, r.student_id, r.coach_id, r.title, r.date, r.status,
			r.skills, r.total_score, r.created_at, r.updated_at, r.deleted_at,
			st.id, st.student_id, st.first_name, st.last_name, st.coach_id,
			ac.id, ac.first_name, ac.last_name,
			rc.id, rc.first_name, rc.last_name
		FROM assessment_records r
		JOIN students st ON r.student_id = st.id
		JOIN users ac ON r.coach_id = ac.id
		LEFT JOIN users rc ON st.coach_id = rc.id
		WHERE r.deleted_at IS NULL
	`
	var args []interface{}

	if filter.Title != nil {
		args = append(args, *filter.Title)
		query += fmt.Sprintf(" AND r.title = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		query += fmt.Sprintf(" AND r.date = $%d", len(args))
	}
	if filter.AssessingCoachID != nil {
		args = append(args, *filter.AssessingCoachID)
		query += fmt.Sprintf(" AND r.coach_id = $%d", len(args))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		query += fmt.Sprintf(" AND r.student_id = $%d", len(args))
	}

	query += " ORDER BY r.id"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment records: %w", err)
	}
	defer rows.Close()

	var records []*models.AssessmentRecord
	for rows.Next() {
		var record models.AssessmentRecord
		var student models.Student
		var coach models.User
		var deletedAt sql.NullTime
		var skillsJSON []byte
		var respID, respFirst, respLast sql.NullString

		err := rows.Scan(
			&record.ID, &record.StudentID, &record.CoachID, &record.Title,
			&record.Date, &record.Status, &skillsJSON, &record.TotalScore,
			&record.CreatedAt, &record.UpdatedAt, &deletedAt,
			&student.ID, &student.StudentID, &student.FirstName, &student.LastName, &student.CoachID,
			&coach.ID, &coach.FirstName, &coach.LastName,
			&respID, &respFirst, &respLast,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment record: %w", err)
		}

		if err := json.Unmarshal(skillsJSON, &record.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for record %s: %w", record.ID, err)
		}
		if deletedAt.Valid {
			record.DeletedAt = &deletedAt.Time
		}
		if respID.Valid {
			student.Coach = &models.User{
				ID:        respID.String,
				FirstName: respFirst.String,
				LastName:  respLast.String,
			}
		}

		record.Student = &student
		record.Coach = &coach
		records = append(records, &record)
	}

	return records, rows.Err()
}

// UpdateRecordSkills writes the two derived fields of an edited record.
func (s *AssessmentStore) UpdateRecordSkills(id string, skills []models.SkillScore, totalScore float64) error {
	if skills == nil {
		skills = []models.SkillScore{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		UPDATE assessment_records
		SET skills = $1, total_score = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`
	result, err := s.DB.Exec(query, skillsJSON, totalScore, id)
	if err != nil {
		return fmt.Errorf("failed to update assessment record %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("assessment record %s not found or deleted", id)
	}
	return nil
}

// DeleteRecords soft-deletes every record matching the filter.
func (s *AssessmentStore) DeleteRecords(filter assessment.RecordFilter) error {
	query := `UPDATE assessment_records SET deleted_at = NOW() WHERE deleted_at IS NULL`
	var args []interface{}

	if filter.Title != nil {
		args = append(args, *filter.Title)
		query += fmt.Sprintf(" AND title = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		query += fmt.Sprintf(" AND date = $%d", len(args))
	}
	if filter.AssessingCoachID != nil {
		args = append(args, *filter.AssessingCoachID)
		query += fmt.Sprintf(" AND coach_id = $%d", len(args))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		query += fmt.Sprintf(" AND student_id = $%d", len(args))
	}

	if len(args) == 0 {
		return fmt.Errorf("refusing to delete assessment records without a filter")
	}

	if _, err := s.DB.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete assessment records: %w", err)
	}
	return nil
}

// CreateAssessmentRecord inserts a fully-formed record. Used by the batch
// assessment creation flow; the engine itself only reads, updates and deletes.
func CreateAssessmentRecord(db *sql.DB, record *models.AssessmentRecord) error {
	record.TotalScore = record.SumSkills()

	skillsJSON, err := json.Marshal(record.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		INSERT INTO assessment_records (student_id, coach_id, title, date, status, skills, total_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = db.QueryRow(query, record.StudentID, record.CoachID, record.Title,
		record.Date.Format("2006-01-02"), record.Status, skillsJSON, record.TotalScore).
		Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert assessment record: %w", err)
	}
	return nil
}
