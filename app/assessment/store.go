// Package assessment implements the batch skill-assessment engine: grouping
// flat assessment records into logical batches, loading batch detail with a
// derived skill schema, structural editing of a batch's working copy, and
// committing, deleting and exporting batches.
//
// A batch is the set of assessment records sharing the same (title, date)
// pair. It has no stored identity; every batch operation is a client-side
// fan-out over the member records. Two concurrent editors of the same batch
// therefore race last-committer-wins per record; the engine does not detect
// lost updates.
package assessment

import (
	"time"

	"healy-academy/app/models"
)

// RecordFilter selects assessment records by equality predicates. Nil fields
// are ignored.
type RecordFilter struct {
	Title            *string
	Date             *time.Time
	AssessingCoachID *string
	StudentID        *string
}

// RecordStore is the persistence contract the engine consumes. The SQL
// implementation lives in app/database; tests use an in-memory fake.
type RecordStore interface {
	// QueryRecords returns all non-deleted records matching the filter,
	// with student and coach relations populated.
	QueryRecords(filter RecordFilter) ([]*models.AssessmentRecord, error)

	// UpdateRecordSkills persists exactly the two derived fields of an
	// edited record: its skills array and its total score.
	UpdateRecordSkills(id string, skills []models.SkillScore, totalScore float64) error

	// DeleteRecords removes every record matching the filter.
	DeleteRecords(filter RecordFilter) error
}
