package assessment

import (
	"fmt"
	"time"

	"healy-academy/app/models"
)

// SkillSchema is the ordered set of skill names evaluated by a batch, with
// each skill's maximum score.
type SkillSchema struct {
	Names     []string           `json:"names"`
	MaxScores map[string]float64 `json:"max_scores"`
}

// Contains reports whether the schema already carries the named skill.
func (s *SkillSchema) Contains(name string) bool {
	_, ok := s.MaxScores[name]
	return ok
}

// Clone returns an independent copy of the schema.
func (s *SkillSchema) Clone() SkillSchema {
	names := make([]string, len(s.Names))
	copy(names, s.Names)
	maxScores := make(map[string]float64, len(s.MaxScores))
	for k, v := range s.MaxScores {
		maxScores[k] = v
	}
	return SkillSchema{Names: names, MaxScores: maxScores}
}

// BatchDetail is one loaded batch: the immutable member records in query
// order plus the derived skill schema.
type BatchDetail struct {
	Title   string
	Date    time.Time
	Records []*models.AssessmentRecord
	Schema  SkillSchema
}

// LoadBatch fetches all records for the (title, date) key and derives the
// skill schema. A batch with zero members does not exist (or was concurrently
// deleted); that is an empty state, not an error, and is reported as a nil
// detail.
//
// The schema is derived as the union of all members' skill names rather than
// trusting the first record alone: order follows the first record, names the
// first record lacks are appended in scan order, and each skill's max score
// comes from the first member that carries it. Members with divergent skill
// sets therefore still render every column.
func LoadBatch(store RecordStore, title string, date time.Time) (*BatchDetail, error) {
	records, err := store.QueryRecords(RecordFilter{Title: &title, Date: &date})
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %q %s: %w", title, date.Format(dateLayout), err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return &BatchDetail{
		Title:   title,
		Date:    date,
		Records: records,
		Schema:  DeriveSchema(records),
	}, nil
}

// DeriveSchema builds the union schema over the given records.
func DeriveSchema(records []*models.AssessmentRecord) SkillSchema {
	schema := SkillSchema{MaxScores: make(map[string]float64)}
	for _, record := range records {
		for _, skill := range record.Skills {
			if schema.Contains(skill.Name) {
				continue
			}
			schema.Names = append(schema.Names, skill.Name)
			schema.MaxScores[skill.Name] = skill.MaxScore
		}
	}
	return schema
}
