package assessment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"healy-academy/app/models"
)

// Validation and state errors reported by an edit session. All of them leave
// the working set untouched.
var (
	ErrScoreExceedsMax = errors.New("score exceeds the skill's maximum")
	ErrDuplicateSkill  = errors.New("skill already exists in this batch")
	ErrUnknownSkill    = errors.New("skill not found in this batch")
	ErrUnknownRecord   = errors.New("record not part of this batch")
	ErrCommitInFlight  = errors.New("a commit is in progress; edits are not allowed")
)

// EditSession holds a mutable working copy of a batch's records alongside the
// immutable loaded set. Score edits, skill additions and skill removals apply
// to the working copy only; Commit persists it, Discard resets it.
type EditSession struct {
	mu sync.Mutex

	title  string
	date   string
	loaded []*models.AssessmentRecord

	working []*models.AssessmentRecord
	schema  SkillSchema
	dirty   bool

	committing bool
}

// NewEditSession starts an edit session over a loaded batch.
func NewEditSession(detail *BatchDetail) *EditSession {
	s := &EditSession{
		title:  detail.Title,
		date:   detail.Date.Format(dateLayout),
		loaded: detail.Records,
		schema: detail.Schema.Clone(),
	}
	s.working = cloneRecords(detail.Records)
	return s
}

func cloneRecords(records []*models.AssessmentRecord) []*models.AssessmentRecord {
	cloned := make([]*models.AssessmentRecord, len(records))
	for i, r := range records {
		cloned[i] = r.Clone()
	}
	return cloned
}

// Working returns the session's working records. Callers must not mutate
// them; all mutation goes through the session's operations.
func (s *EditSession) Working() []*models.AssessmentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working
}

// Schema returns the session's current skill schema.
func (s *EditSession) Schema() SkillSchema {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema.Clone()
}

// Dirty reports whether the working set has uncommitted changes.
func (s *EditSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ParseScore turns raw user input into a score. Non-numeric input coerces to
// zero rather than erroring; negative input clamps to zero. Scores are never
// negative by construction.
func ParseScore(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// SetScore updates one skill's score in one record from raw input and
// recomputes that record's total. Input above the skill's max score is
// rejected with ErrScoreExceedsMax and changes nothing.
func (s *EditSession) SetScore(recordID, skillName, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInFlight
	}

	maxScore, ok := s.schema.MaxScores[skillName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, skillName)
	}

	value := ParseScore(raw)
	if value > maxScore {
		return fmt.Errorf("%w: %s (%.2f > %.2f)", ErrScoreExceedsMax, skillName, value, maxScore)
	}

	record := s.findRecord(recordID)
	if record == nil {
		return fmt.Errorf("%w: %s", ErrUnknownRecord, recordID)
	}

	for i := range record.Skills {
		if record.Skills[i].Name == skillName {
			record.Skills[i].Score = value
			record.TotalScore = record.SumSkills()
			s.dirty = true
			return nil
		}
	}

	// The schema knows the skill but this record predates it (divergent
	// member). Append it so the batch converges on the shared schema.
	record.Skills = append(record.Skills, models.SkillScore{Name: skillName, Score: value, MaxScore: maxScore})
	record.TotalScore = record.SumSkills()
	s.dirty = true
	return nil
}

// AddSkill appends a new skill to the schema and, with a zero score, to every
// working record. A name already present is rejected with ErrDuplicateSkill.
func (s *EditSession) AddSkill(name string, maxScore float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInFlight
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownSkill)
	}
	if maxScore <= 0 {
		return fmt.Errorf("max score must be positive, got %.2f", maxScore)
	}
	if s.schema.Contains(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, name)
	}

	s.schema.Names = append(s.schema.Names, name)
	s.schema.MaxScores[name] = maxScore

	for _, record := range s.working {
		record.Skills = append(record.Skills, models.SkillScore{Name: name, Score: 0, MaxScore: maxScore})
		// Zero score, so the stored total is already consistent.
	}

	s.dirty = true
	return nil
}

// RemoveSkill removes the named skill from the schema and from every working
// record, recomputing each affected record's total.
func (s *EditSession) RemoveSkill(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInFlight
	}

	if !s.schema.Contains(name) {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}

	names := s.schema.Names[:0]
	for _, n := range s.schema.Names {
		if n != name {
			names = append(names, n)
		}
	}
	s.schema.Names = names
	delete(s.schema.MaxScores, name)

	for _, record := range s.working {
		skills := record.Skills[:0]
		for _, skill := range record.Skills {
			if skill.Name != name {
				skills = append(skills, skill)
			}
		}
		record.Skills = skills
		record.TotalScore = record.SumSkills()
	}

	s.dirty = true
	return nil
}

// Discard replaces the working set with a fresh copy of the loaded records
// and rederives the schema, clearing the dirty flag.
func (s *EditSession) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return
	}

	s.working = cloneRecords(s.loaded)
	s.schema = DeriveSchema(s.loaded)
	s.dirty = false
}

func (s *EditSession) findRecord(id string) *models.AssessmentRecord {
	for _, record := range s.working {
		if record.ID == id {
			return record
		}
	}
	return nil
}

func (s *EditSession) beginCommit() ([]*models.AssessmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return nil, ErrCommitInFlight
	}
	s.committing = true
	return s.working, nil
}

func (s *EditSession) endCommit(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committing = false
	if success {
		s.dirty = false
	}
}
