package assessment

import (
	"time"

	"healy-academy/app/models"
)

// commitAttempts is how many times a single record update is tried before it
// is reported as failed.
const commitAttempts = 3

// commitBackoff is the base delay between attempts; attempt n waits n times
// this long.
const commitBackoff = 100 * time.Millisecond

// CommitFailure describes one record that could not be persisted.
type CommitFailure struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// CommitOutcome reports exactly which records were persisted and which were
// not. The store has no batch-level transaction, so a partially-failed commit
// leaves the committed records in place; callers surface the split to the
// user instead of an opaque "some failed".
type CommitOutcome struct {
	Committed []string        `json:"committed"`
	Failed    []CommitFailure `json:"failed"`
}

// Success reports whether every record was persisted.
func (o *CommitOutcome) Success() bool {
	return len(o.Failed) == 0
}

// Commit persists the session's working records, updating exactly two fields
// per record (skills, total score), sequentially. Every record is attempted
// regardless of earlier failures; each failing update is retried with a short
// backoff before being recorded as failed. The update is idempotent, so a
// retry after an ambiguous failure is safe.
//
// On full success the caller should reload the batch rather than trust the
// in-memory working set, to surface any concurrent external changes. Edits
// are rejected while the commit is running.
func (s *EditSession) Commit(store RecordStore) (*CommitOutcome, error) {
	working, err := s.beginCommit()
	if err != nil {
		return nil, err
	}

	outcome := &CommitOutcome{}
	for _, record := range working {
		if err := updateWithRetry(store, record); err != nil {
			outcome.Failed = append(outcome.Failed, CommitFailure{
				RecordID: record.ID,
				Reason:   err.Error(),
			})
			continue
		}
		outcome.Committed = append(outcome.Committed, record.ID)
	}

	s.endCommit(outcome.Success())
	return outcome, nil
}

func updateWithRetry(store RecordStore, record *models.AssessmentRecord) error {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		err = store.UpdateRecordSkills(record.ID, record.Skills, record.TotalScore)
		if err == nil {
			return nil
		}
		if attempt < commitAttempts {
			time.Sleep(time.Duration(attempt) * commitBackoff)
		}
	}
	return err
}
