package assessment

import (
	"errors"
)

// ErrNotPermitted is returned when the caller lacks the delete capability.
var ErrNotPermitted = errors.New("not permitted to delete assessments")

// BatchDeleteResult is the outcome for one key of a bulk delete.
type BatchDeleteResult struct {
	Key     BatchKey `json:"key"`
	Deleted bool     `json:"deleted"`
	Reason  string   `json:"reason,omitempty"`
}

// BulkDeleteOutcome reports per-key results after every key was attempted.
type BulkDeleteOutcome struct {
	Results []BatchDeleteResult `json:"results"`
	Failed  int                 `json:"failed"`
}

// Success reports whether every batch was deleted.
func (o *BulkDeleteOutcome) Success() bool {
	return o.Failed == 0
}

// DeletionCoordinator deletes batches by composite key. The capability
// boolean is resolved by the caller (role-to-capability mapping happens at
// session start); the coordinator only consumes it.
type DeletionCoordinator struct {
	Store RecordStore
}

// DeleteBatch removes every record matching the key with a single predicate
// delete.
func (d *DeletionCoordinator) DeleteBatch(key BatchKey, canDelete bool) error {
	if !canDelete {
		return ErrNotPermitted
	}
	return d.Store.DeleteRecords(RecordFilter{Title: &key.Title, Date: &key.Date})
}

// DeleteBatches deletes the given keys sequentially, one predicate delete per
// key. Every key is attempted exactly once regardless of earlier failures;
// the outcome carries a result per key so the caller can name exactly which
// batches survived.
func (d *DeletionCoordinator) DeleteBatches(keys []BatchKey, canDelete bool) (*BulkDeleteOutcome, error) {
	if !canDelete {
		return nil, ErrNotPermitted
	}

	outcome := &BulkDeleteOutcome{Results: make([]BatchDeleteResult, 0, len(keys))}
	for _, key := range keys {
		result := BatchDeleteResult{Key: key}
		if err := d.Store.DeleteRecords(RecordFilter{Title: &key.Title, Date: &key.Date}); err != nil {
			result.Reason = err.Error()
			outcome.Failed++
		} else {
			result.Deleted = true
		}
		outcome.Results = append(outcome.Results, result)
	}
	return outcome, nil
}
