package assessment_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func threeBatchStore() *fakeStore {
	return &fakeStore{records: []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal, skill("tumbling", 8, 10)),
		record("b", "Ben", "Winter Eval", "2024-01-15", models.AssessmentNormal, skill("tumbling", 6, 10)),
		record("c", "Cleo", "Summer Eval", "2024-06-20", models.AssessmentNormal, skill("tumbling", 4, 10)),
	}}
}

func TestDeleteBatch_RequiresCapability(t *testing.T) {
	store := threeBatchStore()
	coordinator := &assessment.DeletionCoordinator{Store: store}

	key := assessment.BatchKey{Title: "Spring Eval", Date: day("2024-03-01")}
	err := coordinator.DeleteBatch(key, false)
	require.ErrorIs(t, err, assessment.ErrNotPermitted)
	assert.Empty(t, store.deleted)

	require.NoError(t, coordinator.DeleteBatch(key, true))
	assert.Equal(t, []string{"a"}, store.deleted)
}

func TestDeleteBatches_AttemptsEveryKey(t *testing.T) {
	store := threeBatchStore()
	store.deleteErrs = map[string]error{"Winter Eval": errors.New("store unavailable")}
	coordinator := &assessment.DeletionCoordinator{Store: store}

	keys := []assessment.BatchKey{
		{Title: "Spring Eval", Date: day("2024-03-01")},
		{Title: "Winter Eval", Date: day("2024-01-15")},
		{Title: "Summer Eval", Date: day("2024-06-20")},
	}

	outcome, err := coordinator.DeleteBatches(keys, true)
	require.NoError(t, err)

	// The failing key does not stop the loop: keys 1 and 3 are removed.
	assert.False(t, outcome.Success())
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Results, 3)

	assert.True(t, outcome.Results[0].Deleted)
	assert.False(t, outcome.Results[1].Deleted)
	assert.Equal(t, "Winter Eval", outcome.Results[1].Key.Title)
	assert.Contains(t, outcome.Results[1].Reason, "store unavailable")
	assert.True(t, outcome.Results[2].Deleted)

	assert.ElementsMatch(t, []string{"a", "c"}, store.deleted)
}

func TestDeleteBatches_RequiresCapability(t *testing.T) {
	coordinator := &assessment.DeletionCoordinator{Store: threeBatchStore()}
	_, err := coordinator.DeleteBatches([]assessment.BatchKey{{Title: "Spring Eval", Date: day("2024-03-01")}}, false)
	require.ErrorIs(t, err, assessment.ErrNotPermitted)
}
