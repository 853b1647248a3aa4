package assessment_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func TestCommit_PersistsEveryWorkingRecord(t *testing.T) {
	store, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.SetScore("a", "tumbling", "9"))
	require.NoError(t, session.SetScore("b", "vault", "5"))

	outcome, err := session.Commit(store)
	require.NoError(t, err)
	assert.True(t, outcome.Success())
	assert.Equal(t, []string{"a", "b"}, outcome.Committed)
	assert.Empty(t, outcome.Failed)
	assert.False(t, session.Dirty())

	// The store now carries the recomputed totals.
	reloaded, err := assessment.LoadBatch(store, "Spring Eval", day("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 13.0, reloaded.Records[0].TotalScore)
	assert.Equal(t, 11.0, reloaded.Records[1].TotalScore)
}

func TestCommit_PartialFailureNamesRecords(t *testing.T) {
	store, detail := springBatch(t)
	store.updateErrs = map[string]error{"a": errors.New("connection reset")}
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.SetScore("a", "tumbling", "9"))
	require.NoError(t, session.SetScore("b", "tumbling", "7"))

	outcome, err := session.Commit(store)
	require.NoError(t, err)

	// Record b is still attempted and persisted after a fails.
	assert.False(t, outcome.Success())
	assert.Equal(t, []string{"b"}, outcome.Committed)
	require.Len(t, outcome.Failed, 1)
	assert.Equal(t, "a", outcome.Failed[0].RecordID)
	assert.Contains(t, outcome.Failed[0].Reason, "connection reset")

	// A partially-failed commit keeps the session dirty.
	assert.True(t, session.Dirty())
}

func TestCommit_BlocksConcurrentEdits(t *testing.T) {
	store, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	// Simulate an in-flight commit observing the session mid-write.
	blocking := &blockingStore{fakeStore: store, entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = session.Commit(blocking)
	}()

	<-blocking.entered
	err := session.SetScore("a", "tumbling", "1")
	assert.ErrorIs(t, err, assessment.ErrCommitInFlight)
	assert.ErrorIs(t, session.AddSkill("balance", 5), assessment.ErrCommitInFlight)
	assert.ErrorIs(t, session.RemoveSkill("vault"), assessment.ErrCommitInFlight)

	close(blocking.release)
	<-done

	// After the commit finishes, edits are accepted again.
	assert.NoError(t, session.SetScore("a", "tumbling", "1"))
}

// blockingStore parks the first update until released so tests can observe
// the session while a commit is in flight.
type blockingStore struct {
	*fakeStore
	entered chan struct{}
	release chan struct{}
	once    bool
}

func (b *blockingStore) UpdateRecordSkills(id string, skills []models.SkillScore, totalScore float64) error {
	if !b.once {
		b.once = true
		close(b.entered)
		<-b.release
	}
	return b.fakeStore.UpdateRecordSkills(id, skills, totalScore)
}
