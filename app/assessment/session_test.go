package assessment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/assessment"
	"healy-academy/app/models"
)

func springBatch(t *testing.T) (*fakeStore, *assessment.BatchDetail) {
	t.Helper()
	store := &fakeStore{records: []*models.AssessmentRecord{
		record("a", "Amira", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 8, 10), skill("vault", 4, 5)),
		record("b", "Ben", "Spring Eval", "2024-03-01", models.AssessmentNormal,
			skill("tumbling", 6, 10), skill("vault", 3, 5)),
	}}

	detail, err := assessment.LoadBatch(store, "Spring Eval", day("2024-03-01"))
	require.NoError(t, err)
	require.NotNil(t, detail)
	return store, detail
}

func totals(records []*models.AssessmentRecord) map[string]float64 {
	out := make(map[string]float64, len(records))
	for _, r := range records {
		out[r.ID] = r.TotalScore
	}
	return out
}

func TestSetScore_RecomputesTotal(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.SetScore("a", "tumbling", "9.5"))

	working := session.Working()
	assert.Equal(t, 9.5, working[0].Skills[0].Score)
	assert.Equal(t, 13.5, working[0].TotalScore)
	assert.Equal(t, working[0].SumSkills(), working[0].TotalScore)
	assert.True(t, session.Dirty())

	// The loaded copy is untouched.
	assert.Equal(t, 12.0, detail.Records[0].TotalScore)
}

func TestSetScore_RejectsAboveMax(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	err := session.SetScore("a", "vault", "6")
	require.ErrorIs(t, err, assessment.ErrScoreExceedsMax)

	// Rejected edits leave score and total unchanged.
	working := session.Working()
	assert.Equal(t, 4.0, working[0].Skills[1].Score)
	assert.Equal(t, 12.0, working[0].TotalScore)
	assert.False(t, session.Dirty())
}

func TestSetScore_NonNumericCoercesToZero(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.SetScore("a", "tumbling", "abc"))

	working := session.Working()
	assert.Equal(t, 0.0, working[0].Skills[0].Score)
	assert.Equal(t, 4.0, working[0].TotalScore)
}

func TestSetScore_UnknownRecordOrSkill(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.ErrorIs(t, session.SetScore("zz", "tumbling", "5"), assessment.ErrUnknownRecord)
	require.ErrorIs(t, session.SetScore("a", "juggling", "5"), assessment.ErrUnknownSkill)
}

func TestAddSkill_AppendsToEveryRecord(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	before := totals(session.Working())
	require.NoError(t, session.AddSkill("balance", 5))

	schema := session.Schema()
	assert.Equal(t, []string{"tumbling", "vault", "balance"}, schema.Names)
	assert.Equal(t, 5.0, schema.MaxScores["balance"])

	for _, r := range session.Working() {
		last := r.Skills[len(r.Skills)-1]
		assert.Equal(t, models.SkillScore{Name: "balance", Score: 0, MaxScore: 5}, last)
		// Adding a zero-score skill leaves totals unchanged.
		assert.Equal(t, before[r.ID], r.TotalScore)
		assert.Equal(t, r.SumSkills(), r.TotalScore)
	}
}

func TestAddSkill_RejectsDuplicate(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	err := session.AddSkill("vault", 10)
	require.ErrorIs(t, err, assessment.ErrDuplicateSkill)

	// Schema and records unchanged.
	assert.Equal(t, []string{"tumbling", "vault"}, session.Schema().Names)
	for _, r := range session.Working() {
		assert.Len(t, r.Skills, 2)
	}
	assert.False(t, session.Dirty())
}

func TestRemoveSkill_RemovesEverywhereAndRecomputes(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.RemoveSkill("tumbling"))

	assert.Equal(t, []string{"vault"}, session.Schema().Names)
	working := session.Working()
	assert.Equal(t, 4.0, working[0].TotalScore) // was 12, minus tumbling's 8
	assert.Equal(t, 3.0, working[1].TotalScore) // was 9, minus tumbling's 6
	for _, r := range working {
		require.Len(t, r.Skills, 1)
		assert.Equal(t, "vault", r.Skills[0].Name)
		assert.Equal(t, r.SumSkills(), r.TotalScore)
	}
}

func TestDiscard_RestoresLoadedState(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.AddSkill("balance", 5))
	require.NoError(t, session.SetScore("a", "tumbling", "1"))
	require.True(t, session.Dirty())

	session.Discard()

	assert.False(t, session.Dirty())
	assert.Equal(t, []string{"tumbling", "vault"}, session.Schema().Names)
	working := session.Working()
	assert.Equal(t, 12.0, working[0].TotalScore)
	assert.Len(t, working[0].Skills, 2)
}

func TestTotalsConsistentAfterOperationSequence(t *testing.T) {
	_, detail := springBatch(t)
	session := assessment.NewEditSession(detail)

	require.NoError(t, session.SetScore("a", "tumbling", "7"))
	require.NoError(t, session.AddSkill("balance", 5))
	require.NoError(t, session.SetScore("b", "balance", "4"))
	require.NoError(t, session.RemoveSkill("vault"))
	require.NoError(t, session.SetScore("a", "balance", "2.5"))

	for _, r := range session.Working() {
		assert.Equal(t, r.SumSkills(), r.TotalScore, "record %s total drifted", r.ID)
	}
}
