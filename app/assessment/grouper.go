package assessment

import (
	"sort"
	"time"

	"healy-academy/app/models"
)

const dateLayout = "2006-01-02"

// BatchKey identifies a batch: the (title, date) pair its members share.
type BatchKey struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// String renders the composite grouping key.
func (k BatchKey) String() string {
	return k.Title + "-" + k.Date.Format(dateLayout)
}

// BatchSummary is the aggregate view of one batch produced by grouping.
// AssessingCoach comes from the first member record; ResponsibleCoach is the
// coach assigned to the first member's student. The two may differ and both
// are retained.
type BatchSummary struct {
	Key              string    `json:"key"`
	Title            string    `json:"title"`
	Date             time.Time `json:"date"`
	AssessingCoachID string    `json:"assessing_coach_id"`
	AssessingCoach   string    `json:"assessing_coach"`
	ResponsibleCoach string    `json:"responsible_coach"`
	RecordCount      int       `json:"record_count"`
	TotalScoreSum    float64   `json:"total_score_sum"`
	AverageScore     float64   `json:"average_score"`
	RecordIDs        []string  `json:"record_ids"`
}

// GroupRecords turns a flat record list into batch summaries, one per
// distinct (title, date) pair. Input order does not matter: records are
// sorted by id first so "first record" attribution is deterministic.
//
// Absent members count toward membership and keep their place in the id
// list, but contribute zero to the score sum and are excluded from the
// average denominator.
func GroupRecords(records []*models.AssessmentRecord) []BatchSummary {
	sorted := make([]*models.AssessmentRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	groups := make(map[string]*BatchSummary)
	scored := make(map[string]int)
	var order []string

	for _, record := range sorted {
		key := BatchKey{Title: record.Title, Date: record.Date}.String()

		summary, ok := groups[key]
		if !ok {
			summary = &BatchSummary{
				Key:              key,
				Title:            record.Title,
				Date:             record.Date,
				AssessingCoachID: record.CoachID,
			}
			if record.Coach != nil {
				summary.AssessingCoach = record.Coach.FullName()
			}
			if record.Student != nil && record.Student.Coach != nil {
				summary.ResponsibleCoach = record.Student.Coach.FullName()
			}
			groups[key] = summary
			order = append(order, key)
		}

		summary.RecordCount++
		summary.RecordIDs = append(summary.RecordIDs, record.ID)
		if record.Status != models.AssessmentAbsent {
			summary.TotalScoreSum += record.TotalScore
			scored[key]++
		}
	}

	summaries := make([]BatchSummary, 0, len(order))
	for _, key := range order {
		summary := groups[key]
		if n := scored[key]; n > 0 {
			summary.AverageScore = summary.TotalScoreSum / float64(n)
		}
		summaries = append(summaries, *summary)
	}

	// Newest batches first, title as tie-break, matching the list view.
	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].Date.Equal(summaries[j].Date) {
			return summaries[i].Date.After(summaries[j].Date)
		}
		return summaries[i].Title < summaries[j].Title
	})

	return summaries
}

// FilterByAssessingCoach narrows an in-memory summary list to batches whose
// first record was assessed by the given coach. It never re-queries.
func FilterByAssessingCoach(summaries []BatchSummary, coachID string) []BatchSummary {
	if coachID == "" {
		return summaries
	}
	filtered := make([]BatchSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.AssessingCoachID == coachID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
