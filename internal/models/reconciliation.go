package models

import (
	"time"

	"github.com/google/uuid"
)

// ReconciliationRun summarises one reconciliation pass. Nothing about a run
// outlives the request or command that produced it.
type ReconciliationRun struct {
	ID                uuid.UUID `json:"run_id"`
	Mode              Mode      `json:"mode"`
	TotalRows         int       `json:"total_rows"`
	MatchedCount      int       `json:"matched_count"`
	NotMatchedCount   int       `json:"not_matched_count"`
	DuplicateCount    int       `json:"duplicate_count"`
	DroppedDuplicates int       `json:"dropped_duplicates"`
	AssignedCount     int       `json:"assigned_count"`
	Linked            bool      `json:"linked"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}

func NewReconciliationRun(mode Mode) *ReconciliationRun {
	return &ReconciliationRun{
		ID:        uuid.New(),
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// Tally fills the counters from the final results.
func (r *ReconciliationRun) Tally(results []EnrichedResult) {
	r.TotalRows = len(results)
	r.MatchedCount, r.NotMatchedCount, r.DuplicateCount, r.AssignedCount = 0, 0, 0, 0
	for _, res := range results {
		if res.Matched() {
			r.MatchedCount++
		} else {
			r.NotMatchedCount++
		}
		if res.Duplicate == DuplicateAccount {
			r.DuplicateCount++
		}
		if res.Assigned() {
			r.AssignedCount++
		}
	}
	r.CompletedAt = time.Now()
}
