package matching

import "payroll-reconciliation-backend/internal/models"

// Linker attaches accountants to results by organizational unit.
type Linker struct {
	cfg         Config
	assignments []models.AccountantAssignment
}

func NewLinker(assignments []models.AccountantAssignment, cfg Config) *Linker {
	normalized := make([]models.AccountantAssignment, len(assignments))
	for i, a := range assignments {
		a.NormalizedSection = Normalize(a.Section)
		normalized[i] = a
	}
	return &Linker{cfg: cfg, assignments: normalized}
}

// Lookup returns the assignment whose unit best overlaps section under
// PartialRatio. Every assignment is compared; the first of tied assignments
// wins. ok is false when the best score is below the link threshold.
func (l *Linker) Lookup(section string) (models.AccountantAssignment, float64, bool) {
	target := Normalize(section)
	bestIdx, bestScore := -1, 0.0
	for i, a := range l.assignments {
		if score := PartialRatio(target, a.NormalizedSection); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 || bestScore < l.cfg.LinkThreshold {
		return models.AccountantAssignment{}, bestScore, false
	}
	return l.assignments[bestIdx], bestScore, true
}

// Link enriches every result, matched or not.
func (l *Linker) Link(results []models.MatchResult) []models.EnrichedResult {
	enriched := make([]models.EnrichedResult, len(results))
	forEachRow(len(results), l.cfg.Workers, func(i int) {
		e := models.EnrichedResult{MatchResult: results[i]}
		if a, _, ok := l.Lookup(results[i].LinkSection()); ok {
			e.UserID = a.UserID
			e.AccountantName = a.AccountantName
		}
		enriched[i] = e
	})
	return enriched
}
