package matching

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"payroll-reconciliation-backend/internal/models"
)

// Matcher resolves input names against an authoritative Index.
type Matcher struct {
	cfg   Config
	index *Index
}

func NewMatcher(index *Index, cfg Config) *Matcher {
	return &Matcher{cfg: cfg, index: index}
}

// MatchNames resolves every row in input order, copies the bank account of
// each matched record and flags accounts shared by more than one row.
func (m *Matcher) MatchNames(rows []models.InputRow) []models.MatchResult {
	results := m.matchAll(rows, models.ModeNames)
	FlagDuplicateAccounts(results)
	return results
}

// MatchSections resolves every row in input order and copies the job
// attributes and organizational unit of each matched record.
func (m *Matcher) MatchSections(rows []models.InputRow) []models.MatchResult {
	return m.matchAll(rows, models.ModeSections)
}

func (m *Matcher) matchAll(rows []models.InputRow, mode models.Mode) []models.MatchResult {
	results := make([]models.MatchResult, len(rows))
	forEachRow(len(rows), m.cfg.Workers, func(i int) {
		results[i] = m.matchRow(rows[i], mode)
	})
	return results
}

// forEachRow calls fn for 0..n-1. Rows are independent, so splitting them
// across workers cannot change any row's outcome.
func forEachRow(n, workers int, fn func(i int)) {
	if workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (m *Matcher) matchRow(row models.InputRow, mode models.Mode) models.MatchResult {
	normalized := row.NormalizedName
	if normalized == "" {
		normalized = Normalize(row.Name)
	}

	res := models.MatchResult{
		InputName:    row.Name,
		InputSection: row.Section,
		Status:       models.StatusNotMatched,
		Duplicate:    models.DuplicateNone,
	}

	rec, score, ok := m.Resolve(normalized)
	if !ok {
		return res
	}

	res.Status = models.StatusMatched
	res.MatchedName = rec.Name
	res.Score = score
	res.Percent = models.RoundPercent(score)
	switch mode {
	case models.ModeNames:
		res.IBAN = rec.IBAN
	case models.ModeSections:
		res.OperatorID = rec.OperatorID
		res.Grade = rec.Grade
		res.Title = rec.Title
		res.Workplace = rec.Workplace
		res.Section = rec.Section
	}
	return res
}

// Best scans the index in order and returns the position and Ratio of the
// highest scoring name. Only a strictly better score replaces the current
// best, so the earliest of tied candidates wins. It returns -1 when no
// candidate scores above zero.
func (m *Matcher) Best(normalized string) (int, float64) {
	return m.best(newKey(normalized))
}

func (m *Matcher) best(in key) (int, float64) {
	bestIdx, bestScore := -1, 0.0
	for i, k := range m.index.keys {
		// The shared-rune bound is never below the real score, so a
		// candidate it rules out could not have replaced the best.
		if ratioOf(2*commonRunes(in.sorted, k.sorted), len(in.runes)+len(k.runes)) <= bestScore {
			continue
		}
		if score := runeRatio(in.runes, k.runes); score > bestScore {
			bestIdx, bestScore = i, score
			if bestScore == 100 {
				break
			}
		}
	}
	return bestIdx, bestScore
}

// Resolve applies the acceptance policy to an already normalized name.
//
// The primary stage accepts the best candidate when it reaches the match
// threshold and either its leading words agree with the input or it starts
// with the whole input. Otherwise the first candidate in index order that
// starts with the input is accepted whatever its score, and the score is
// recomputed against that candidate.
func (m *Matcher) Resolve(normalized string) (models.Record, float64, bool) {
	records := m.index.Records()
	in := newKey(normalized)

	if i, score := m.best(in); i >= 0 && score >= m.cfg.MatchThreshold {
		if m.agrees(normalized, records[i].NormalizedName) {
			return records[i], score, true
		}
	}

	// An empty name would prefix every candidate; it stays unmatched.
	if normalized == "" {
		return models.Record{}, 0, false
	}
	for i, rec := range records {
		if strings.HasPrefix(rec.NormalizedName, normalized) {
			return rec, runeRatio(in.runes, m.index.keys[i].runes), true
		}
	}
	return models.Record{}, 0, false
}

func (m *Matcher) agrees(input, candidate string) bool {
	return leadingWordsMatch(input, candidate, m.cfg.PrefixWords) || strings.HasPrefix(candidate, input)
}

// leadingWordsMatch compares the first words of a and b position by
// position, up to limit words or the shorter word count.
func leadingWordsMatch(a, b string, limit int) bool {
	aw, bw := strings.Fields(a), strings.Fields(b)
	n := min(len(aw), len(bw), limit)
	for i := 0; i < n; i++ {
		if aw[i] != bw[i] {
			return false
		}
	}
	return true
}
