package matching

import "payroll-reconciliation-backend/internal/models"

// Index holds authoritative records keyed by normalized name in first-seen
// order. Scans always walk that order, which is what makes "first candidate
// wins" ties deterministic.
type Index struct {
	records []models.Record
	keys    []key
	byName  map[string]int
	dropped int
}

// BuildIndex normalizes and indexes records. When two records normalize to
// the same name the first is kept and the later one is counted as dropped.
func BuildIndex(records []models.Record) *Index {
	idx := &Index{
		records: make([]models.Record, 0, len(records)),
		keys:    make([]key, 0, len(records)),
		byName:  make(map[string]int, len(records)),
	}
	for _, rec := range records {
		idx.Add(rec)
	}
	return idx
}

// Add indexes rec and reports whether it was kept.
func (idx *Index) Add(rec models.Record) bool {
	rec.NormalizedName = Normalize(rec.Name)
	if _, exists := idx.byName[rec.NormalizedName]; exists {
		idx.dropped++
		return false
	}
	idx.byName[rec.NormalizedName] = len(idx.records)
	idx.records = append(idx.records, rec)
	idx.keys = append(idx.keys, newKey(rec.NormalizedName))
	return true
}

// Len is the number of distinct normalized names.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Dropped is the number of records discarded as duplicate keys.
func (idx *Index) Dropped() int {
	return idx.dropped
}

// Get returns the record stored under a normalized name.
func (idx *Index) Get(normalized string) (models.Record, bool) {
	i, ok := idx.byName[normalized]
	if !ok {
		return models.Record{}, false
	}
	return idx.records[i], true
}

// Records returns the indexed records in scan order.
func (idx *Index) Records() []models.Record {
	return idx.records
}
