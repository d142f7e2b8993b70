package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"payroll-reconciliation-backend/internal/models"
)

var (
	givenNames = []string{"احمد", "محمد", "علي", "حسن", "حسين", "كريم", "زينب", "فاطمة", "سارة", "مريم",
		"عبدالله", "عمر", "خالد", "يوسف", "ابراهيم", "نور", "هدى", "رقية", "جعفر", "مصطفى"}
	familyNames = []string{"جاسم", "كاظم", "سلمان", "عباس", "ناصر", "هاشم", "جواد", "صالح", "رضا", "طه",
		"فاضل", "مهدي", "قاسم", "حمزة", "سعيد", "ماجد", "شاكر", "عادل", "فلاح", "نعمة"}
)

// payrollNames returns n distinct three-part names.
func payrollNames(n int) []string {
	names := make([]string, n)
	g, f := len(givenNames), len(familyNames)
	for i := range names {
		names[i] = fmt.Sprintf("%s %s %s",
			givenNames[i%g], givenNames[(i/g)%g], familyNames[(i/(g*g))%f])
	}
	return names
}

func payrollFixture(records, rows int) ([]models.Record, []models.InputRow) {
	recs := make([]models.Record, records)
	for i, name := range payrollNames(records) {
		recs[i] = models.Record{Name: name, IBAN: fmt.Sprintf("IQ%06d", i)}
	}
	// Inputs reuse the record names in reverse with spelling variants and a
	// trimmed last word, so every stage of the policy is exercised.
	in := make([]models.InputRow, rows)
	for i := range in {
		name := recs[records-1-i%records].Name
		switch i % 4 {
		case 1:
			name = "أ" + name[len("ا"):]
		case 2:
			name = name[:len(name)-len("م")]
		case 3:
			name = "مجهول " + name
		}
		in[i] = models.InputRow{Name: name}
	}
	return recs, in
}

func TestBestMatchesFullScan(t *testing.T) {
	recs, rows := payrollFixture(400, 200)
	m := newTestMatcher(recs...)

	for _, row := range rows {
		in := Normalize(row.Name)
		wantIdx, wantScore := -1, 0.0
		for i, rec := range m.index.Records() {
			if s := Ratio(in, rec.NormalizedName); s > wantScore {
				wantIdx, wantScore = i, s
			}
		}

		idx, score := m.Best(in)
		assert.Equal(t, wantIdx, idx, row.Name)
		assert.Equal(t, wantScore, score, row.Name)
	}
}

func TestCommonRunesBoundsRatio(t *testing.T) {
	names := payrollNames(60)
	for _, a := range names {
		for _, b := range names[:20] {
			ka, kb := newKey(Normalize(a)), newKey(Normalize(b))
			bound := ratioOf(2*commonRunes(ka.sorted, kb.sorted), len(ka.runes)+len(kb.runes))
			assert.GreaterOrEqual(t, bound, runeRatio(ka.runes, kb.runes), "%s / %s", a, b)
		}
	}
}

func BenchmarkMatchNames(b *testing.B) {
	recs, rows := payrollFixture(3000, 3000)
	idx := BuildIndex(recs)

	for _, workers := range []int{1, DefaultConfig.Workers} {
		cfg := DefaultConfig
		cfg.Workers = workers
		m := NewMatcher(idx, cfg)
		b.Run(fmt.Sprintf("3000x3000/workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m.MatchNames(rows)
			}
		})
	}
}
