package matching

import (
	"slices"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Ratio is the normalized indel similarity of two strings on a 0-100 scale:
// 100 * (len(a)+len(b)-indel(a,b)) / (len(a)+len(b)), measured in runes.
// Substitutions cost two edits, so the score only rewards shared characters
// in the same order. Two empty strings are identical.
func Ratio(a, b string) float64 {
	return runeRatio([]rune(a), []rune(b))
}

func runeRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := levenshtein.DistanceForStrings(a, b, levenshtein.DefaultOptions)
	return ratioOf(total-dist, total)
}

// ratioOf scales the number of runes kept by an alignment to 0-100.
func ratioOf(kept, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(kept) / float64(total)
}

// key is a name prepared for repeated scoring.
type key struct {
	runes  []rune
	sorted []rune
}

func newKey(s string) key {
	runes := []rune(s)
	sorted := slices.Clone(runes)
	slices.Sort(sorted)
	return key{runes: runes, sorted: sorted}
}

// commonRunes counts the runes two sorted slices share, with multiplicity.
// No alignment of the original strings can keep more than this many from
// either side.
func commonRunes(a, b []rune) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return n
}

// PartialRatio aligns the shorter string against every window of the longer
// one and returns the best Ratio. Windows that run off either end of the
// longer string are tried too, so a label matching only its head or tail
// still scores. An empty side scores 0.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	best := partialScan(short, long)
	if best < 100 && len(short) == len(long) {
		if s := partialScan(long, short); s > best {
			best = s
		}
	}
	return best
}

func partialScan(short, long []rune) float64 {
	n, m := len(short), len(long)
	best := 0.0
	try := func(window []rune) bool {
		if s := runeRatio(short, window); s > best {
			best = s
		}
		return best == 100
	}

	for i := 1; i < n; i++ {
		if try(long[:i]) {
			return best
		}
	}
	for i := 0; i <= m-n; i++ {
		if try(long[i : i+n]) {
			return best
		}
	}
	for i := m - n + 1; i < m; i++ {
		if try(long[i:]) {
			return best
		}
	}
	return best
}
