package matching

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// letterFolds maps Arabic spelling variants onto a single canonical letter.
var letterFolds = strings.NewReplacer(
	"ه", "ة",
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ى", "ي",
)

// abdPrefix matches "عبد" glued to the following word, as in "عبدالله".
var abdPrefix = regexp.MustCompile(`(عبد)(\S)`)

// Normalize canonicalizes a name or section label so that both sides of a
// comparison agree on spelling variants and spacing. It is idempotent.
func Normalize(text string) string {
	s := strings.TrimSpace(norm.NFC.String(text))
	if s == "" {
		return ""
	}
	s = letterFolds.Replace(s)
	s = abdPrefix.ReplaceAllString(s, "$1 $2")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
