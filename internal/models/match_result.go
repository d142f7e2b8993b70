package models

import (
	"fmt"
	"math"
)

type Mode string

const (
	ModeNames    Mode = "names"
	ModeSections Mode = "sections"
)

type MatchStatus string

const (
	StatusMatched    MatchStatus = "MATCHED"
	StatusNotMatched MatchStatus = "NOT_MATCHED"
)

type DuplicateFlag string

const (
	DuplicateNone    DuplicateFlag = "NONE"
	DuplicateAccount DuplicateFlag = "DUPLICATE_ACCOUNT"
)

// MatchResult is the outcome for one input row. Matched fields are empty
// when Status is StatusNotMatched.
type MatchResult struct {
	InputName   string `json:"input_name"`
	MatchedName string `json:"matched_name"`
	IBAN        string `json:"iban,omitempty"`
	OperatorID  string `json:"operator_id,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Title       string `json:"title,omitempty"`
	Workplace   string `json:"workplace,omitempty"`
	Section     string `json:"section,omitempty"`
	// InputSection is the organizational unit supplied with the input row.
	InputSection string  `json:"input_section,omitempty"`
	Score        float64 `json:"score"`
	// Percent is Score rounded to a whole number, 0 for unmatched rows.
	Percent   int           `json:"confidence"`
	Status    MatchStatus   `json:"status"`
	Duplicate DuplicateFlag `json:"duplicate"`
}

func (r MatchResult) Matched() bool {
	return r.Status == StatusMatched
}

// LinkSection is the organizational unit used to find the accountant: the
// matched record's unit when known, otherwise the one supplied with the input.
func (r MatchResult) LinkSection() string {
	if r.Section != "" {
		return r.Section
	}
	return r.InputSection
}

// Confidence is the score rounded to a whole percent, e.g. "92%". It is
// empty for unmatched rows so they are distinguishable from a real 0%.
func (r MatchResult) Confidence() string {
	if !r.Matched() {
		return ""
	}
	return fmt.Sprintf("%d%%", RoundPercent(r.Score))
}

// RoundPercent rounds a 0-100 score to the nearest whole percent.
func RoundPercent(score float64) int {
	return int(math.Round(score))
}

// EnrichedResult is a MatchResult with the accountant assigned to its
// organizational unit, if any cleared the link threshold.
type EnrichedResult struct {
	MatchResult
	UserID         string `json:"user_id"`
	AccountantName string `json:"accountant_name"`
}

func (r EnrichedResult) Assigned() bool {
	return r.UserID != "" || r.AccountantName != ""
}
