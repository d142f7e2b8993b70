package matching

import (
	"strings"

	"payroll-reconciliation-backend/internal/models"
)

// FlagDuplicateAccounts marks every result whose bank account is shared with
// another result. Accounts are compared with surrounding whitespace removed,
// and empty accounts are never flagged.
func FlagDuplicateAccounts(results []models.MatchResult) int {
	counts := make(map[string]int, len(results))
	for _, r := range results {
		if iban := strings.TrimSpace(r.IBAN); iban != "" {
			counts[iban]++
		}
	}

	flagged := 0
	for i := range results {
		iban := strings.TrimSpace(results[i].IBAN)
		if iban != "" && counts[iban] > 1 {
			results[i].Duplicate = models.DuplicateAccount
			flagged++
		} else {
			results[i].Duplicate = models.DuplicateNone
		}
	}
	return flagged
}
