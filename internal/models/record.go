package models

// Record is one row of the authoritative database. NormalizedName is its
// identity key once indexed.
type Record struct {
	Name           string `json:"name"`
	NormalizedName string `json:"-"`
	IBAN           string `json:"iban,omitempty"`
	OperatorID     string `json:"operator_id,omitempty"`
	Grade          string `json:"grade,omitempty"`
	Title          string `json:"title,omitempty"`
	Workplace      string `json:"workplace,omitempty"`
	Section        string `json:"section,omitempty"`
}

// InputRow is one name to reconcile. Section is only read by the
// accountant-linking pass.
type InputRow struct {
	Name           string `json:"name"`
	NormalizedName string `json:"-"`
	Section        string `json:"section,omitempty"`
}

// AccountantAssignment maps an organizational unit to the accountant
// responsible for it.
type AccountantAssignment struct {
	Section           string `json:"section"`
	NormalizedSection string `json:"-"`
	UserID            string `json:"user_id"`
	AccountantName    string `json:"accountant_name"`
}
