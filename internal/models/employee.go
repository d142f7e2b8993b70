package models

// Employee is a row of the authoritative employees table when it is read
// from the database instead of an uploaded workbook.
type Employee struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"column:name;index"`
	IBAN       string `gorm:"column:iban"`
	OperatorID string `gorm:"column:operator_id"`
	Grade      string `gorm:"column:grade"`
	Title      string `gorm:"column:title"`
	Workplace  string `gorm:"column:workplace"`
	Section    string `gorm:"column:section"`
}

// Record converts the row into an authoritative record. NormalizedName is
// left empty; the matcher fills it when indexing.
func (e Employee) Record() Record {
	return Record{
		Name:       e.Name,
		IBAN:       e.IBAN,
		OperatorID: e.OperatorID,
		Grade:      e.Grade,
		Title:      e.Title,
		Workplace:  e.Workplace,
		Section:    e.Section,
	}
}
