package reconciliation

import (
	"payroll-reconciliation-backend/internal/models"
	"payroll-reconciliation-backend/internal/table"
)

var accountantColumns = []string{models.ColSection, models.ColUserID, models.ColAccountant}

func databaseColumns(mode models.Mode) []string {
	if mode == models.ModeSections {
		return []string{
			models.ColName,
			models.ColOperatorID,
			models.ColGrade,
			models.ColTitle,
			models.ColWorkplace,
			models.ColSection,
		}
	}
	return []string{models.ColName, models.ColIBAN}
}

// cell reads col from row, treating an absent column as a null cell.
func cell(t *table.Table, row, col int) string {
	if col < 0 {
		return ""
	}
	return t.Value(row, col)
}

func recordsFromTable(t *table.Table) []models.Record {
	name := t.ColumnIndex(models.ColName)
	iban := t.ColumnIndex(models.ColIBAN)
	operator := t.ColumnIndex(models.ColOperatorID)
	grade := t.ColumnIndex(models.ColGrade)
	title := t.ColumnIndex(models.ColTitle)
	workplace := t.ColumnIndex(models.ColWorkplace)
	section := t.ColumnIndex(models.ColSection)

	records := make([]models.Record, t.Len())
	for i := range t.Rows {
		records[i] = models.Record{
			Name:       cell(t, i, name),
			IBAN:       cell(t, i, iban),
			OperatorID: cell(t, i, operator),
			Grade:      cell(t, i, grade),
			Title:      cell(t, i, title),
			Workplace:  cell(t, i, workplace),
			Section:    cell(t, i, section),
		}
	}
	return records
}

func inputRowsFromTable(t *table.Table) []models.InputRow {
	name := t.ColumnIndex(models.ColName)
	section := t.ColumnIndex(models.ColSection)

	rows := make([]models.InputRow, t.Len())
	for i := range t.Rows {
		rows[i] = models.InputRow{
			Name:    cell(t, i, name),
			Section: cell(t, i, section),
		}
	}
	return rows
}

func assignmentsFromTable(t *table.Table) []models.AccountantAssignment {
	section := t.ColumnIndex(models.ColSection)
	user := t.ColumnIndex(models.ColUserID)
	accountant := t.ColumnIndex(models.ColAccountant)

	out := make([]models.AccountantAssignment, t.Len())
	for i := range t.Rows {
		out[i] = models.AccountantAssignment{
			Section:        cell(t, i, section),
			UserID:         cell(t, i, user),
			AccountantName: cell(t, i, accountant),
		}
	}
	return out
}

// Table renders the report as the downloadable result table.
func (r *Report) Table() *table.Table {
	var headers []string
	switch r.Run.Mode {
	case models.ModeSections:
		headers = []string{
			models.ColOriginalName, models.ColMatchedName,
			models.ColOperatorID, models.ColGrade, models.ColTitle, models.ColWorkplace, models.ColSection,
			models.ColConfidence, models.ColStatus,
		}
	default:
		headers = []string{
			models.ColOriginalName, models.ColMatchedName, models.ColIBAN,
			models.ColConfidence, models.ColStatus, models.ColDuplicate,
		}
		if r.Run.Linked {
			headers = append(headers, models.ColSection)
		}
	}
	if r.Run.Linked {
		headers = append(headers, models.ColUserID, models.ColAccountant)
	}

	out := table.New("results", headers)
	for _, res := range r.Results {
		var row []string
		switch r.Run.Mode {
		case models.ModeSections:
			row = []string{
				res.InputName, res.MatchedName,
				res.OperatorID, res.Grade, res.Title, res.Workplace, res.Section,
				res.Confidence(), res.Status.Label(),
			}
		default:
			row = []string{
				res.InputName, res.MatchedName, res.IBAN,
				res.Confidence(), res.Status.Label(), res.Duplicate.Label(),
			}
			if r.Run.Linked {
				row = append(row, res.InputSection)
			}
		}
		if r.Run.Linked {
			row = append(row, res.UserID, res.AccountantName)
		}
		out.Append(row)
	}
	return out
}
