package models

// Column headers of the uploaded workbooks.
const (
	ColName       = "اسم الموظف"
	ColIBAN       = "Iban"
	ColOperatorID = "رقم المشغل"
	ColGrade      = "الدرجة"
	ColTitle      = "العنوان الوظيفي"
	ColWorkplace  = "مكان العمل"
	ColSection    = "الدائرة"
	ColUserID     = "اليوزر"
	ColAccountant = "اسم المحاسب"
)

// Column headers of the result table.
const (
	ColOriginalName = "الاسم الأصلي"
	ColMatchedName  = "الاسم المطابق"
	ColConfidence   = "نسبة التطابق"
	ColStatus       = "حالة المطابقة"
	ColDuplicate    = "ملاحظة التكرار"
)

// Display strings written into the result table.
const (
	LabelMatched    = "مطابق"
	LabelNotMatched = "غير مطابق"
	LabelDuplicate  = "مكرر"
)

func (s MatchStatus) Label() string {
	if s == StatusMatched {
		return LabelMatched
	}
	return LabelNotMatched
}

func (d DuplicateFlag) Label() string {
	if d == DuplicateAccount {
		return LabelDuplicate
	}
	return ""
}
