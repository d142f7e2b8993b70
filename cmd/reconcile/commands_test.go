package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-reconciliation-backend/internal/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNamesCommand(t *testing.T) {
	dir := t.TempDir()
	db := writeFile(t, dir, "db.csv", "اسم الموظف,Iban\nاحمد محمد علي,IQ01\n")
	input := writeFile(t, dir, "names.csv", "اسم الموظف\nأحمد محمد على\nمجهول\n")
	out := filepath.Join(dir, "out.csv")

	stdout, err := run(t, "names", "--database", db, "--input", input, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 rows, 1 matched, 1 not matched")

	result, err := table.ReadFile("results", out)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
	assert.Equal(t, "IQ01", result.Rows[0][2])
}

func TestSectionsCommandXLSXOutput(t *testing.T) {
	dir := t.TempDir()
	db := writeFile(t, dir, "db.csv", "اسم الموظف,رقم المشغل,الدرجة,العنوان الوظيفي,مكان العمل,الدائرة\nعلي حسن,7,3,مدرس,بغداد,مدرسة النور\n")
	input := writeFile(t, dir, "names.csv", "اسم الموظف\nعلي حسن\n")
	out := filepath.Join(dir, "out.xlsx")

	_, err := run(t, "sections", "--database", db, "--input", input, "--out", out)
	require.NoError(t, err)

	result, err := table.ReadFile("results", out)
	require.NoError(t, err)
	assert.Equal(t, []string{"علي حسن", "علي حسن", "7", "3", "مدرس", "بغداد", "مدرسة النور", "100%", "مطابق"}, result.Rows[0])
}

func TestNamesCommandWithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "names.csv", "اسم الموظف\nعلي\n")

	_, err := run(t, "names", "--input", input, "--out", filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
}

func TestLinkCommand(t *testing.T) {
	dir := t.TempDir()
	results := writeFile(t, dir, "results.csv", "الاسم,الدائرة\nعلي,مدرسة النور الابتدائية\n")
	acc := writeFile(t, dir, "acc.csv", "الدائرة,اليوزر,اسم المحاسب\nمدرسة النور,u1,كريم\n")
	out := filepath.Join(dir, "linked.csv")

	stdout, err := run(t, "link", "--results", results, "--accountants", acc, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "linked 1 rows")

	linked, err := table.ReadFile("results", out)
	require.NoError(t, err)
	assert.Equal(t, []string{"علي", "مدرسة النور الابتدائية", "u1", "كريم"}, linked.Rows[0])
}
