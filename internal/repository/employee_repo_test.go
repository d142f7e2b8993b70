package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=payroll dbname=payroll sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestNewEmployeeRepositoryDefaultTable(t *testing.T) {
	assert.Equal(t, "employees", NewEmployeeRepository(nil, "").table)
	assert.Equal(t, "staff", NewEmployeeRepository(nil, "staff").table)
}

func TestListRecordsDryRun(t *testing.T) {
	db := dryRunDB(t)
	repo := NewEmployeeRepository(db, "staff")

	records, err := repo.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
