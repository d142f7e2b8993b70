package repository

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"payroll-reconciliation-backend/internal/models"
)

// Open connects to the authoritative Postgres database.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

type EmployeeRepository struct {
	db    *gorm.DB
	table string
}

func NewEmployeeRepository(db *gorm.DB, table string) *EmployeeRepository {
	if table == "" {
		table = "employees"
	}
	return &EmployeeRepository{db: db, table: table}
}

// ListRecords returns every employee in primary-key order, which is the
// table order used for tie-breaks.
func (r *EmployeeRepository) ListRecords(ctx context.Context) ([]models.Record, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Table(r.table).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}

	records := make([]models.Record, len(employees))
	for i, e := range employees {
		records[i] = e.Record()
	}
	return records, nil
}
