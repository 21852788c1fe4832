package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type EmployeeDirectory struct {
	db *sqlx.DB
}

type employeeRow struct {
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Role       string `db:"role"`
	Department string `db:"department"`
	Label      string `db:"label"`
}

var _ ports.EmployeeDirectory = (*EmployeeDirectory)(nil)

func NewEmployeeDirectory(db *sqlx.DB) *EmployeeDirectory {
	return &EmployeeDirectory{db: db}
}

func (d *EmployeeDirectory) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var rows []employeeRow
	if err := d.db.SelectContext(ctx, &rows,
		`SELECT user_id, name, role, department, label FROM employees ORDER BY name, user_id`); err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, domain.Employee(row))
	}
	return employees, nil
}
