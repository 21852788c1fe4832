package memory

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// EmployeeDirectory serves a fixed roster.
type EmployeeDirectory struct {
	employees []domain.Employee
}

var _ ports.EmployeeDirectory = (*EmployeeDirectory)(nil)

func NewEmployeeDirectory(employees ...domain.Employee) *EmployeeDirectory {
	return &EmployeeDirectory{employees: append([]domain.Employee(nil), employees...)}
}

func (d *EmployeeDirectory) ListEmployees(context.Context) ([]domain.Employee, error) {
	return append([]domain.Employee(nil), d.employees...), nil
}

// SampleEmployees mirrors the roster seeded by the MySQL migrations.
func SampleEmployees() []domain.Employee {
	return []domain.Employee{
		{UserID: "emp-001", Name: "Asha Menon", Role: "Property Manager", Department: "Operations", Label: "Asha Menon (Property Manager)"},
		{UserID: "emp-002", Name: "Ben Okafor", Role: "Leasing Agent", Department: "Sales", Label: "Ben Okafor (Leasing Agent)"},
		{UserID: "emp-003", Name: "Chloe Martin", Role: "Accountant", Department: "Finance", Label: "Chloe Martin (Accountant)"},
		{UserID: "emp-004", Name: "Diego Alvarez", Role: "Maintenance Lead", Department: "Maintenance", Label: "Diego Alvarez (Maintenance Lead)"},
	}
}
