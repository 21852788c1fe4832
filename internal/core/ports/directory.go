package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type EmployeeDirectory interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}
