package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type AssignmentService interface {
	Create(ctx context.Context, input domain.AssignmentInput) (domain.AssignmentResult, error)
	Open(ctx context.Context, taskID, actor string) (domain.EditSession, error)
	Update(ctx context.Context, session domain.EditSession, input domain.UpdateTaskInput, selection []domain.Assignee) (domain.AssignmentResult, error)
	RemoveAssignee(ctx context.Context, session domain.EditSession, userID string) (domain.AssignmentResult, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, dryRun bool) (domain.ReconcileReport, error)
}
