package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type CommentRepository interface {
	AddComment(ctx context.Context, taskID, content, author string) (domain.Comment, error)
	GetComment(ctx context.Context, id string) (domain.Comment, error)
	EditComment(ctx context.Context, id, content string) error
	DeleteComment(ctx context.Context, id string) error
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)
	AddReport(ctx context.Context, taskID, message string) (domain.IssueReport, error)
	ListReports(ctx context.Context, taskID string) ([]domain.IssueReport, error)
}

// CommentService enforces comment authorship on top of the repository.
type CommentService interface {
	AddComment(ctx context.Context, taskID, content, author string) (domain.Comment, error)
	EditComment(ctx context.Context, id, content, actor string) error
	DeleteComment(ctx context.Context, id, actor string) error
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)
	AddReport(ctx context.Context, taskID, message string) (domain.IssueReport, error)
	ListReports(ctx context.Context, taskID string) ([]domain.IssueReport, error)
}
