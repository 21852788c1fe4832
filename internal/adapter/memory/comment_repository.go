package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type CommentRepository struct {
	mu       sync.RWMutex
	comments []domain.Comment
	reports  []domain.IssueReport
	now      func() time.Time
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{now: time.Now}
}

func (r *CommentRepository) AddComment(_ context.Context, taskID, content, author string) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	comment := domain.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.comments = append(r.comments, comment)
	return comment, nil
}

func (r *CommentRepository) GetComment(_ context.Context, id string) (domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, comment := range r.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return domain.Comment{}, domain.ErrCommentNotFound
}

func (r *CommentRepository) EditComment(_ context.Context, id, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Content = content
			r.comments[i].UpdatedAt = r.now().UTC()
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *CommentRepository) DeleteComment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *CommentRepository) ListComments(_ context.Context, taskID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]domain.Comment, 0)
	for _, comment := range r.comments {
		if comment.TaskID == taskID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (r *CommentRepository) AddReport(_ context.Context, taskID, message string) (domain.IssueReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := domain.IssueReport{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Message:   message,
		CreatedAt: r.now().UTC(),
	}
	r.reports = append(r.reports, report)
	return report, nil
}

func (r *CommentRepository) ListReports(_ context.Context, taskID string) ([]domain.IssueReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]domain.IssueReport, 0)
	for _, report := range r.reports {
		if report.TaskID == taskID {
			reports = append(reports, report)
		}
	}
	return reports, nil
}
