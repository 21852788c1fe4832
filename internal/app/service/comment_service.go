package service

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type CommentService struct {
	commentRepository ports.CommentRepository
	taskRepository    ports.TaskRepository
}

func NewCommentService(commentRepository ports.CommentRepository, taskRepository ports.TaskRepository) *CommentService {
	return &CommentService{commentRepository: commentRepository, taskRepository: taskRepository}
}

func (s *CommentService) AddComment(ctx context.Context, taskID, content, author string) (domain.Comment, error) {
	if _, err := s.taskRepository.Get(ctx, taskID); err != nil {
		return domain.Comment{}, err
	}
	return s.commentRepository.AddComment(ctx, taskID, content, author)
}

// EditComment replaces the content in place; only the author may do it.
func (s *CommentService) EditComment(ctx context.Context, id, content, actor string) error {
	if err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.commentRepository.EditComment(ctx, id, content)
}

func (s *CommentService) DeleteComment(ctx context.Context, id, actor string) error {
	if err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.commentRepository.DeleteComment(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	return s.commentRepository.ListComments(ctx, taskID)
}

func (s *CommentService) AddReport(ctx context.Context, taskID, message string) (domain.IssueReport, error) {
	if _, err := s.taskRepository.Get(ctx, taskID); err != nil {
		return domain.IssueReport{}, err
	}
	return s.commentRepository.AddReport(ctx, taskID, message)
}

func (s *CommentService) ListReports(ctx context.Context, taskID string) ([]domain.IssueReport, error) {
	return s.commentRepository.ListReports(ctx, taskID)
}

func (s *CommentService) authorize(ctx context.Context, id, actor string) error {
	comment, err := s.commentRepository.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if actor == "" || comment.Author != actor {
		return domain.ErrNotCommentAuthor
	}
	return nil
}

var _ ports.CommentService = (*CommentService)(nil)
