package remote

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// CommentService forwards the acting user so the server checks authorship.
type CommentService struct {
	client *Client
}

var _ ports.CommentService = (*CommentService)(nil)

func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

func (s *CommentService) AddComment(ctx context.Context, taskID, content, author string) (domain.Comment, error) {
	var item dto.CommentItem
	err := s.client.do(ctx, request{
		op:     "add comment",
		method: http.MethodPost,
		path:   "/api/tasks/" + url.PathEscape(taskID) + "/comments",
		user:   author,
		body:   dto.CommentRequest{Content: content},
		out:    &item,
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return mapper.FromCommentItem(item)
}

func (s *CommentService) EditComment(ctx context.Context, id, content, actor string) error {
	return s.client.do(ctx, request{
		op:     "edit comment",
		method: http.MethodPut,
		path:   "/api/comments/" + url.PathEscape(id),
		user:   actor,
		body:   dto.CommentRequest{Content: content},
	})
}

func (s *CommentService) DeleteComment(ctx context.Context, id, actor string) error {
	return s.client.do(ctx, request{
		op:     "delete comment",
		method: http.MethodDelete,
		path:   "/api/comments/" + url.PathEscape(id),
		user:   actor,
	})
}

func (s *CommentService) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	var items []dto.CommentItem
	err := s.client.do(ctx, request{
		op:     "list comments",
		method: http.MethodGet,
		path:   "/api/tasks/" + url.PathEscape(taskID) + "/comments",
		out:    &items,
	})
	if err != nil {
		return nil, err
	}
	return mapper.FromCommentItems(items)
}

func (s *CommentService) AddReport(ctx context.Context, taskID, message string) (domain.IssueReport, error) {
	var item dto.ReportItem
	err := s.client.do(ctx, request{
		op:     "add report",
		method: http.MethodPost,
		path:   "/api/tasks/" + url.PathEscape(taskID) + "/reports",
		body:   dto.ReportRequest{Message: message},
		out:    &item,
	})
	if err != nil {
		return domain.IssueReport{}, err
	}
	return mapper.FromReportItem(item)
}

func (s *CommentService) ListReports(ctx context.Context, taskID string) ([]domain.IssueReport, error) {
	var items []dto.ReportItem
	err := s.client.do(ctx, request{
		op:     "list reports",
		method: http.MethodGet,
		path:   "/api/tasks/" + url.PathEscape(taskID) + "/reports",
		out:    &items,
	})
	if err != nil {
		return nil, err
	}
	return mapper.FromReportItems(items)
}

type EmployeeDirectory struct {
	client *Client
}

var _ ports.EmployeeDirectory = (*EmployeeDirectory)(nil)

func NewEmployeeDirectory(client *Client) *EmployeeDirectory {
	return &EmployeeDirectory{client: client}
}

func (d *EmployeeDirectory) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var items []dto.EmployeeItem
	err := d.client.do(ctx, request{op: "list employees", method: http.MethodGet, path: "/api/employees", out: &items})
	if err != nil {
		return nil, err
	}
	return mapper.FromEmployeeItems(items), nil
}
