package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type CommentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type commentRow struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	Author    string    `db:"author"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type reportRow struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db, now: time.Now}
}

func (r *CommentRepository) AddComment(ctx context.Context, taskID, content, author string) (domain.Comment, error) {
	now := r.now().UTC().Truncate(time.Microsecond)
	row := commentRow{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO task_comments (id, task_id, author, content, created_at, updated_at)
VALUES (:id, :task_id, :author, :content, :created_at, :updated_at);`, row)
	if err != nil {
		return domain.Comment{}, err
	}
	return domain.Comment(row), nil
}

func (r *CommentRepository) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	var row commentRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, task_id, author, content, created_at, updated_at FROM task_comments WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comment{}, domain.ErrCommentNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return mapCommentRow(row), nil
}

func (r *CommentRepository) EditComment(ctx context.Context, id, content string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE task_comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, r.now().UTC().Truncate(time.Microsecond), id)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrCommentNotFound)
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task_comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, domain.ErrCommentNotFound)
}

func (r *CommentRepository) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, task_id, author, content, created_at, updated_at FROM task_comments WHERE task_id = ? ORDER BY seq`, taskID)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, mapCommentRow(row))
	}
	return comments, nil
}

func (r *CommentRepository) AddReport(ctx context.Context, taskID, message string) (domain.IssueReport, error) {
	row := reportRow{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Message:   message,
		CreatedAt: r.now().UTC().Truncate(time.Microsecond),
	}
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO task_reports (id, task_id, message, created_at)
VALUES (:id, :task_id, :message, :created_at);`, row)
	if err != nil {
		return domain.IssueReport{}, err
	}
	return domain.IssueReport(row), nil
}

func (r *CommentRepository) ListReports(ctx context.Context, taskID string) ([]domain.IssueReport, error) {
	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, task_id, message, created_at FROM task_reports WHERE task_id = ? ORDER BY seq`, taskID)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.IssueReport, 0, len(rows))
	for _, row := range rows {
		row.CreatedAt = row.CreatedAt.UTC()
		reports = append(reports, domain.IssueReport(row))
	}
	return reports, nil
}

func mapCommentRow(row commentRow) domain.Comment {
	row.CreatedAt = row.CreatedAt.UTC()
	row.UpdatedAt = row.UpdatedAt.UTC()
	return domain.Comment(row)
}

func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
