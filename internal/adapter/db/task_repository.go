package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const taskColumns = `id, title, description, assignee_name, assignee_user_id, priority, status,
  due_date, tags, attachments, created_by, created_at, updated_at`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :title, :description, :assignee_name, :assignee_user_id, :priority, :status,
  :due_date, :tags, :attachments, :created_by, :created_at, :updated_at);
`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  assignee_name = :assignee_name,
  assignee_user_id = :assignee_user_id,
  priority = :priority,
  status = :status,
  due_date = :due_date,
  tags = :tags,
  attachments = :attachments,
  updated_at = :updated_at
WHERE id = :id;
`

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	AssigneeName   string         `db:"assignee_name"`
	AssigneeUserID string         `db:"assignee_user_id"`
	Priority       string         `db:"priority"`
	Status         string         `db:"status"`
	DueDate        sql.NullTime   `db:"due_date"`
	Tags           types.JSONText `db:"tags"`
	Attachments    types.JSONText `db:"attachments"`
	CreatedBy      string         `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := r.now().UTC().Truncate(time.Microsecond)
	fields := input.TaskFields
	task := domain.Task{
		ID:             uuid.NewString(),
		Title:          fields.Title,
		Description:    fields.Description,
		AssigneeName:   input.AssigneeName,
		AssigneeUserID: input.AssigneeUserID,
		Priority:       fields.Priority,
		Status:         fields.Status,
		DueDate:        fields.DueDate,
		Tags:           domain.NormalizeTags(fields.Tags),
		Attachments:    append([]domain.Attachment{}, fields.Attachments...),
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return domain.Task{}, err
	}
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, row); err != nil {
		return domain.Task{}, err
	}
	return task.Clone(), nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row)
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if filter.UserID != "" {
		query += ` WHERE assignee_user_id = ?`
		args = append(args, filter.UserID)
	}
	query += ` ORDER BY seq`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update reads the row under a lock, applies the patch and writes every
// mutable column back.
func (r *TaskRepository) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var row taskRow
	err = tx.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ? FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}

	current, err := mapTaskRowToDomainTask(row)
	if err != nil {
		return domain.Task{}, err
	}
	updated := input.Apply(current)
	updated.UpdatedAt = r.now().UTC().Truncate(time.Microsecond)

	next, err := mapDomainTaskToRow(updated)
	if err != nil {
		return domain.Task{}, err
	}
	if _, err := tx.NamedExecContext(ctx, updateTaskQuery, next); err != nil {
		return domain.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:             row.ID,
		Title:          row.Title,
		AssigneeName:   row.AssigneeName,
		AssigneeUserID: row.AssigneeUserID,
		Priority:       domain.TaskPriority(row.Priority),
		Status:         domain.TaskStatus(row.Status),
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
		Tags:           []string{},
		Attachments:    []domain.Attachment{},
	}

	if row.Description.Valid {
		task.Description = row.Description.String
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	if len(row.Tags) > 0 {
		if err := row.Tags.Unmarshal(&task.Tags); err != nil {
			return domain.Task{}, err
		}
	}
	if len(row.Attachments) > 0 {
		if err := row.Attachments.Unmarshal(&task.Attachments); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	row := taskRow{
		ID:             task.ID,
		Title:          task.Title,
		Description:    sql.NullString{String: task.Description, Valid: task.Description != ""},
		AssigneeName:   task.AssigneeName,
		AssigneeUserID: task.AssigneeUserID,
		Priority:       string(task.Priority),
		Status:         string(task.Status),
		CreatedBy:      task.CreatedBy,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: task.DueDate.UTC(), Valid: true}
	}

	tags, err := marshalJSONText(nonNil(task.Tags))
	if err != nil {
		return taskRow{}, err
	}
	attachments, err := marshalJSONText(nonNil(task.Attachments))
	if err != nil {
		return taskRow{}, err
	}
	row.Tags = tags
	row.Attachments = attachments
	return row, nil
}
