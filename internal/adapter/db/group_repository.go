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

const insertGroupUserQuery = `
INSERT INTO task_group_users (group_id, task_id, user_id, name, role, department, label)
VALUES (:group_id, :task_id, :user_id, :name, :role, :department, :label);
`

const groupUsersColumns = `group_id, task_id, user_id, name, role, department, label`

// GroupRepository stores groups in task_groups and their entries in
// task_group_users, ordered by insertion.
type GroupRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type groupRow struct {
	ID        string    `db:"id"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type groupUserRow struct {
	GroupID    string `db:"group_id"`
	TaskID     string `db:"task_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Role       string `db:"role"`
	Department string `db:"department"`
	Label      string `db:"label"`
}

var _ ports.GroupRepository = (*GroupRepository)(nil)

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db, now: time.Now}
}

func (r *GroupRepository) Create(ctx context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error) {
	if err := domain.ValidateEntries(input.Users); err != nil {
		return domain.TaskGroup{}, err
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	group := domain.TaskGroup{
		ID:        uuid.NewString(),
		CreatedBy: input.CreatedBy,
		Users:     append([]domain.GroupEntry(nil), input.Users...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.TaskGroup{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO task_groups (id, created_by, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		group.ID, group.CreatedBy, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return domain.TaskGroup{}, err
	}
	for _, entry := range group.Users {
		if err := insertGroupUser(ctx, tx, group.ID, entry); err != nil {
			return domain.TaskGroup{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.TaskGroup{}, err
	}
	return group.Clone(), nil
}

func (r *GroupRepository) Get(ctx context.Context, id string) (domain.TaskGroup, error) {
	var row groupRow
	err := r.db.GetContext(ctx, &row, `SELECT id, created_by, created_at, updated_at FROM task_groups WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TaskGroup{}, domain.ErrGroupNotFound
	}
	if err != nil {
		return domain.TaskGroup{}, err
	}

	var users []groupUserRow
	err = r.db.SelectContext(ctx, &users,
		`SELECT `+groupUsersColumns+` FROM task_group_users WHERE group_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.TaskGroup{}, err
	}
	return mapGroupRowToDomainGroup(row, users), nil
}

func (r *GroupRepository) GetByTaskID(ctx context.Context, taskID string) (domain.TaskGroup, error) {
	var groupID string
	err := r.db.GetContext(ctx, &groupID,
		`SELECT group_id FROM task_group_users WHERE task_id = ? ORDER BY position LIMIT 1`, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TaskGroup{}, domain.ErrGroupNotFound
	}
	if err != nil {
		return domain.TaskGroup{}, err
	}
	return r.Get(ctx, groupID)
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.TaskGroup, error) {
	var rows []groupRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, created_by, created_at, updated_at FROM task_groups ORDER BY seq`); err != nil {
		return nil, err
	}

	var users []groupUserRow
	if err := r.db.SelectContext(ctx, &users,
		`SELECT `+groupUsersColumns+` FROM task_group_users ORDER BY position`); err != nil {
		return nil, err
	}

	byGroup := make(map[string][]groupUserRow, len(rows))
	for _, user := range users {
		byGroup[user.GroupID] = append(byGroup[user.GroupID], user)
	}

	groups := make([]domain.TaskGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, mapGroupRowToDomainGroup(row, byGroup[row.ID]))
	}
	return groups, nil
}

// AddUser validates the new entry against the current members while holding
// the group row lock.
func (r *GroupRepository) AddUser(ctx context.Context, groupID string, entry domain.GroupEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockGroup(ctx, tx, groupID); err != nil {
		return err
	}

	var users []groupUserRow
	err = tx.SelectContext(ctx, &users,
		`SELECT `+groupUsersColumns+` FROM task_group_users WHERE group_id = ? ORDER BY position`, groupID)
	if err != nil {
		return err
	}
	entries := make([]domain.GroupEntry, 0, len(users)+1)
	for _, user := range users {
		entries = append(entries, mapGroupUserRow(user))
	}
	if err := domain.ValidateEntries(append(entries, entry)); err != nil {
		return err
	}

	if err := insertGroupUser(ctx, tx, groupID, entry); err != nil {
		return err
	}
	if err := touchGroup(ctx, tx, groupID, r.now()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *GroupRepository) RemoveUser(ctx context.Context, groupID string, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockGroup(ctx, tx, groupID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM task_group_users WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrGroupEntryNotFound
	}

	if err := touchGroup(ctx, tx, groupID, r.now()); err != nil {
		return err
	}
	return tx.Commit()
}

func lockGroup(ctx context.Context, tx *sqlx.Tx, groupID string) error {
	var id string
	err := tx.GetContext(ctx, &id, `SELECT id FROM task_groups WHERE id = ? FOR UPDATE`, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrGroupNotFound
	}
	return err
}

func touchGroup(ctx context.Context, tx *sqlx.Tx, groupID string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `UPDATE task_groups SET updated_at = ? WHERE id = ?`,
		now.UTC().Truncate(time.Microsecond), groupID)
	return err
}

func insertGroupUser(ctx context.Context, tx *sqlx.Tx, groupID string, entry domain.GroupEntry) error {
	row := groupUserRow{
		GroupID:    groupID,
		TaskID:     entry.TaskID,
		UserID:     entry.UserID,
		Name:       entry.Name,
		Role:       entry.Role,
		Department: entry.Department,
		Label:      entry.Label,
	}
	if _, err := tx.NamedExecContext(ctx, insertGroupUserQuery, row); err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicateGroupEntry
		}
		return err
	}
	return nil
}

func mapGroupRowToDomainGroup(row groupRow, users []groupUserRow) domain.TaskGroup {
	group := domain.TaskGroup{
		ID:        row.ID,
		CreatedBy: row.CreatedBy,
		Users:     make([]domain.GroupEntry, 0, len(users)),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
	for _, user := range users {
		group.Users = append(group.Users, mapGroupUserRow(user))
	}
	return group
}

func mapGroupUserRow(row groupUserRow) domain.GroupEntry {
	return domain.GroupEntry{
		TaskID:     row.TaskID,
		UserID:     row.UserID,
		Name:       row.Name,
		Role:       row.Role,
		Department: row.Department,
		Label:      row.Label,
	}
}
