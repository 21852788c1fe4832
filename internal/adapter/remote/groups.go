package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type GroupRepository struct {
	client *Client
}

var _ ports.GroupRepository = (*GroupRepository)(nil)

func NewGroupRepository(client *Client) *GroupRepository {
	return &GroupRepository{client: client}
}

func (r *GroupRepository) Create(ctx context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error) {
	var item dto.GroupItem
	err := r.client.do(ctx, request{
		op:     "create group",
		method: http.MethodPost,
		path:   "/api/groups",
		user:   input.CreatedBy,
		body:   dto.CreateGroupRequest{Users: mapper.ToGroupEntryItems(input.Users)},
		out:    &item,
	})
	if err != nil {
		return domain.TaskGroup{}, err
	}
	return mapper.FromGroupItem(item)
}

func (r *GroupRepository) Get(ctx context.Context, id string) (domain.TaskGroup, error) {
	return r.getGroup(ctx, "get group", "/api/groups/"+url.PathEscape(id))
}

func (r *GroupRepository) GetByTaskID(ctx context.Context, taskID string) (domain.TaskGroup, error) {
	return r.getGroup(ctx, "get group by task", "/api/tasks/"+url.PathEscape(taskID)+"/group")
}

func (r *GroupRepository) getGroup(ctx context.Context, op, path string) (domain.TaskGroup, error) {
	var item dto.GroupItem
	err := r.client.do(ctx, request{op: op, method: http.MethodGet, path: path, out: &item})
	if err != nil {
		return domain.TaskGroup{}, err
	}
	return mapper.FromGroupItem(item)
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.TaskGroup, error) {
	var items []dto.GroupItem
	err := r.client.do(ctx, request{op: "list groups", method: http.MethodGet, path: "/api/groups", out: &items})
	if err != nil {
		return nil, err
	}

	groups := make([]domain.TaskGroup, 0, len(items))
	for _, item := range items {
		group, err := mapper.FromGroupItem(item)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (r *GroupRepository) AddUser(ctx context.Context, groupID string, entry domain.GroupEntry) error {
	return r.client.do(ctx, request{
		op:     "add group entry",
		method: http.MethodPost,
		path:   "/api/groups/" + url.PathEscape(groupID) + "/users",
		body:   mapper.ToGroupEntryItem(entry),
	})
}

func (r *GroupRepository) RemoveUser(ctx context.Context, groupID string, userID string) error {
	return r.client.do(ctx, request{
		op:     "remove group entry",
		method: http.MethodDelete,
		path:   "/api/groups/" + url.PathEscape(groupID) + "/users/" + url.PathEscape(userID),
	})
}

// Reconciler triggers the server-side reconciliation job.
type Reconciler struct {
	client *Client
}

var _ ports.Reconciler = (*Reconciler)(nil)

func NewReconciler(client *Client) *Reconciler {
	return &Reconciler{client: client}
}

func (r *Reconciler) Reconcile(ctx context.Context, dryRun bool) (domain.ReconcileReport, error) {
	var item dto.ReconcileReportItem
	err := r.client.do(ctx, request{
		op:     "reconcile groups",
		method: http.MethodPost,
		path:   "/api/groups/reconcile?" + url.Values{"dry_run": {strconv.FormatBool(dryRun)}}.Encode(),
		out:    &item,
	})
	if err != nil {
		return domain.ReconcileReport{}, err
	}
	return mapper.FromReconcileReportItem(item), nil
}
