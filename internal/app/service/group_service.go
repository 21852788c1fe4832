package service

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// GroupService guards the group store: every entry must point at a task that
// exists when the entry is written.
type GroupService struct {
	groupRepository ports.GroupRepository
	taskRepository  ports.TaskRepository
}

func NewGroupService(groupRepository ports.GroupRepository, taskRepository ports.TaskRepository) *GroupService {
	return &GroupService{groupRepository: groupRepository, taskRepository: taskRepository}
}

func (s *GroupService) CreateGroup(ctx context.Context, input domain.CreateGroupInput) (domain.TaskGroup, error) {
	if err := domain.ValidateEntries(input.Users); err != nil {
		return domain.TaskGroup{}, err
	}
	for _, entry := range input.Users {
		if _, err := s.taskRepository.Get(ctx, entry.TaskID); err != nil {
			return domain.TaskGroup{}, err
		}
	}
	return s.groupRepository.Create(ctx, input)
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (domain.TaskGroup, error) {
	return s.groupRepository.Get(ctx, id)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]domain.TaskGroup, error) {
	return s.groupRepository.List(ctx)
}

func (s *GroupService) GetGroupByTaskID(ctx context.Context, taskID string) (domain.TaskGroup, error) {
	return s.groupRepository.GetByTaskID(ctx, taskID)
}

func (s *GroupService) AddUser(ctx context.Context, groupID string, entry domain.GroupEntry) error {
	if err := domain.ValidateEntries([]domain.GroupEntry{entry}); err != nil {
		return err
	}
	if _, err := s.taskRepository.Get(ctx, entry.TaskID); err != nil {
		return err
	}
	return s.groupRepository.AddUser(ctx, groupID, entry)
}

func (s *GroupService) RemoveUser(ctx context.Context, groupID string, userID string) error {
	return s.groupRepository.RemoveUser(ctx, groupID, userID)
}

var _ ports.GroupService = (*GroupService)(nil)
