package mapper

import (
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToAssigneeItems(assignees []domain.Assignee) []dto.AssigneeItem {
	items := make([]dto.AssigneeItem, 0, len(assignees))
	for _, assignee := range assignees {
		items = append(items, dto.AssigneeItem(assignee))
	}
	return items
}

func FromAssigneeItems(items []dto.AssigneeItem) []domain.Assignee {
	assignees := make([]domain.Assignee, 0, len(items))
	for _, item := range items {
		assignees = append(assignees, domain.Assignee(item))
	}
	return assignees
}

func ToEditSessionItem(session domain.EditSession) dto.EditSessionItem {
	item := dto.EditSessionItem{
		Actor:     session.Actor,
		Primary:   ToTaskItem(session.Primary),
		Assignees: ToAssigneeItems(session.Assignees),
	}
	if session.Group != nil {
		group := ToGroupItem(*session.Group)
		item.Group = &group
	}
	return item
}

func ToAssignmentResultItem(result domain.AssignmentResult) dto.AssignmentResultItem {
	item := dto.AssignmentResultItem{
		Created: ToTaskItems(result.Created),
		Removed: append([]string{}, result.Removed...),
		Session: ToEditSessionItem(result.Session),
	}
	if result.Primary != nil {
		primary := ToTaskItem(*result.Primary)
		item.Primary = &primary
	}
	if result.Group != nil {
		group := ToGroupItem(*result.Group)
		item.Group = &group
	}
	return item
}
