package dto

type AssigneeItem struct {
	UserID     string `json:"user_id" binding:"required,max=64"`
	Name       string `json:"name" binding:"max=255"`
	Role       string `json:"role" binding:"max=128"`
	Department string `json:"department" binding:"max=128"`
	Label      string `json:"label" binding:"max=255"`
}

type CreateAssignmentRequest struct {
	TaskFieldsRequest
	Assignees []AssigneeItem `json:"assignees" binding:"required,min=1,dive"`
}

// UpdateAssignmentRequest patches the primary task. When assignees is absent
// the current selection is kept.
type UpdateAssignmentRequest struct {
	UpdateTaskRequest
	Assignees []AssigneeItem `json:"assignees" binding:"omitempty,dive"`
}

type EditSessionItem struct {
	Actor     string         `json:"actor"`
	Primary   TaskItem       `json:"primary"`
	Group     *GroupItem     `json:"group,omitempty"`
	Assignees []AssigneeItem `json:"assignees"`
}

type AssignmentResultItem struct {
	Primary *TaskItem       `json:"primary,omitempty"`
	Created []TaskItem      `json:"created"`
	Removed []string        `json:"removed"`
	Group   *GroupItem      `json:"group,omitempty"`
	Session EditSessionItem `json:"session"`
}
