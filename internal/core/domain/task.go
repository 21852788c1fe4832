package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on-hold"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusAssigned,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusOnHold,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

type Attachment struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeClass    string `json:"mimeClass"`
	URL          string `json:"url"`
}

type Task struct {
	ID             string
	Title          string
	Description    string
	AssigneeName   string
	AssigneeUserID string
	Priority       TaskPriority
	Status         TaskStatus
	DueDate        *time.Time
	Tags           []string
	Attachments    []Attachment
	Comments       []Comment
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy; board snapshots rely on it.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		value := *t.DueDate
		out.DueDate = &value
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Attachments != nil {
		out.Attachments = append([]Attachment(nil), t.Attachments...)
	}
	if t.Comments != nil {
		out.Comments = append([]Comment(nil), t.Comments...)
	}
	return out
}

// TaskFields are the fields shared by every member of a task group.
type TaskFields struct {
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	DueDate     *time.Time
	Tags        []string
	Attachments []Attachment
}

type CreateTaskInput struct {
	TaskFields
	AssigneeName   string
	AssigneeUserID string
	CreatedBy      string
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *TaskPriority
	Status         *TaskStatus
	DueDate        *time.Time
	DueDateSet     bool
	Tags           []string
	TagsSet        bool
	Attachments    []Attachment
	AttachmentsSet bool
	AssigneeName   *string
	AssigneeUserID *string
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Priority == nil &&
		in.Status == nil &&
		!in.DueDateSet &&
		!in.TagsSet &&
		!in.AttachmentsSet &&
		in.AssigneeName == nil &&
		in.AssigneeUserID == nil
}

// Apply returns t with the set fields of in written over it.
func (in UpdateTaskInput) Apply(t Task) Task {
	out := t.Clone()
	if in.Title != nil {
		out.Title = *in.Title
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	if in.Priority != nil {
		out.Priority = *in.Priority
	}
	if in.Status != nil {
		out.Status = *in.Status
	}
	if in.DueDateSet {
		out.DueDate = nil
		if in.DueDate != nil {
			value := *in.DueDate
			out.DueDate = &value
		}
	}
	if in.TagsSet {
		out.Tags = NormalizeTags(in.Tags)
	}
	if in.AttachmentsSet {
		out.Attachments = append([]Attachment(nil), in.Attachments...)
	}
	if in.AssigneeName != nil {
		out.AssigneeName = *in.AssigneeName
	}
	if in.AssigneeUserID != nil {
		out.AssigneeUserID = *in.AssigneeUserID
	}
	return out
}

// Fields extracts the shared fields of t, used to create group siblings.
func (t Task) Fields() TaskFields {
	clone := t.Clone()
	return TaskFields{
		Title:       clone.Title,
		Description: clone.Description,
		Priority:    clone.Priority,
		Status:      clone.Status,
		DueDate:     clone.DueDate,
		Tags:        clone.Tags,
		Attachments: clone.Attachments,
	}
}

// NormalizeTags drops blanks and duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

type TaskFilter struct {
	UserID string
}
