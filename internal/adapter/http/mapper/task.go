package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

const (
	TimestampLayout = time.RFC3339Nano
	DueDateLayout   = "2006-01-02"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		AssigneeName:   task.AssigneeName,
		AssigneeUserID: task.AssigneeUserID,
		Priority:       string(task.Priority),
		Status:         string(task.Status),
		Tags:           append([]string{}, task.Tags...),
		Attachments:    ToAttachmentItems(task.Attachments),
		CreatedBy:      task.CreatedBy,
		CreatedAt:      task.CreatedAt.Format(TimestampLayout),
		UpdatedAt:      task.UpdatedAt.Format(TimestampLayout),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(DueDateLayout)
		item.DueDate = &value
	}

	if len(task.Comments) > 0 {
		item.Comments = ToCommentItems(task.Comments)
	}

	return item
}

func ToAttachmentItems(attachments []domain.Attachment) []dto.AttachmentItem {
	items := make([]dto.AttachmentItem, 0, len(attachments))
	for _, attachment := range attachments {
		items = append(items, dto.AttachmentItem{
			ID:           attachment.ID,
			OriginalName: attachment.OriginalName,
			Size:         attachment.Size,
			MimeClass:    attachment.MimeClass,
			URL:          attachment.URL,
		})
	}
	return items
}

func FromAttachmentItems(items []dto.AttachmentItem) []domain.Attachment {
	attachments := make([]domain.Attachment, 0, len(items))
	for _, item := range items {
		attachments = append(attachments, domain.Attachment{
			ID:           item.ID,
			OriginalName: item.OriginalName,
			Size:         item.Size,
			MimeClass:    item.MimeClass,
			URL:          item.URL,
		})
	}
	return attachments
}

// FromTaskItem parses a task returned by the API.
func FromTaskItem(item dto.TaskItem) (domain.Task, error) {
	task := domain.Task{
		ID:             item.ID,
		Title:          item.Title,
		Description:    item.Description,
		AssigneeName:   item.AssigneeName,
		AssigneeUserID: item.AssigneeUserID,
		Priority:       domain.TaskPriority(item.Priority),
		Status:         domain.TaskStatus(item.Status),
		Tags:           append([]string{}, item.Tags...),
		Attachments:    FromAttachmentItems(item.Attachments),
		CreatedBy:      item.CreatedBy,
	}

	var err error
	if task.CreatedAt, err = time.Parse(TimestampLayout, item.CreatedAt); err != nil {
		return domain.Task{}, err
	}
	if task.UpdatedAt, err = time.Parse(TimestampLayout, item.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	if item.DueDate != nil {
		dueDate, err := time.Parse(DueDateLayout, *item.DueDate)
		if err != nil {
			return domain.Task{}, err
		}
		task.DueDate = &dueDate
	}
	if len(item.Comments) > 0 {
		if task.Comments, err = FromCommentItems(item.Comments); err != nil {
			return domain.Task{}, err
		}
	}
	return task, nil
}

func FromTaskItems(items []dto.TaskItem) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		task, err := FromTaskItem(item)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ToTaskFieldsRequest is the inverse of the create payload validation, used
// by the API client.
func ToTaskFieldsRequest(fields domain.TaskFields) dto.TaskFieldsRequest {
	req := dto.TaskFieldsRequest{
		Title:       fields.Title,
		Tags:        fields.Tags,
		Attachments: ToAttachmentItems(fields.Attachments),
	}
	if fields.Description != "" {
		value := fields.Description
		req.Description = &value
	}
	if fields.Priority != "" {
		value := string(fields.Priority)
		req.Priority = &value
	}
	if fields.Status != "" {
		value := string(fields.Status)
		req.Status = &value
	}
	if fields.DueDate != nil {
		value := fields.DueDate.Format(DueDateLayout)
		req.DueDate = &value
	}
	return req
}

// ToUpdateTaskPayload renders a partial update as a JSON object holding only
// the fields that are set. A cleared due date is sent as null.
func ToUpdateTaskPayload(input domain.UpdateTaskInput) map[string]any {
	payload := make(map[string]any)
	if input.Title != nil {
		payload["title"] = *input.Title
	}
	if input.Description != nil {
		payload["description"] = *input.Description
	}
	if input.Priority != nil {
		payload["priority"] = string(*input.Priority)
	}
	if input.Status != nil {
		payload["status"] = string(*input.Status)
	}
	if input.DueDateSet {
		if input.DueDate == nil {
			payload["due_date"] = nil
		} else {
			payload["due_date"] = input.DueDate.Format(DueDateLayout)
		}
	}
	if input.TagsSet {
		payload["tags"] = append([]string{}, input.Tags...)
	}
	if input.AttachmentsSet {
		payload["attachments"] = ToAttachmentItems(input.Attachments)
	}
	if input.AssigneeName != nil {
		payload["assignee_name"] = *input.AssigneeName
	}
	if input.AssigneeUserID != nil {
		payload["assignee_user_id"] = *input.AssigneeUserID
	}
	return payload
}
