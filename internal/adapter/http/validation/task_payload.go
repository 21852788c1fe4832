package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildTaskFields validates the shared task fields of a create payload.
// Status and priority are left empty when absent so the service applies its
// defaults.
func BuildTaskFields(req dto.TaskFieldsRequest, raw map[string]json.RawMessage) (domain.TaskFields, error) {
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.TaskFields{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.TaskFields{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.TaskFields{}, ErrInvalidTaskPayload
	}

	fields := domain.TaskFields{
		Title:       title,
		Tags:        domain.NormalizeTags(req.Tags),
		Attachments: mapper.FromAttachmentItems(req.Attachments),
	}

	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.Status != nil {
		fields.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		fields.Priority = domain.TaskPriority(*req.Priority)
	}

	if req.DueDate != nil {
		parsedDueDate, err := time.Parse(mapper.DueDateLayout, *req.DueDate)
		if err != nil {
			return domain.TaskFields{}, ErrInvalidTaskPayload
		}
		fields.DueDate = &parsedDueDate
	}

	return fields, nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage, createdBy string) (domain.CreateTaskInput, error) {
	fields, err := BuildTaskFields(req.TaskFieldsRequest, raw)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		TaskFields:     fields,
		AssigneeName:   strings.TrimSpace(req.AssigneeName),
		AssigneeUserID: strings.TrimSpace(req.AssigneeUserID),
		CreatedBy:      createdBy,
	}, nil
}

// BuildUpdateTaskInput turns a partial payload into a patch. A field sent as
// null is rejected, except due_date where null clears the date. When
// allowEmpty is false a payload without task fields is rejected.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, allowEmpty bool) (domain.UpdateTaskInput, error) {
	if !allowEmpty && !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &value
	}

	if hasJSONField(raw, "description") && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	input.Description = req.Description

	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		input.Status = &value
	}

	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}

	input.DueDateSet = hasJSONField(raw, "due_date")
	if input.DueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsedDueDate, err := time.Parse(mapper.DueDateLayout, *req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.DueDate = &parsedDueDate
	}

	input.TagsSet = hasJSONField(raw, "tags")
	if input.TagsSet {
		if isJSONNull(raw["tags"]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Tags = domain.NormalizeTags(req.Tags)
	}

	input.AttachmentsSet = hasJSONField(raw, "attachments")
	if input.AttachmentsSet {
		if isJSONNull(raw["attachments"]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Attachments = mapper.FromAttachmentItems(req.Attachments)
	}

	if hasJSONField(raw, "assignee_name") && req.AssigneeName == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.AssigneeName != nil {
		value := strings.TrimSpace(*req.AssigneeName)
		input.AssigneeName = &value
	}

	if hasJSONField(raw, "assignee_user_id") && req.AssigneeUserID == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.AssigneeUserID != nil {
		value := strings.TrimSpace(*req.AssigneeUserID)
		input.AssigneeUserID = &value
	}

	return input, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "tags") ||
		hasJSONField(raw, "attachments") ||
		hasJSONField(raw, "assignee_name") ||
		hasJSONField(raw, "assignee_user_id")
}

func HasJSONField(raw map[string]json.RawMessage, field string) bool {
	return hasJSONField(raw, field)
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
