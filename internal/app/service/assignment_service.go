package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/metrics"
)

const (
	opCreateTask       = "create_task"
	opCreateGroup      = "create_group"
	opAddGroupEntry    = "add_group_entry"
	opDeleteTask       = "delete_task"
	opRemoveGroupEntry = "remove_group_entry"
)

// AssignmentService keeps the per-assignee task records and their task group
// consistent. Steps of one call run sequentially and stop at the first
// failure; steps already applied are not compensated.
//
// A group is only created when a task is first saved with two or more
// assignees. Editing an ungrouped task up to two assignees creates the group
// on demand, seeded with the task's own assignee. An unassigned task takes
// the first added assignee itself.
type AssignmentService struct {
	taskRepository    ports.TaskRepository
	groupRepository   ports.GroupRepository
	employeeDirectory ports.EmployeeDirectory
}

func NewAssignmentService(
	taskRepository ports.TaskRepository,
	groupRepository ports.GroupRepository,
	employeeDirectory ports.EmployeeDirectory,
) *AssignmentService {
	return &AssignmentService{
		taskRepository:    taskRepository,
		groupRepository:   groupRepository,
		employeeDirectory: employeeDirectory,
	}
}

// Create fans one submitted form out to one task per assignee.
func (s *AssignmentService) Create(ctx context.Context, input domain.AssignmentInput) (domain.AssignmentResult, error) {
	if err := validateSelection(input.Assignees); err != nil {
		return domain.AssignmentResult{}, err
	}
	metrics.GroupOperations.WithLabelValues("create").Inc()

	fields := withDefaults(input.TaskFields)
	created := make([]domain.Task, 0, len(input.Assignees))
	entries := make([]domain.GroupEntry, 0, len(input.Assignees))
	for _, assignee := range input.Assignees {
		task, err := s.taskRepository.Create(ctx, newTaskInput(fields, assignee, input.CreatedBy))
		if err != nil {
			if len(created) == 0 {
				return domain.AssignmentResult{}, err
			}
			return domain.AssignmentResult{Created: created}, gap(&domain.ConsistencyGapError{
				Operation: opCreateTask,
				UserID:    assignee.UserID,
				Created:   created,
				Err:       err,
			})
		}
		created = append(created, task)
		entries = append(entries, assignee.Entry(task.ID))
	}

	result := domain.AssignmentResult{
		Created: created,
		Session: domain.EditSession{
			Actor:     input.CreatedBy,
			Primary:   created[0],
			Assignees: append([]domain.Assignee(nil), input.Assignees...),
		},
	}
	if len(entries) < 2 {
		return result, nil
	}

	group, err := s.groupRepository.Create(ctx, domain.CreateGroupInput{
		CreatedBy: input.CreatedBy,
		Users:     entries,
	})
	if err != nil {
		return result, gap(&domain.ConsistencyGapError{
			Operation: opCreateGroup,
			Created:   created,
			Err:       err,
		})
	}
	result.Group = &group
	result.Session.Group = cloneGroup(&group)
	result.Session.Assignees = group.Assignees()
	return result, nil
}

// Open resolves the full assignee set of an existing task for editing.
func (s *AssignmentService) Open(ctx context.Context, taskID, actor string) (domain.EditSession, error) {
	task, err := s.taskRepository.Get(ctx, taskID)
	if err != nil {
		return domain.EditSession{}, err
	}

	group, err := s.groupRepository.GetByTaskID(ctx, taskID)
	switch {
	case err == nil:
		return domain.EditSession{
			Actor:     actor,
			Primary:   task,
			Group:     &group,
			Assignees: group.Assignees(),
		}, nil
	case errors.Is(err, domain.ErrGroupNotFound):
	default:
		return domain.EditSession{}, err
	}

	session := domain.EditSession{Actor: actor, Primary: task}
	if task.AssigneeUserID != "" {
		session.Assignees = []domain.Assignee{s.resolveAssignee(ctx, task)}
	}
	return session, nil
}

// Update writes the shared fields to the primary record, then creates a task
// for every added assignee and deletes the task of every removed one.
// Siblings that stay in the group are not touched.
func (s *AssignmentService) Update(
	ctx context.Context,
	session domain.EditSession,
	input domain.UpdateTaskInput,
	selection []domain.Assignee,
) (domain.AssignmentResult, error) {
	if err := validateSelection(selection); err != nil {
		return domain.AssignmentResult{}, err
	}
	metrics.GroupOperations.WithLabelValues("update").Inc()

	session = detach(session)
	added := missingFrom(selection, session.Assignees)
	removed := missingFrom(session.Assignees, selection)

	// An unassigned primary is given to the first added assignee instead of
	// getting a sibling of its own.
	var claimed *domain.Assignee
	if session.Group == nil && session.Primary.AssigneeUserID == "" && len(added) > 0 {
		owner := added[0]
		claimed = &owner
		added = added[1:]
		input.AssigneeUserID = &owner.UserID
		input.AssigneeName = &owner.Name
	}

	applied := false
	if !input.Empty() {
		primary, err := s.taskRepository.Update(ctx, session.Primary.ID, input)
		if err != nil {
			return domain.AssignmentResult{Session: session}, err
		}
		session.Primary = primary
		applied = true
	}
	if claimed != nil {
		session.Assignees = []domain.Assignee{*claimed}
	}

	primary := session.Primary
	result := domain.AssignmentResult{Primary: &primary}
	fail := func(operation string, err error) (domain.AssignmentResult, error) {
		result.Session = session
		result.Group = cloneGroup(session.Group)
		var gapErr *domain.ConsistencyGapError
		if errors.As(err, &gapErr) {
			gapErr.Created = append([]domain.Task(nil), result.Created...)
			return result, err
		}
		if !applied {
			return result, err
		}
		return result, gap(&domain.ConsistencyGapError{
			Operation: operation,
			TaskID:    session.Primary.ID,
			Created:   append([]domain.Task(nil), result.Created...),
			Err:       err,
		})
	}

	for _, assignee := range added {
		task, err := s.addAssignee(ctx, &session, assignee)
		if task.ID != "" {
			result.Created = append(result.Created, task)
			applied = true
		}
		if err != nil {
			return fail(opCreateTask, err)
		}
	}

	for _, assignee := range removed {
		taskID, err := s.removeAssignee(ctx, &session, assignee.UserID)
		if taskDeleted(taskID, err) {
			applied = true
			result.Removed = append(result.Removed, taskID)
			if taskID == primary.ID {
				result.Primary = nil
			}
		}
		if err != nil {
			return fail(opDeleteTask, err)
		}
	}

	if result.Primary == nil {
		s.reanchor(ctx, &session, result.Created)
	}
	result.Session = session
	result.Group = cloneGroup(session.Group)
	return result, nil
}

// RemoveAssignee drops one assignee from the active group immediately.
func (s *AssignmentService) RemoveAssignee(ctx context.Context, session domain.EditSession, userID string) (domain.AssignmentResult, error) {
	if !session.Grouped() {
		return domain.AssignmentResult{}, domain.ErrNoActiveGroup
	}
	metrics.GroupOperations.WithLabelValues("remove_assignee").Inc()

	session = detach(session)
	primaryID := session.Primary.ID
	taskID, err := s.removeAssignee(ctx, &session, userID)
	result := domain.AssignmentResult{Session: session, Group: cloneGroup(session.Group)}
	if taskDeleted(taskID, err) {
		result.Removed = []string{taskID}
	}
	if err != nil {
		return result, err
	}

	if taskID == primaryID {
		s.reanchor(ctx, &session, nil)
		result.Session = session
	} else {
		primary := session.Primary
		result.Primary = &primary
	}
	return result, nil
}

// taskDeleted reports whether removeAssignee got as far as deleting the task.
func taskDeleted(taskID string, err error) bool {
	if taskID == "" {
		return false
	}
	if err == nil {
		return true
	}
	var gapErr *domain.ConsistencyGapError
	return errors.As(err, &gapErr) && gapErr.Operation == opRemoveGroupEntry
}

func (s *AssignmentService) addAssignee(ctx context.Context, session *domain.EditSession, assignee domain.Assignee) (domain.Task, error) {
	task, err := s.taskRepository.Create(ctx, newTaskInput(session.Primary.Fields(), assignee, s.actor(*session)))
	if err != nil {
		return domain.Task{}, err
	}
	entry := assignee.Entry(task.ID)

	if session.Group == nil {
		entries := make([]domain.GroupEntry, 0, 2)
		if owner, ok := sessionOwner(*session); ok {
			entries = append(entries, owner.Entry(session.Primary.ID))
		}
		entries = append(entries, entry)
		if len(entries) < 2 {
			session.Assignees = append(session.Assignees, assignee)
			return task, nil
		}
		group, err := s.groupRepository.Create(ctx, domain.CreateGroupInput{
			CreatedBy: s.actor(*session),
			Users:     entries,
		})
		if err != nil {
			return task, gap(&domain.ConsistencyGapError{
				Operation: opCreateGroup,
				TaskID:    task.ID,
				UserID:    assignee.UserID,
				Err:       err,
			})
		}
		session.Group = &group
		session.Assignees = group.Assignees()
		return task, nil
	}

	if err := s.groupRepository.AddUser(ctx, session.Group.ID, entry); err != nil {
		return task, gap(&domain.ConsistencyGapError{
			Operation: opAddGroupEntry,
			GroupID:   session.Group.ID,
			TaskID:    task.ID,
			UserID:    assignee.UserID,
			Err:       err,
		})
	}
	session.Group.Users = append(session.Group.Users, entry)
	session.Assignees = session.Group.Assignees()
	return task, nil
}

// removeAssignee deletes the assignee's task and removes its group entry.
// Both steps are attempted even when the first one fails.
func (s *AssignmentService) removeAssignee(ctx context.Context, session *domain.EditSession, userID string) (string, error) {
	taskID, ok := session.TaskIDFor(userID)
	if !ok {
		return "", domain.ErrGroupEntryNotFound
	}

	deleteErr := s.taskRepository.Delete(ctx, taskID)
	if errors.Is(deleteErr, domain.ErrTaskNotFound) {
		deleteErr = nil
	}

	var removeErr error
	if session.Group != nil {
		removeErr = s.groupRepository.RemoveUser(ctx, session.Group.ID, userID)
		if errors.Is(removeErr, domain.ErrGroupEntryNotFound) {
			removeErr = nil
		}
		if removeErr == nil {
			session.Group.Users = withoutUser(session.Group.Users, userID)
			session.Assignees = session.Group.Assignees()
		}
	} else if deleteErr == nil {
		session.Assignees = withoutAssignee(session.Assignees, userID)
	}

	if deleteErr == nil && removeErr == nil {
		return taskID, nil
	}

	operation := opRemoveGroupEntry
	if deleteErr != nil {
		operation = opDeleteTask
	}
	gapErr := &domain.ConsistencyGapError{
		Operation: operation,
		TaskID:    taskID,
		UserID:    userID,
		Err:       errors.Join(deleteErr, removeErr),
	}
	if session.Group != nil {
		gapErr.GroupID = session.Group.ID
	}
	return taskID, gap(gapErr)
}

// reanchor moves the session's primary to a surviving member after the
// primary's own assignee was removed.
func (s *AssignmentService) reanchor(ctx context.Context, session *domain.EditSession, created []domain.Task) {
	session.Primary = domain.Task{}
	if session.Group == nil || len(session.Group.Users) == 0 {
		return
	}
	next := session.Group.Users[0].TaskID
	for _, task := range created {
		if task.ID == next {
			session.Primary = task
			return
		}
	}
	task, err := s.taskRepository.Get(ctx, next)
	if err != nil {
		zap.L().Warn("failed to reload surviving group member", zap.String("task_id", next), zap.Error(err))
		return
	}
	session.Primary = task
}

func (s *AssignmentService) resolveAssignee(ctx context.Context, task domain.Task) domain.Assignee {
	assignee := domain.Assignee{UserID: task.AssigneeUserID, Name: task.AssigneeName}
	if s.employeeDirectory == nil {
		return assignee
	}

	employees, err := s.employeeDirectory.ListEmployees(ctx)
	if err != nil {
		zap.L().Warn("employee directory unavailable", zap.String("task_id", task.ID), zap.Error(err))
		return assignee
	}
	for _, employee := range employees {
		if employee.UserID != task.AssigneeUserID {
			continue
		}
		resolved := employee.Assignee()
		if assignee.Name != "" {
			resolved.Name = assignee.Name
		}
		return resolved
	}
	return assignee
}

func (s *AssignmentService) actor(session domain.EditSession) string {
	if session.Actor != "" {
		return session.Actor
	}
	return session.Primary.CreatedBy
}

func gap(err *domain.ConsistencyGapError) error {
	metrics.ConsistencyGaps.WithLabelValues(err.Operation).Inc()
	zap.L().Warn("group operation left a consistency gap",
		zap.String("operation", err.Operation),
		zap.String("group_id", err.GroupID),
		zap.String("task_id", err.TaskID),
		zap.String("user_id", err.UserID),
		zap.Int("created", len(err.Created)),
		zap.Error(err.Err),
	)
	return err
}

func validateSelection(selection []domain.Assignee) error {
	if len(selection) == 0 {
		return domain.ErrNoAssignees
	}
	seen := make(map[string]struct{}, len(selection))
	for _, assignee := range selection {
		if assignee.UserID == "" {
			return domain.ErrInvalidGroupEntry
		}
		if _, ok := seen[assignee.UserID]; ok {
			return domain.ErrDuplicateAssignee
		}
		seen[assignee.UserID] = struct{}{}
	}
	return nil
}

func withDefaults(fields domain.TaskFields) domain.TaskFields {
	if fields.Status == "" {
		fields.Status = domain.TaskStatusAssigned
	}
	if fields.Priority == "" {
		fields.Priority = domain.TaskPriorityMedium
	}
	fields.Tags = domain.NormalizeTags(fields.Tags)
	return fields
}

func newTaskInput(fields domain.TaskFields, assignee domain.Assignee, createdBy string) domain.CreateTaskInput {
	return domain.CreateTaskInput{
		TaskFields:     fields,
		AssigneeName:   assignee.Name,
		AssigneeUserID: assignee.UserID,
		CreatedBy:      createdBy,
	}
}

// sessionOwner returns the assignee that owns the primary record.
func sessionOwner(session domain.EditSession) (domain.Assignee, bool) {
	if session.Primary.AssigneeUserID == "" {
		return domain.Assignee{}, false
	}
	for _, assignee := range session.Assignees {
		if assignee.UserID == session.Primary.AssigneeUserID {
			return assignee, true
		}
	}
	return domain.Assignee{
		UserID: session.Primary.AssigneeUserID,
		Name:   session.Primary.AssigneeName,
	}, true
}

// missingFrom returns the members of a whose user id is absent from b, in a's order.
func missingFrom(a, b []domain.Assignee) []domain.Assignee {
	present := make(map[string]struct{}, len(b))
	for _, assignee := range b {
		present[assignee.UserID] = struct{}{}
	}
	var out []domain.Assignee
	for _, assignee := range a {
		if _, ok := present[assignee.UserID]; !ok {
			out = append(out, assignee)
		}
	}
	return out
}

func withoutUser(entries []domain.GroupEntry, userID string) []domain.GroupEntry {
	out := make([]domain.GroupEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.UserID != userID {
			out = append(out, entry)
		}
	}
	return out
}

func withoutAssignee(assignees []domain.Assignee, userID string) []domain.Assignee {
	out := make([]domain.Assignee, 0, len(assignees))
	for _, assignee := range assignees {
		if assignee.UserID != userID {
			out = append(out, assignee)
		}
	}
	return out
}

func cloneGroup(group *domain.TaskGroup) *domain.TaskGroup {
	if group == nil {
		return nil
	}
	clone := group.Clone()
	return &clone
}

// detach copies the session so the caller's value is not mutated.
func detach(session domain.EditSession) domain.EditSession {
	session.Primary = session.Primary.Clone()
	session.Group = cloneGroup(session.Group)
	session.Assignees = append([]domain.Assignee(nil), session.Assignees...)
	return session
}

var _ ports.AssignmentService = (*AssignmentService)(nil)
