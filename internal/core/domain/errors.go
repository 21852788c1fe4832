package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrGroupNotFound       = errors.New("task group not found")
	ErrGroupEntryNotFound  = errors.New("task group entry not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrNotCommentAuthor    = errors.New("comment can only be changed by its author")
	ErrInvalidGroupEntry   = errors.New("invalid task group entry")
	ErrDuplicateGroupEntry = errors.New("duplicate task group entry")
	ErrNoAssignees         = errors.New("at least one assignee is required")
	ErrDuplicateAssignee   = errors.New("assignee selected twice")
	ErrEmptyUpdate         = errors.New("update carries no fields")
	ErrNoActiveGroup       = errors.New("task has no active group")
	ErrInvalidStatus       = errors.New("invalid task status")
	ErrRemoteFailure       = errors.New("remote service failure")
	ErrConsistencyGap      = errors.New("consistency gap")
)

// RemoteError is a transient failure of a call to a remote collaborator.
type RemoteError struct {
	Service string
	Op      string
	Err     error
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemoteFailure }

// ConsistencyGapError reports a multi-step operation that stopped after
// applying some of its steps. The applied steps are not compensated.
type ConsistencyGapError struct {
	Operation string
	GroupID   string
	TaskID    string
	UserID    string
	// Created holds tasks that were created before the failure.
	Created []Task
	Err     error
}

func (e *ConsistencyGapError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s", ErrConsistencyGap.Error(), e.Operation)
	if e.GroupID != "" {
		msg += " group=" + e.GroupID
	}
	if e.TaskID != "" {
		msg += " task=" + e.TaskID
	}
	if e.UserID != "" {
		msg += " user=" + e.UserID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConsistencyGapError) Unwrap() error { return e.Err }

func (e *ConsistencyGapError) Is(target error) bool { return target == ErrConsistencyGap }
