package domain

import (
	"fmt"
	"time"
)

// Assignee is one selected person in the assignee selector.
type Assignee struct {
	UserID     string
	Name       string
	Role       string
	Department string
	Label      string
}

// Entry binds the assignee to the task record created for them.
func (a Assignee) Entry(taskID string) GroupEntry {
	return GroupEntry{
		TaskID:     taskID,
		UserID:     a.UserID,
		Name:       a.Name,
		Role:       a.Role,
		Department: a.Department,
		Label:      a.Label,
	}
}

// GroupEntry is a weak reference from a group to one per-assignee task.
type GroupEntry struct {
	TaskID     string
	UserID     string
	Name       string
	Role       string
	Department string
	Label      string
}

func (e GroupEntry) Assignee() Assignee {
	return Assignee{
		UserID:     e.UserID,
		Name:       e.Name,
		Role:       e.Role,
		Department: e.Department,
		Label:      e.Label,
	}
}

// TaskGroup joins the per-assignee task records of one logical task.
type TaskGroup struct {
	ID        string
	CreatedBy string
	Users     []GroupEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateGroupInput struct {
	CreatedBy string
	Users     []GroupEntry
}

func (g TaskGroup) EntryForTask(taskID string) (GroupEntry, bool) {
	for _, entry := range g.Users {
		if entry.TaskID == taskID {
			return entry, true
		}
	}
	return GroupEntry{}, false
}

func (g TaskGroup) EntryForUser(userID string) (GroupEntry, bool) {
	for _, entry := range g.Users {
		if entry.UserID == userID {
			return entry, true
		}
	}
	return GroupEntry{}, false
}

func (g TaskGroup) Assignees() []Assignee {
	out := make([]Assignee, 0, len(g.Users))
	for _, entry := range g.Users {
		out = append(out, entry.Assignee())
	}
	return out
}

func (g TaskGroup) Clone() TaskGroup {
	out := g
	out.Users = append([]GroupEntry(nil), g.Users...)
	return out
}

// ValidateEntries checks that no task id and no user id appears twice.
func ValidateEntries(entries []GroupEntry) error {
	tasks := make(map[string]struct{}, len(entries))
	users := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.TaskID == "" || entry.UserID == "" {
			return fmt.Errorf("%w: entry without task or user id", ErrInvalidGroupEntry)
		}
		if _, ok := tasks[entry.TaskID]; ok {
			return fmt.Errorf("%w: task %s listed twice", ErrDuplicateGroupEntry, entry.TaskID)
		}
		if _, ok := users[entry.UserID]; ok {
			return fmt.Errorf("%w: user %s listed twice", ErrDuplicateGroupEntry, entry.UserID)
		}
		tasks[entry.TaskID] = struct{}{}
		users[entry.UserID] = struct{}{}
	}
	return nil
}

// ReferenceState tags a group entry's task reference after verification.
type ReferenceState string

const (
	ReferenceUnverified ReferenceState = "unverified"
	ReferenceValid      ReferenceState = "valid"
	ReferenceDangling   ReferenceState = "dangling"
)

type EntryReference struct {
	GroupID string
	Entry   GroupEntry
	State   ReferenceState
}
