package domain

// AssignmentInput is a submitted task form with its selected assignees.
type AssignmentInput struct {
	TaskFields
	Assignees []Assignee
	CreatedBy string
}

// EditSession is the state an edit form works against. Primary is the task
// record the form was opened on; Group is the active group, if any.
type EditSession struct {
	Actor     string
	Primary   Task
	Group     *TaskGroup
	Assignees []Assignee
}

func (s EditSession) Grouped() bool {
	return s.Group != nil
}

// HasAssignee reports whether userID is in the session's current selection.
func (s EditSession) HasAssignee(userID string) bool {
	for _, assignee := range s.Assignees {
		if assignee.UserID == userID {
			return true
		}
	}
	return false
}

// TaskIDFor resolves the task record owned by userID within the session.
func (s EditSession) TaskIDFor(userID string) (string, bool) {
	if s.Group != nil {
		entry, ok := s.Group.EntryForUser(userID)
		return entry.TaskID, ok
	}
	if s.Primary.AssigneeUserID == userID {
		return s.Primary.ID, true
	}
	return "", false
}

// AssignmentResult is what the board has to apply after a group operation.
type AssignmentResult struct {
	Primary *Task
	Created []Task
	Removed []string
	Group   *TaskGroup
	Session EditSession
}

type ReconcileReport struct {
	DryRun         bool
	GroupsChecked  int
	EntriesChecked int
	Dangling       []EntryReference
	Repaired       int
	EmptyGroups    []string
}
