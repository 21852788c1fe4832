package dto

type GroupEntryItem struct {
	TaskID     string `json:"task_id" binding:"required,max=64"`
	UserID     string `json:"user_id" binding:"required,max=64"`
	Name       string `json:"name" binding:"max=255"`
	Role       string `json:"role" binding:"max=128"`
	Department string `json:"department" binding:"max=128"`
	Label      string `json:"label" binding:"max=255"`
}

type GroupItem struct {
	ID        string           `json:"id"`
	CreatedBy string           `json:"created_by"`
	Users     []GroupEntryItem `json:"users"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

type CreateGroupRequest struct {
	Users []GroupEntryItem `json:"users" binding:"required,min=1,dive"`
}

type EntryReferenceItem struct {
	GroupID string         `json:"group_id"`
	Entry   GroupEntryItem `json:"entry"`
	State   string         `json:"state"`
}

type ReconcileReportItem struct {
	DryRun         bool                 `json:"dry_run"`
	GroupsChecked  int                  `json:"groups_checked"`
	EntriesChecked int                  `json:"entries_checked"`
	Dangling       []EntryReferenceItem `json:"dangling"`
	Repaired       int                  `json:"repaired"`
	EmptyGroups    []string             `json:"empty_groups"`
}
