package dto

type TaskItem struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	AssigneeName   string           `json:"assignee_name"`
	AssigneeUserID string           `json:"assignee_user_id"`
	Priority       string           `json:"priority"`
	Status         string           `json:"status"`
	DueDate        *string          `json:"due_date,omitempty"`
	Tags           []string         `json:"tags"`
	Attachments    []AttachmentItem `json:"attachments"`
	Comments       []CommentItem    `json:"comments,omitempty"`
	CreatedBy      string           `json:"created_by,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

type AttachmentItem struct {
	ID           string `json:"id" binding:"required,max=64"`
	OriginalName string `json:"original_name" binding:"max=255"`
	Size         int64  `json:"size" binding:"gte=0"`
	MimeClass    string `json:"mime_class" binding:"max=64"`
	URL          string `json:"url" binding:"omitempty,url"`
}

// TaskFieldsRequest holds the fields shared by every member of a task group.
type TaskFieldsRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=65535"`
	Priority    *string          `json:"priority,omitempty" binding:"omitempty,taskpriority"`
	Status      *string          `json:"status,omitempty" binding:"omitempty,taskstatus"`
	DueDate     *string          `json:"due_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Tags        []string         `json:"tags,omitempty" binding:"omitempty,max=50,dive,max=64"`
	Attachments []AttachmentItem `json:"attachments,omitempty" binding:"omitempty,dive"`
}

type CreateTaskRequest struct {
	TaskFieldsRequest
	AssigneeName   string `json:"assignee_name" binding:"max=255"`
	AssigneeUserID string `json:"assignee_user_id" binding:"max=64"`
}

type UpdateTaskRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=65535"`
	Priority    *string          `json:"priority" binding:"omitempty,taskpriority"`
	Status      *string          `json:"status" binding:"omitempty,taskstatus"`
	DueDate     *string          `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Tags        []string         `json:"tags" binding:"omitempty,max=50,dive,max=64"`
	Attachments []AttachmentItem `json:"attachments" binding:"omitempty,dive"`

	AssigneeName   *string `json:"assignee_name" binding:"omitempty,max=255"`
	AssigneeUserID *string `json:"assignee_user_id" binding:"omitempty,max=64"`
}
