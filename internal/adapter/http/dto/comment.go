package dto

type CommentItem struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

type ReportItem struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type ReportRequest struct {
	Message string `json:"message" binding:"required,max=10000"`
}
