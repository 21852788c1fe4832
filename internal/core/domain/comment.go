package domain

import "time"

type Comment struct {
	ID        string
	TaskID    string
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type IssueReport struct {
	ID        string
	TaskID    string
	Message   string
	CreatedAt time.Time
}
