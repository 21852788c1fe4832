package dto

type EmployeeItem struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Label      string `json:"label"`
}
