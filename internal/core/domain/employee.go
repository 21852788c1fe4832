package domain

// Employee is a directory record; the assignee selector is fed from it.
type Employee struct {
	UserID     string
	Name       string
	Role       string
	Department string
	Label      string
}

func (e Employee) Assignee() Assignee {
	return Assignee(e)
}
