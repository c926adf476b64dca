package repository

import "time"

// User represents a users row. Role holds the stored role code.
type User struct {
	ID        string
	Login     string
	Name      string
	Role      string
	CreatedAt time.Time
}

// WorkOrder represents a work_orders row. Values handed to the list screen
// are snapshots: edits go back through the repo and come out on the next load.
type WorkOrder struct {
	ID        string
	Number    string
	Title     string
	Requester *string
	Assignee  *string
	Category  string
	Priority  string
	Status    string
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
