package project

import "time"

// IDPrefix starts every project id.
const IDPrefix = "project"

// JustNow is the relative activity label set on freshly touched records.
const JustNow = "Just now"

// Status is a project's lifecycle stage.
type Status string

const (
	StatusActive     Status = "active"
	StatusInProgress Status = "in-progress"
	StatusPlanning   Status = "planning"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInProgress, StatusPlanning, StatusCompleted:
		return true
	}
	return false
}

// Project is an engagement for one client. ClientID is a weak reference: the client may
// be deleted while the project lives on. Conversations is a denormalized count.
type Project struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"clientId"`
	ClientName    string    `json:"clientName"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Status        Status    `json:"status"`
	Progress      int       `json:"progress"`
	Conversations int       `json:"conversations"`
	Members       int       `json:"members"`
	StartDate     string    `json:"startDate"`
	DueDate       string    `json:"dueDate"`
	LastActive    string    `json:"lastActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p Project) RecordID() string { return p.ID }

// ClampProgress bounds a percentage to 0..100.
func ClampProgress(p int) int {
	return min(max(p, 0), 100)
}
