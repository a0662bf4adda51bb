package domain

import (
	"strings"
	"time"
)

// Priority is the user-assigned weight of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ProofStatus is the verdict attached to a task's submitted proof.
// It only ever moves forward: none -> pending -> approved|rejected.
type ProofStatus string

const (
	ProofNone     ProofStatus = ""
	ProofPending  ProofStatus = "pending"
	ProofApproved ProofStatus = "approved"
	ProofRejected ProofStatus = "rejected"
)

// Task represents a user-owned activity item as echoed by the server.
type Task struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Status        string      `json:"status"`
	Priority      Priority    `json:"priority"`
	DueDate       *time.Time  `json:"due_date,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	ProofStatus   ProofStatus `json:"proof_status,omitempty"`
	ProofFeedback string      `json:"proof_feedback,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.CompletedAt != nil
}

// TaskDraft carries the user-entered fields of a task before the server
// has assigned it an identity.
type TaskDraft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
}

// Validate checks the client-side preconditions for task creation.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return WrapError(ErrCodeInvalid, "task title must not be empty", ErrInvalidPayload)
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return WrapError(ErrCodeInvalid, "unknown task priority", ErrInvalidPayload)
	}
	return nil
}

// Normalize trims the title and converts a due date to its UTC instant,
// the canonical form the server stores.
func (d TaskDraft) Normalize() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.DueDate != nil {
		utc := d.DueDate.UTC()
		d.DueDate = &utc
	}
	return d
}
