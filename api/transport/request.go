package transport

import (
	"time"

	"github.com/tasksure/client/domain"
)

// TaskCreateRequest is the JSON body of POST /tasks. Optional fields are
// sent as explicit nulls, matching what the server validates against.
type TaskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// NewTaskCreateRequest maps a normalized draft onto the wire shape.
func NewTaskCreateRequest(draft domain.TaskDraft) TaskCreateRequest {
	req := TaskCreateRequest{
		Title:    draft.Title,
		Priority: string(draft.Priority),
	}
	if draft.Description != "" {
		desc := draft.Description
		req.Description = &desc
	}
	if draft.DueDate != nil {
		due := draft.DueDate.UTC().Format(time.RFC3339)
		req.DueDate = &due
	}
	return req
}
