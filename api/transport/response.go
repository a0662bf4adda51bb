package transport

import (
	"encoding/json"
	"time"

	"github.com/tasksure/client/domain"
)

// TaskRecord is the wire form of a task. The server issues numeric ids;
// the client treats them as opaque strings.
type TaskRecord struct {
	ID            json.Number `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	DueDate       *time.Time  `json:"due_date"`
	CompletedAt   *time.Time  `json:"completed_at"`
	ProofStatus   string      `json:"proof_status"`
	ProofFeedback string      `json:"proof_feedback"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// ToDomain converts the wire record into the domain entity.
func (r TaskRecord) ToDomain() domain.Task {
	return domain.Task{
		ID:            r.ID.String(),
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      domain.Priority(r.Priority),
		DueDate:       r.DueDate,
		CompletedAt:   r.CompletedAt,
		ProofStatus:   domain.ProofStatus(r.ProofStatus),
		ProofFeedback: r.ProofFeedback,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// StatsResponse mirrors GET /stats/me.
type StatsResponse struct {
	TotalPoints    int `json:"total_points"`
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TasksCompleted int `json:"tasks_completed"`
}

func (r StatsResponse) ToDomain() domain.Stats {
	return domain.Stats(r)
}

// LeaderboardRow mirrors one element of GET /leaderboard. Rank is not
// part of the wire format; it is the 1-indexed position in the sequence.
type LeaderboardRow struct {
	Username      string `json:"username"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
}

// ProofVerdictResponse carries the authoritative verdict returned by
// POST /tasks/{id}/proof. Status may still be "pending".
type ProofVerdictResponse struct {
	Status   string `json:"proof_status"`
	Feedback string `json:"proof_feedback"`
}

func (r ProofVerdictResponse) ToDomain() domain.ProofVerdict {
	return domain.ProofVerdict{
		Status:   domain.ProofStatus(r.Status),
		Feedback: r.Feedback,
	}
}

// UserResponse mirrors GET /auth/me.
type UserResponse struct {
	ID       json.Number `json:"id"`
	Email    string      `json:"email"`
	Username string      `json:"username"`
	IsActive bool        `json:"is_active"`
}

func (r UserResponse) ToDomain() domain.User {
	return domain.User{
		ID:       r.ID.String(),
		Email:    r.Email,
		Username: r.Username,
		Active:   r.IsActive,
	}
}

// TokenResponse mirrors POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse is the server's error body shape.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
