package client

import (
	"context"
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/tasksure/client/api/transport"
	"github.com/tasksure/client/domain"
)

// ListTasks fetches the caller's tasks, newest first (server ordering).
func (c *Client) ListTasks(ctx context.Context, sess *domain.Session) ([]domain.Task, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/tasks"))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var records []transport.TaskRecord
	if err := decodeJSON(resp, &records); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.ToDomain())
	}
	return tasks, nil
}

// CreateTask submits a new task draft and returns the server echo.
func (c *Client) CreateTask(ctx context.Context, sess *domain.Session, draft domain.TaskDraft) (*domain.Task, error) {
	body, err := json.Marshal(transport.NewTaskCreateRequest(draft))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "encode task draft", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/tasks"))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var record transport.TaskRecord
	if err := decodeJSON(resp, &record); err != nil {
		return nil, err
	}
	task := record.ToDomain()
	return &task, nil
}

// DeleteTask removes a task by identifier. A missing task surfaces as
// NOT_FOUND, never as silent success.
func (c *Client) DeleteTask(ctx context.Context, sess *domain.Session, id string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/tasks/" + id))
	req.Header.SetMethod(fasthttp.MethodDelete)

	return c.do(ctx, sess, req, resp)
}

// Stats fetches the caller's server-derived productivity aggregate.
func (c *Client) Stats(ctx context.Context, sess *domain.Session) (*domain.Stats, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/stats/me"))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var payload transport.StatsResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	stats := payload.ToDomain()
	return &stats, nil
}

// Leaderboard fetches the global ranking. The server returns the rows
// pre-sorted; rank is the 1-indexed position in the sequence.
func (c *Client) Leaderboard(ctx context.Context, sess *domain.Session) ([]domain.LeaderboardEntry, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/leaderboard"))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var rows []transport.LeaderboardRow
	if err := decodeJSON(resp, &rows); err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:          i + 1,
			Username:      row.Username,
			TotalPoints:   row.TotalPoints,
			CurrentStreak: row.CurrentStreak,
		})
	}
	return entries, nil
}

// StreakCalendar fetches the per-day completion counts keyed by
// YYYY-MM-DD date strings.
func (c *Client) StreakCalendar(ctx context.Context, sess *domain.Session) (map[string]int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/streak/calendar"))
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	calendar := map[string]int{}
	if err := decodeJSON(resp, &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}
