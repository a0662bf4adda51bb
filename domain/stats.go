package domain

// Stats is the server-derived productivity aggregate for the current
// user. The client never computes these fields itself; they are
// refreshed together with the task list.
type Stats struct {
	TotalPoints    int `json:"total_points"`
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TasksCompleted int `json:"tasks_completed"`
}

// LeaderboardEntry is one row of the global points ranking. Rank is
// assigned client-side from the position in the server-sorted sequence.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
}
