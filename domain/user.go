package domain

// User is the authenticated account behind a session, as reported by
// the server.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Active   bool   `json:"is_active"`
}
