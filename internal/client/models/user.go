// Package models holds the data exchanged with the quiz API and shared by
// the session and quiz layers.
package models

// User is the authenticated identity as returned by /auth/me.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// DisplayName prefers the username and falls back to the email.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate carries the fields PUT /user/profile accepts. Empty fields
// are left unchanged by the server.
type ProfileUpdate struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}
