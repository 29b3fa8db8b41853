package models

import "time"

// DefaultAvatar is assigned to users who register without an avatar.
const DefaultAvatar = "https://imgs.search.brave.com/OtnizHCGx2n01UJ-sS-RbYcY2rtSTNAEhOydMS7vHOU/rs:fit:860:0:0:0/g:ce/aHR0cHM6Ly9zdGF0/aWMudmVjdGVlenku/Y29tL3N5c3RlbS9y/ZXNvdXJjZXMvdGh1/bWJuYWlscy8wMzUv/NzEyLzAwOC9zbWFs/bC8zZC1zaW1wbGUt/dXNlci1pY29uLXBu/Zy5wbmc"

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	// TaskIDs is derived from the tasks table, ordered by creation.
	TaskIDs   []string  `json:"todo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public part of a user returned on login.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
