package activity

import "time"

// Entry is one audit log row. Read-only on the client.
type Entry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Admin     Actor     `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Actor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
