package domain

import "time"

// Post is a message board entry. Name is the author's display name, not an
// account reference; posts carry no ownership and any authenticated caller
// may modify any post.
type Post struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type PostRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}
