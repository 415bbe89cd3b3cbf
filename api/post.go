package api

import "time"

// Post is the public read representation. Author is the joined display name,
// not the structured object accepted on writes.
type Post struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
}

type AuthorPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CreatePostRequest struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Author  *AuthorPayload `json:"author"`
}

// UpdatePostRequest carries a PUT body. ID must match the path id; the
// remaining fields are optional and only those present are applied.
type UpdatePostRequest struct {
	ID      string         `json:"id"`
	Title   *string        `json:"title"`
	Content *string        `json:"content"`
	Author  *AuthorPayload `json:"author"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
