package domain

import (
	"context"
	"errors"
	"time"
)

// ErrPostNotFound is returned when no post exists for a given id.
var ErrPostNotFound = errors.New("post not found")

// Author is the structured byline of a post. Writes accept it as an object;
// read responses render it as a single display string.
type Author struct {
	FirstName string
	LastName  string
}

// DisplayName joins the two names the way read responses present an author.
func (a Author) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

// Post represents a stored blog post.
// ID and Created are assigned by the repository on insertion and never change
// for the lifetime of the record.
type Post struct {
	ID      string
	Title   string
	Content string
	Author  Author
	Created time.Time
}

// PostInput carries the caller-supplied fields of a post to be inserted.
type PostInput struct {
	Title   string
	Content string
	Author  Author
}

// PostUpdate is a patch against an existing post. A nil field is not applied.
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *Author
}

// IsEmpty reports whether the patch carries no fields at all.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}

type PostRepository interface {
	// InsertMany persists the given inputs, assigning each an id and creation
	// timestamp, and returns the stored posts in input order.
	InsertMany(ctx context.Context, inputs []PostInput) ([]*Post, error)

	// FindAll returns every stored post. Ordering is unspecified.
	FindAll(ctx context.Context) ([]*Post, error)

	// FindByID returns the post with the given id, or ErrPostNotFound.
	FindByID(ctx context.Context, id string) (*Post, error)

	// UpdateByID applies the patch to the matching post, leaving id and the
	// creation timestamp untouched. It reports whether a post matched.
	UpdateByID(ctx context.Context, id string, update PostUpdate) (bool, error)

	// DeleteByID removes the matching post and reports whether one matched.
	DeleteByID(ctx context.Context, id string) (bool, error)
}
