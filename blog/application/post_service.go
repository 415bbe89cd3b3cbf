package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dfryer1193/postapi/blog/domain"

	"github.com/rs/zerolog/log"
)

// ValidationError reports request input rejected before any store call.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func missingField(name string) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf("missing required field: %s", name)}
}

func emptyField(name string) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf("field %s must not be empty", name)}
}

// PostService owns the post lifecycle between the HTTP layer and the store.
// All input validation happens here, before the repository is touched.
type PostService struct {
	repo domain.PostRepository
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{
		repo: repo,
	}
}

// CreatePost validates and inserts a single post, returning it with its
// assigned id and creation timestamp.
func (s *PostService) CreatePost(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	posts, err := s.CreatePosts(ctx, []domain.PostInput{in})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

// CreatePosts validates and inserts a batch of posts. The whole batch is
// rejected if any input fails validation.
func (s *PostService) CreatePosts(ctx context.Context, inputs []domain.PostInput) ([]*domain.Post, error) {
	for _, in := range inputs {
		if err := validateInput(in); err != nil {
			return nil, err
		}
	}

	posts, err := s.repo.InsertMany(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("could not create posts: %w", err)
	}

	return posts, nil
}

// ListPosts returns every stored post.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns the post with the given id, or domain.ErrPostNotFound.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("could not get post %s: %w", id, err)
	}
	return post, nil
}

// UpdatePost applies the patch to the post with the given id. Provided fields
// replace the stored values; omitted fields are left alone. Returns
// domain.ErrPostNotFound when no post matches.
func (s *PostService) UpdatePost(ctx context.Context, id string, update domain.PostUpdate) error {
	if err := validateUpdate(update); err != nil {
		return err
	}

	matched, err := s.repo.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("could not update post %s: %w", id, err)
	}
	if !matched {
		return domain.ErrPostNotFound
	}

	return nil
}

// DeletePost removes the post with the given id. Deleting an absent post is
// not an error; delete is idempotent from the caller's point of view.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	matched, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete post %s: %w", id, err)
	}
	if !matched {
		log.Debug().Str("postId", id).Msg("Delete of absent post, nothing to do")
	}

	return nil
}

func validateInput(in domain.PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return missingField("title")
	}
	if strings.TrimSpace(in.Content) == "" {
		return missingField("content")
	}
	if in.Author.FirstName == "" && in.Author.LastName == "" {
		return missingField("author")
	}
	if strings.TrimSpace(in.Author.FirstName) == "" {
		return missingField("author.firstName")
	}
	if strings.TrimSpace(in.Author.LastName) == "" {
		return missingField("author.lastName")
	}
	return nil
}

func validateUpdate(update domain.PostUpdate) error {
	if update.IsEmpty() {
		return &ValidationError{msg: "no fields to update"}
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return emptyField("title")
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return emptyField("content")
	}
	if update.Author != nil {
		// The author value is atomic: both names travel together.
		if strings.TrimSpace(update.Author.FirstName) == "" || strings.TrimSpace(update.Author.LastName) == "" {
			return &ValidationError{msg: "field author must include both firstName and lastName"}
		}
	}
	return nil
}
