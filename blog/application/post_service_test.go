package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dfryer1193/postapi/blog/domain"
)

// fakePostRepository is an in-memory domain.PostRepository for unit tests.
type fakePostRepository struct {
	posts  map[string]*domain.Post
	nextID int
	err    error
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{
		posts: make(map[string]*domain.Post),
	}
}

func (f *fakePostRepository) InsertMany(_ context.Context, inputs []domain.PostInput) ([]*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}

	inserted := make([]*domain.Post, 0, len(inputs))
	for _, in := range inputs {
		f.nextID++
		p := &domain.Post{
			ID:      fmt.Sprintf("%024d", f.nextID),
			Title:   in.Title,
			Content: in.Content,
			Author:  in.Author,
			Created: time.Now().UTC().Truncate(time.Millisecond),
		}
		f.posts[p.ID] = p
		inserted = append(inserted, p)
	}
	return inserted, nil
}

func (f *fakePostRepository) FindAll(_ context.Context) ([]*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}

	posts := make([]*domain.Post, 0, len(f.posts))
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (f *fakePostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}

	p, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostRepository) UpdateByID(_ context.Context, id string, update domain.PostUpdate) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	p, ok := f.posts[id]
	if !ok {
		return false, nil
	}

	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	if update.Author != nil {
		p.Author = *update.Author
	}
	return true, nil
}

func (f *fakePostRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func validInput() domain.PostInput {
	return domain.PostInput{
		Title:   "Sushi",
		Content: "Ahi, sake",
		Author: domain.Author{
			FirstName: "Fish",
			LastName:  "Lover",
		},
	}
}

func TestCreatePost_AssignsIDAndCreated(t *testing.T) {
	svc := NewPostService(newFakePostRepository())

	post, err := svc.CreatePost(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if post.ID == "" {
		t.Error("ID not assigned")
	}
	if post.Created.IsZero() {
		t.Error("Created not assigned")
	}
	if post.Title != "Sushi" {
		t.Errorf("Title = %v, want %v", post.Title, "Sushi")
	}
	if post.Content != "Ahi, sake" {
		t.Errorf("Content = %v, want %v", post.Content, "Ahi, sake")
	}
	if post.Author.FirstName != "Fish" || post.Author.LastName != "Lover" {
		t.Errorf("Author = %+v, want Fish Lover", post.Author)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PostInput)
		wantErr string
	}{
		{
			name:    "Missing title",
			mutate:  func(in *domain.PostInput) { in.Title = "" },
			wantErr: "missing required field: title",
		},
		{
			name:    "Whitespace title",
			mutate:  func(in *domain.PostInput) { in.Title = "   " },
			wantErr: "missing required field: title",
		},
		{
			name:    "Missing content",
			mutate:  func(in *domain.PostInput) { in.Content = "" },
			wantErr: "missing required field: content",
		},
		{
			name:    "Missing author",
			mutate:  func(in *domain.PostInput) { in.Author = domain.Author{} },
			wantErr: "missing required field: author",
		},
		{
			name:    "Missing author first name",
			mutate:  func(in *domain.PostInput) { in.Author.FirstName = "" },
			wantErr: "missing required field: author.firstName",
		},
		{
			name:    "Missing author last name",
			mutate:  func(in *domain.PostInput) { in.Author.LastName = "" },
			wantErr: "missing required field: author.lastName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePostRepository()
			svc := NewPostService(repo)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreatePost(context.Background(), in)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("CreatePost error = %v, want ValidationError", err)
			}
			if validationErr.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", validationErr.Error(), tt.wantErr)
			}
			if len(repo.posts) != 0 {
				t.Error("invalid input reached the store")
			}
		})
	}
}

func TestCreatePosts_RejectsWholeBatchOnInvalidInput(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)

	bad := validInput()
	bad.Title = ""

	_, err := svc.CreatePosts(context.Background(), []domain.PostInput{validInput(), bad})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("CreatePosts error = %v, want ValidationError", err)
	}
	if len(repo.posts) != 0 {
		t.Errorf("stored %d posts, want 0", len(repo.posts))
	}
}

func TestUpdatePost_Validation(t *testing.T) {
	title := "New Title"
	empty := "   "

	tests := []struct {
		name    string
		update  domain.PostUpdate
		wantErr string
	}{
		{
			name:    "No fields",
			update:  domain.PostUpdate{},
			wantErr: "no fields to update",
		},
		{
			name:    "Empty title",
			update:  domain.PostUpdate{Title: &empty},
			wantErr: "field title must not be empty",
		},
		{
			name:    "Empty content",
			update:  domain.PostUpdate{Content: &empty},
			wantErr: "field content must not be empty",
		},
		{
			name:    "Partial author",
			update:  domain.PostUpdate{Author: &domain.Author{FirstName: "Fish"}},
			wantErr: "field author must include both firstName and lastName",
		},
		{
			name:    "Title only is fine",
			update:  domain.PostUpdate{Title: &title},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePostRepository()
			svc := NewPostService(repo)

			created, err := svc.CreatePost(context.Background(), validInput())
			if err != nil {
				t.Fatalf("CreatePost failed: %v", err)
			}

			err = svc.UpdatePost(context.Background(), created.ID, tt.update)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("UpdatePost failed: %v", err)
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("UpdatePost error = %v, want ValidationError", err)
			}
			if validationErr.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", validationErr.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdatePost_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)

	created, err := svc.CreatePost(context.Background(), domain.PostInput{
		Title:   "Old Title",
		Content: "X",
		Author:  domain.Author{FirstName: "Fish", LastName: "Lover"},
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	title := "New Title"
	if err := svc.UpdatePost(context.Background(), created.ID, domain.PostUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	updated, err := svc.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}

	if updated.Title != "New Title" {
		t.Errorf("Title = %v, want %v", updated.Title, "New Title")
	}
	if updated.Content != "X" {
		t.Errorf("Content = %v, want unchanged %v", updated.Content, "X")
	}
	if !updated.Created.Equal(created.Created) {
		t.Errorf("Created changed: %v -> %v", created.Created, updated.Created)
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	svc := NewPostService(newFakePostRepository())

	title := "New Title"
	err := svc.UpdatePost(context.Background(), "missing", domain.PostUpdate{Title: &title})
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("UpdatePost error = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePost_Idempotent(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewPostService(repo)

	created, err := svc.CreatePost(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := svc.DeletePost(context.Background(), created.ID); err != nil {
		t.Fatalf("first DeletePost failed: %v", err)
	}
	if err := svc.DeletePost(context.Background(), created.ID); err != nil {
		t.Fatalf("second DeletePost failed: %v", err)
	}

	if _, err := svc.GetPost(context.Background(), created.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("GetPost after delete error = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePost_StorageErrorPropagates(t *testing.T) {
	repo := newFakePostRepository()
	repo.err = errors.New("connection reset")
	svc := NewPostService(repo)

	if err := svc.DeletePost(context.Background(), "any"); err == nil {
		t.Error("DeletePost on failing store returned nil error")
	}
}
