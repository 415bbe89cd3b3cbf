package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/postapi/blog/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ domain.PostRepository = (*MongoPostRepository)(nil)

const postsCollection = "posts"

// MongoPostRepository implements domain.PostRepository on a MongoDB collection.
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates a MongoPostRepository over the "posts" collection
// of the given database.
func NewPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{
		collection: db.Collection(postsCollection),
	}
}

// InsertMany assigns each input an id and creation timestamp and persists the
// batch. The returned posts are in input order.
func (r *MongoPostRepository) InsertMany(ctx context.Context, inputs []domain.PostInput) ([]*domain.Post, error) {
	if len(inputs) == 0 {
		return []*domain.Post{}, nil
	}

	// BSON datetimes carry millisecond precision; truncate up front so the
	// returned posts match what a later read produces.
	now := time.Now().UTC().Truncate(time.Millisecond)

	docs := make([]any, 0, len(inputs))
	posts := make([]*domain.Post, 0, len(inputs))
	for _, in := range inputs {
		doc := postDoc{
			ID:      primitive.NewObjectID(),
			Title:   in.Title,
			Content: in.Content,
			Author: authorDoc{
				FirstName: in.Author.FirstName,
				LastName:  in.Author.LastName,
			},
			Created: now,
		}
		docs = append(docs, doc)
		posts = append(posts, doc.toDomain())
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert posts: %w", err)
	}

	return posts, nil
}

// FindAll retrieves every stored post. Ordering is whatever the collection
// yields; callers must not rely on it.
func (r *MongoPostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}

	return posts, nil
}

// FindByID retrieves a single post. A malformed id cannot match any stored
// post and is reported as not found, not as an error: ids are opaque to
// callers.
func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return doc.toDomain(), nil
}

// UpdateByID applies the provided fields to the matching post. The _id and
// created fields are never part of the update document.
func (r *MongoPostRepository) UpdateByID(ctx context.Context, id string, update domain.PostUpdate) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.Author != nil {
		set["author"] = authorDoc{
			FirstName: update.Author.FirstName,
			LastName:  update.Author.LastName,
		}
	}
	if len(set) == 0 {
		// Nothing to apply; still report whether the post exists so callers
		// get correct matched semantics.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return false, fmt.Errorf("failed to check post existence: %w", err)
		}
		return count > 0, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// DeleteByID removes the matching post. Deletion is permanent; there is no
// soft-delete.
func (r *MongoPostRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// postDoc is the BSON shape of a stored post.
type postDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Author  authorDoc          `bson:"author"`
	Created time.Time          `bson:"created"`
}

type authorDoc struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

// toDomain converts a stored document to the domain model.
func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:      d.ID.Hex(),
		Title:   d.Title,
		Content: d.Content,
		Author: domain.Author{
			FirstName: d.Author.FirstName,
			LastName:  d.Author.LastName,
		},
		Created: d.Created.UTC(),
	}
}
