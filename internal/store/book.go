package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookRepository handles persistence for the book catalog.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection("books")}
}

func (r *BookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.Book, error) {
	var book types.Book
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Book{}, ErrNotFound
		}
		return types.Book{}, err
	}
	return book, nil
}

// Search returns books whose name or author contains the given text,
// case-insensitively. An empty search returns the whole catalog.
func (r *BookRepository) Search(ctx context.Context, search string) ([]types.Book, error) {
	filter := bson.M{}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"author": pattern},
		}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var books []types.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepository) Create(ctx context.Context, book types.Book) (types.Book, error) {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, book)
	if err != nil {
		return types.Book{}, wrapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = oid
	}
	return book, nil
}

// Update applies only the fields set in patch. Renaming a book onto an
// existing title trips the unique index and surfaces as ErrDuplicateKey.
func (r *BookRepository) Update(ctx context.Context, id primitive.ObjectID, patch types.BookPatch) (types.Book, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != "" {
		set["name"] = patch.Name
	}
	if patch.Author != "" {
		set["author"] = patch.Author
	}
	if patch.CurrentStatus != "" {
		set["currentStatus"] = patch.CurrentStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book types.Book
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Book{}, ErrNotFound
		}
		return types.Book{}, wrapWriteError(err)
	}
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
