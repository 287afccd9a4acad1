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

// UserRepository handles persistence for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	var user types.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Search returns users whose name or userName contains the given text,
// case-insensitively. An empty search returns every user.
func (r *UserRepository) Search(ctx context.Context, search string) ([]types.User, error) {
	filter := bson.M{}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"userName": pattern},
		}
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var users []types.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return types.User{}, wrapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

// Update applies only the fields set in patch and returns the document as
// stored after the update.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, patch types.UserPatch) (types.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != "" {
		set["name"] = patch.Name
	}
	if patch.ContactNo != "" {
		set["contactNo"] = patch.ContactNo
	}
	if patch.EmailId != "" {
		set["emailId"] = patch.EmailId
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user types.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, wrapWriteError(err)
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
