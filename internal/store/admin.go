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

// AdminRepository handles persistence for admin accounts.
type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection("admins")}
}

func (r *AdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.Admin, error) {
	var admin types.Admin
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Admin{}, ErrNotFound
		}
		return types.Admin{}, err
	}
	return admin, nil
}

func (r *AdminRepository) GetByUserName(ctx context.Context, userName string) (types.Admin, error) {
	var admin types.Admin
	if err := r.col.FindOne(ctx, bson.M{"userName": userName}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Admin{}, ErrNotFound
		}
		return types.Admin{}, err
	}
	return admin, nil
}

// Search returns admins whose name or userName contains the given text,
// case-insensitively. An empty search returns every admin.
func (r *AdminRepository) Search(ctx context.Context, search string) ([]types.Admin, error) {
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

	var admins []types.Admin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin types.Admin) (types.Admin, error) {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, admin)
	if err != nil {
		return types.Admin{}, wrapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return admin, nil
}

// Update applies only the fields set in patch. The userName is immutable and
// never part of an update.
func (r *AdminRepository) Update(ctx context.Context, id primitive.ObjectID, patch types.AdminPatch) (types.Admin, error) {
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
	if patch.PasswordHash != "" {
		set["password"] = patch.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var admin types.Admin
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Admin{}, ErrNotFound
		}
		return types.Admin{}, wrapWriteError(err)
	}
	return admin, nil
}

func (r *AdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
