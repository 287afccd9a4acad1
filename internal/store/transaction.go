package store

import (
	"context"
	"errors"
	"time"

	"github.com/libshelf/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionRepository handles persistence for borrow/return transactions
// and runs the join pipeline that enriches them with user and book details.
type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection("libraryTransactions")}
}

// Query filters transactions and joins each one with its user and book
// documents. Transactions whose userId or bookId cannot be resolved are
// dropped from the result.
func (r *TransactionRepository) Query(ctx context.Context, f types.TransactionFilter) ([]types.TransactionDetails, error) {
	cur, err := r.col.Aggregate(ctx, buildTransactionPipeline(f))
	if err != nil {
		return nil, err
	}

	var details []types.TransactionDetails
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// buildTransactionPipeline assembles the aggregation stages: an optional
// exact-match filter, string-to-ObjectID reference conversion, the two
// lookups with their unwinds, and the output projection.
func buildTransactionPipeline(f types.TransactionFilter) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	match := bson.D{}
	if f.ID != nil {
		match = append(match, bson.E{Key: "_id", Value: *f.ID})
	}
	if f.TransactionType != "" {
		match = append(match, bson.E{Key: "transactionType", Value: f.TransactionType})
	}
	if f.BookID != "" {
		match = append(match, bson.E{Key: "bookId", Value: f.BookID})
	}
	if f.UserID != "" {
		match = append(match, bson.E{Key: "userId", Value: f.UserID})
	}
	if f.DueDate != nil {
		match = append(match, bson.E{Key: "dueDate", Value: primitive.NewDateTimeFromTime(*f.DueDate)})
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	// References are stored as strings; convert them explicitly so that a
	// malformed or missing id resolves to null instead of failing the
	// pipeline. The null then finds no lookup match and the bare $unwind
	// drops the transaction, which is the contract: only fully resolvable
	// transactions appear.
	pipeline = append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "userObjectId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$userId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
			{Key: "bookObjectId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$bookId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		bson.D{{Key: "$unwind", Value: "$userDetails"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "books"},
			{Key: "localField", Value: "bookObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "bookDetails"},
		}}},
		bson.D{{Key: "$unwind", Value: "$bookDetails"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "userId", Value: 1},
			{Key: "bookId", Value: 1},
			{Key: "dueDate", Value: 1},
			{Key: "transactionType", Value: 1},
			{Key: "userDetails", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "name", Value: 1},
				{Key: "userName", Value: 1},
				{Key: "contactNo", Value: 1},
				{Key: "emailId", Value: 1},
			}},
			{Key: "bookDetails", Value: bson.D{
				{Key: "_id", Value: 1},
				{Key: "name", Value: 1},
				{Key: "author", Value: 1},
				{Key: "currentStatus", Value: 1},
			}},
		}}},
	)

	return pipeline
}

func (r *TransactionRepository) Create(ctx context.Context, tx types.Transaction) (types.Transaction, error) {
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, tx)
	if err != nil {
		return types.Transaction{}, wrapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		tx.ID = oid
	}
	return tx, nil
}

// Update applies only the fields set in patch and returns the document as
// stored after the update.
func (r *TransactionRepository) Update(ctx context.Context, id primitive.ObjectID, patch types.TransactionPatch) (types.Transaction, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.UserID != "" {
		set["userId"] = patch.UserID
	}
	if patch.BookID != "" {
		set["bookId"] = patch.BookID
	}
	if patch.DueDate != nil {
		set["dueDate"] = primitive.NewDateTimeFromTime(*patch.DueDate)
	}
	if patch.TransactionType != "" {
		set["transactionType"] = patch.TransactionType
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tx types.Transaction
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Transaction{}, ErrNotFound
		}
		return types.Transaction{}, wrapWriteError(err)
	}
	return tx, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
