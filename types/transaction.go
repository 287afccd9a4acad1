package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types.
const (
	TransactionBorrowed = "BORROWED"
	TransactionReturned = "RETURNED"
)

// Transaction records a book being borrowed by or returned from a user.
// UserID and BookID are weak references stored as identifier strings; a
// transaction may outlive the user or book it points at.
type Transaction struct {
	// ID is the unique identifier of the transaction.
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// UserID identifies the borrowing user.
	UserID string `json:"userId" bson:"userId"`

	// BookID identifies the borrowed book.
	BookID string `json:"bookId" bson:"bookId"`

	// DueDate is the date the book is due back.
	DueDate time.Time `json:"dueDate" bson:"dueDate"`

	// TransactionType is either BORROWED or RETURNED, BORROWED by default.
	TransactionType string `json:"transactionType" bson:"transactionType"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// TransactionDetails is a transaction enriched with the referenced user and
// book documents. Transactions whose references cannot be resolved never
// appear as TransactionDetails.
type TransactionDetails struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          string             `json:"userId" bson:"userId"`
	BookID          string             `json:"bookId" bson:"bookId"`
	DueDate         time.Time          `json:"dueDate" bson:"dueDate"`
	TransactionType string             `json:"transactionType" bson:"transactionType"`
	UserDetails     User               `json:"userDetails" bson:"userDetails"`
	BookDetails     Book               `json:"bookDetails" bson:"bookDetails"`
}

// TransactionFilter narrows a transaction query. Zero-valued fields are not
// applied; DueDate matches the stored date exactly.
type TransactionFilter struct {
	ID              *primitive.ObjectID
	TransactionType string
	BookID          string
	UserID          string
	DueDate         *time.Time
}

// IsZero reports whether no filter field is set.
func (f TransactionFilter) IsZero() bool {
	return f.ID == nil && f.TransactionType == "" && f.BookID == "" && f.UserID == "" && f.DueDate == nil
}

// TransactionPatch carries the optional fields of a partial transaction update.
type TransactionPatch struct {
	UserID          string
	BookID          string
	DueDate         *time.Time
	TransactionType string
}
