package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookStatusInStock is the status assigned to newly added books.
const BookStatusInStock = "IN_STOCK"

// Book represents a title in the library catalog.
type Book struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Name is the unique title of the book.
	Name string `json:"name" bson:"name"`

	Author string `json:"author" bson:"author"`

	// CurrentStatus is a free-form availability marker, IN_STOCK by default.
	CurrentStatus string `json:"currentStatus" bson:"currentStatus"`

	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// BookPatch carries the optional fields of a partial book update.
type BookPatch struct {
	Name          string
	Author        string
	CurrentStatus string
}
