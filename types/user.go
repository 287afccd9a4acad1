package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a library member who can borrow and return books.
type User struct {
	// ID is the unique identifier of the user.
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Name is the user's full name.
	Name string `json:"name" bson:"name"`

	// UserName is the unique login name chosen for the user.
	// It cannot be changed after creation.
	UserName string `json:"userName" bson:"userName"`

	// ContactNo is the user's ten digit contact number.
	ContactNo string `json:"contactNo" bson:"contactNo"`

	// EmailId is the user's email address.
	EmailId string `json:"emailId" bson:"emailId"`

	// CreatedAt is the timestamp when the user was registered.
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`

	// UpdatedAt is the timestamp of the most recent update to the user.
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// UserPatch carries the optional fields of a partial user update.
// Empty fields are left untouched.
type UserPatch struct {
	Name      string
	ContactNo string
	EmailId   string
}
