package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents an operator account used only for authentication.
type Admin struct {
	// ID is the unique identifier of the admin.
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Name is the admin's full name.
	Name string `json:"name" bson:"name"`

	// UserName is the unique login name of the admin.
	UserName string `json:"userName" bson:"userName"`

	// ContactNo is the admin's ten digit contact number.
	ContactNo string `json:"contactNo" bson:"contactNo"`

	// EmailId is the admin's email address.
	EmailId string `json:"emailId" bson:"emailId"`

	// Password stores the bcrypt hash of the admin's password.
	// This field is never exposed in API responses.
	Password string `json:"-" bson:"password"`

	// CreatedAt is the timestamp when the admin account was created.
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`

	// UpdatedAt is the timestamp of the most recent update to the admin account.
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// AdminPatch carries the optional fields of a partial admin update.
// PasswordHash must already be hashed; an empty value leaves the stored
// password unchanged.
type AdminPatch struct {
	Name         string
	ContactNo    string
	EmailId      string
	PasswordHash string
}
