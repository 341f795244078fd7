package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the authorization role assigned to a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// PasswordEntry is one retained previous password hash.
// The history is capped; the oldest entry is evicted on overflow.
type PasswordEntry struct {
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// MaxPasswordHistory is the number of previous password hashes retained
// per user to enforce the non-reuse policy.
const MaxPasswordHistory = 2

// User is an account record. Password and history are never serialized
// to API responses.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	Name              string             `bson:"name" json:"name"`
	ProfileImage      string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber       string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Role              Role               `bson:"role" json:"role"`
	PreviousPasswords []PasswordEntry    `bson:"previousPasswords" json:"-"`
	Status            bool               `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
