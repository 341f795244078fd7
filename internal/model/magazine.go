package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Magazine is a magazine issue pointing at an external link.
type Magazine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	RedirectLink string             `bson:"redirect_link" json:"redirect_link"`
	IsSpecial    bool               `bson:"is_special" json:"is_special"`
	Attachment   string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Status       bool               `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
