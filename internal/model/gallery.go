package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gallery holds a single attachment plus a flat image list.
type Gallery struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Slug       string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Attachment string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Images     []string           `bson:"images,omitempty" json:"images,omitempty"`
	Status     bool               `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
