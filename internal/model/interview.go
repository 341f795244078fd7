package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview is a published interview article.
type Interview struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                  string             `bson:"name" json:"name"`
	Slug                  string             `bson:"slug" json:"slug"`
	ShortDescription      string             `bson:"shortDescription" json:"shortDescription"`
	Content               string             `bson:"content" json:"content"`
	PublishedAt           string             `bson:"publishedAt" json:"publishedAt"`
	InterviewerName       string             `bson:"interviewerName,omitempty" json:"interviewerName,omitempty"`
	IntervieweeProfession string             `bson:"intervieweeProfession,omitempty" json:"intervieweeProfession,omitempty"`
	Attachment            string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Images                []string           `bson:"images,omitempty" json:"images,omitempty"`
	Status                bool               `bson:"status" json:"status"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}
