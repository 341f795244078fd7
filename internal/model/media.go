package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Artist is an identifiable sub-record inside a media record's artist list.
// Sub-records are diffed by ID across updates.
type Artist struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Profession string             `bson:"profession,omitempty" json:"profession,omitempty"`
	Facebook   string             `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram  string             `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Website    string             `bson:"website,omitempty" json:"website,omitempty"`
	Country    string             `bson:"country,omitempty" json:"country,omitempty"`
	Flag       string             `bson:"flag,omitempty" json:"flag,omitempty"`
	IsDefault  bool               `bson:"is_default" json:"is_default"`
}

// Media is a media record with artist sub-records.
// Click, Flag and Slug are denormalized from the first artist on save.
type Media struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Artists    []Artist           `bson:"artists" json:"artists"`
	Image      string             `bson:"image" json:"image"`
	Slug       string             `bson:"slug,omitempty" json:"slug,omitempty"`
	HomeSlider bool               `bson:"home_slider" json:"home_slider"`
	Click      string             `bson:"click,omitempty" json:"click,omitempty"`
	Flag       string             `bson:"flag,omitempty" json:"flag,omitempty"`
	Status     bool               `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
