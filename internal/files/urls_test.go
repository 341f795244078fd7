package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cmsapi/internal/model"
)

func TestResolverScalarAndSequence(t *testing.T) {
	r := Resolver{BaseURL: "https://cdn.example.com"}

	g := model.Gallery{
		Attachment: "uploads/cover_123.jpg",
		Images:     []string{"uploads/a_1.jpg", "uploads\\b_2.jpg"},
	}
	r.Resolve(&g, "attachment", "images")

	assert.Equal(t, "https://cdn.example.com/uploads/cover_123.jpg", g.Attachment)
	assert.Equal(t, "https://cdn.example.com/uploads/a_1.jpg", g.Images[0])
	// Backslash-separated references are normalized to forward slashes.
	assert.Equal(t, "https://cdn.example.com/uploads/b_2.jpg", g.Images[1])
}

func TestResolverNestedSubRecords(t *testing.T) {
	r := Resolver{BaseURL: "https://cdn.example.com"}

	m := model.Media{
		Image: "uploads/main_1.jpg",
		Artists: []model.Artist{
			{ID: primitive.NewObjectID(), Image: "uploads/artist_1.jpg"},
			{ID: primitive.NewObjectID()}, // no image: passes through
		},
	}
	r.Resolve(&m, "image", "artists.image", "flag")

	assert.Equal(t, "https://cdn.example.com/uploads/main_1.jpg", m.Image)
	assert.Equal(t, "https://cdn.example.com/uploads/artist_1.jpg", m.Artists[0].Image)
	assert.Empty(t, m.Artists[1].Image)
	assert.Empty(t, m.Flag)
}

func TestResolverSliceOfRecords(t *testing.T) {
	r := Resolver{BaseURL: "http://localhost:8080"}

	list := []model.Magazine{
		{Attachment: "uploads/m1.jpg"},
		{},
		{Attachment: "uploads/m3.jpg"},
	}
	r.Resolve(list, "attachment")

	require.Len(t, list, 3)
	assert.Equal(t, "http://localhost:8080/uploads/m1.jpg", list[0].Attachment)
	assert.Empty(t, list[1].Attachment)
	assert.Equal(t, "http://localhost:8080/uploads/m3.jpg", list[2].Attachment)
}

func TestResolverUnknownFieldIsNoop(t *testing.T) {
	r := Resolver{BaseURL: "http://localhost:8080"}
	g := model.Gallery{Attachment: "uploads/x.jpg"}
	r.Resolve(&g, "no_such_field")
	assert.Equal(t, "uploads/x.jpg", g.Attachment)
}

func TestResolverURL(t *testing.T) {
	r := Resolver{BaseURL: "http://localhost:8080"}
	assert.Equal(t, "http://localhost:8080/uploads/x.jpg", r.URL("uploads\\x.jpg"))
	assert.Empty(t, r.URL(""))
}
