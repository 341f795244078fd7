package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cmsapi/internal/model"
)

func TestDecodeArtists(t *testing.T) {
	retained := primitive.NewObjectID()

	artists, err := decodeArtists([]any{
		map[string]any{"_id": retained.Hex(), "name": "Retained", "image": "uploads/a.jpg"},
		map[string]any{"name": "New", "image": "uploads/b.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, artists, 2)

	assert.Equal(t, retained, artists[0].ID)
	assert.True(t, artists[1].ID.IsZero())

	assignArtistIDs(artists)
	assert.Equal(t, retained, artists[0].ID)
	assert.False(t, artists[1].ID.IsZero())
}

func TestDecodeArtistsRejectsMalformed(t *testing.T) {
	_, err := decodeArtists([]any{
		map[string]any{"_id": "not-a-hex-id"},
	})
	assert.Error(t, err)
}

func TestMediaDenormalize(t *testing.T) {
	svc := &mediaService{}

	rec := &model.Media{Artists: []model.Artist{
		{Name: "Lead", Flag: "uploads/flag.png", Country: "NO"},
		{Name: "Second", Flag: "uploads/other.png"},
	}}
	svc.denormalize(rec)

	assert.Equal(t, "uploads/flag.png", rec.Flag)
	assert.Equal(t, "NO", rec.Click)

	// Explicit click survives
	rec2 := &model.Media{Click: "set", Artists: []model.Artist{{Flag: "f"}}}
	svc.denormalize(rec2)
	assert.Equal(t, "set", rec2.Click)

	// No artists leaves the record alone
	rec3 := &model.Media{}
	svc.denormalize(rec3)
	assert.Empty(t, rec3.Flag)
}
