package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterShapes(t *testing.T) {
	filter := BuildFilter(bson.M{"status": true}, Options{
		Filters: map[string]any{
			"name":        "ali",
			"publishedAt": Range{From: "2024-01-01", To: "2024-12-31"},
			"role":        []string{"admin", "user"},
			"home_slider": true,
		},
	})

	assert.Equal(t, true, filter["status"])
	assert.Equal(t, primitive.Regex{Pattern: "ali", Options: "i"}, filter["name"])
	assert.Equal(t, bson.M{"$gte": "2024-01-01", "$lte": "2024-12-31"}, filter["publishedAt"])
	assert.Equal(t, bson.M{"$in": []string{"admin", "user"}}, filter["role"])
	// Unrecognized shapes pass through as literal equality.
	assert.Equal(t, true, filter["home_slider"])
}

func TestBuildFilterOpenRange(t *testing.T) {
	filter := BuildFilter(nil, Options{
		Filters: map[string]any{"createdAt": Range{From: "2024-06-01"}},
	})
	assert.Equal(t, bson.M{"$gte": "2024-06-01"}, filter["createdAt"])
}

func TestBuildFilterSearch(t *testing.T) {
	filter := BuildFilter(nil, Options{
		SearchText:   "needle",
		SearchFields: []string{"name", "content"},
	})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: "needle", Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"content": primitive.Regex{Pattern: "needle", Options: "i"}}, or[1])
}

func TestBuildFilterSearchWithoutFieldsIsNoop(t *testing.T) {
	filter := BuildFilter(nil, Options{SearchText: "needle"})
	_, ok := filter["$or"]
	assert.False(t, ok)
}

func TestClampPage(t *testing.T) {
	// Zero values from an unpaged request fall back to the first page.
	page, limit, skip := clampPage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, limit)
	assert.Equal(t, int64(0), skip)

	page, limit, skip = clampPage(-3, -10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, limit)
	assert.Equal(t, int64(0), skip)

	page, limit, skip = clampPage(2, 5)
	assert.Equal(t, 2, page)
	assert.Equal(t, 5, limit)
	assert.Equal(t, int64(5), skip)

	_, _, skip = clampPage(4, 25)
	assert.Equal(t, int64(75), skip)
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(3, 10, 25)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(25), meta.TotalCount)
	assert.Equal(t, int64(3), meta.TotalPages)

	assert.Equal(t, int64(0), NewMeta(1, 10, 0).TotalPages)
	assert.Equal(t, int64(1), NewMeta(1, 10, 10).TotalPages)
	assert.Equal(t, int64(2), NewMeta(1, 10, 11).TotalPages)
}

func TestSortDoc(t *testing.T) {
	// Default: newest-first by creation time, _id desc tie-break.
	doc := sortDoc(Sort{})
	require.Len(t, doc, 2)
	assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, doc[0])
	assert.Equal(t, bson.E{Key: "_id", Value: -1}, doc[1])

	doc = sortDoc(Sort{Field: "name", Order: "asc"})
	assert.Equal(t, bson.E{Key: "name", Value: 1}, doc[0])

	// No duplicate key when sorting by _id itself.
	doc = sortDoc(Sort{Field: "_id", Order: "desc"})
	require.Len(t, doc, 1)
}
