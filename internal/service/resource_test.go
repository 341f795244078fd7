package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"cmsapi/internal/model"
)

func TestSanitizePatch(t *testing.T) {
	in := bson.M{
		"_id":       "abc",
		"createdAt": "2024-01-01",
		"updatedAt": "2024-01-01",
		"name":      "kept",
		"empty":     nil,
		"status":    false,
	}

	out := sanitizePatch(in)

	assert.Equal(t, bson.M{"name": "kept", "status": false}, out)
}

func TestTypedSetCoercesFormValues(t *testing.T) {
	// Form values arrive as strings; the persisted patch must carry the
	// model's field types or the stored record stops decoding.
	r := &resource[model.Gallery]{}

	set, err := r.typedSet(bson.M{"name": "Summer", "status": "false"})
	require.NoError(t, err)

	assert.Equal(t, "Summer", set["name"])
	assert.Equal(t, false, set["status"])
}

func TestTypedSetPatchDecodesBackIntoModel(t *testing.T) {
	r := &resource[model.Media]{}

	set, err := r.typedSet(bson.M{"home_slider": "true", "status": "false", "click": "120"})
	require.NoError(t, err)
	assert.Equal(t, true, set["home_slider"])
	assert.Equal(t, false, set["status"])

	raw, err := bson.Marshal(set)
	require.NoError(t, err)
	var rec model.Media
	require.NoError(t, bson.Unmarshal(raw, &rec))
	assert.True(t, rec.HomeSlider)
	assert.False(t, rec.Status)
	assert.Equal(t, "120", rec.Click)
}

func TestTypedSetKeepsUndeclaredFields(t *testing.T) {
	r := &resource[model.Gallery]{}

	set, err := r.typedSet(bson.M{"status": "true", "legacy": "kept"})
	require.NoError(t, err)

	assert.Equal(t, true, set["status"])
	// Fields the model does not declare pass through as submitted.
	assert.Equal(t, "kept", set["legacy"])
}

func TestTypedSetRejectsUndecodableValue(t *testing.T) {
	r := &resource[model.Gallery]{}

	_, err := r.typedSet(bson.M{"status": "not-a-bool"})
	require.Error(t, err)
}

func TestNextSlugSkipsPersistedSlugs(t *testing.T) {
	exists := func(_ context.Context, candidate string) (bool, error) {
		return candidate == "my-post", nil
	}

	got, err := nextSlug(context.Background(), "My Post", nil, exists)
	require.NoError(t, err)
	assert.Equal(t, "my-post-2", got)
}

func TestNextSlugSkipsSlugsClaimedInBatch(t *testing.T) {
	exists := func(_ context.Context, candidate string) (bool, error) {
		return candidate == "my-post", nil
	}
	taken := map[string]bool{"my-post-2": true}

	got, err := nextSlug(context.Background(), "My Post", taken, exists)
	require.NoError(t, err)
	assert.Equal(t, "my-post-3", got)
}

func TestNextSlugBatchOfIdenticalNames(t *testing.T) {
	exists := func(context.Context, string) (bool, error) { return false, nil }
	assigned := map[string]bool{}

	var got []string
	for i := 0; i < 3; i++ {
		s, err := nextSlug(context.Background(), "Same Name", assigned, exists)
		require.NoError(t, err)
		assigned[s] = true
		got = append(got, s)
	}

	assert.Equal(t, []string{"same-name", "same-name-2", "same-name-3"}, got)
}
