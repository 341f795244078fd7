package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cmsapi/internal/model"
)

func TestNormalizeNumericKeysOrdered(t *testing.T) {
	// Arrival order must not matter: keys sort numerically, not lexically.
	in := map[string]any{
		"1":  Field{Value: "b"},
		"0":  Field{Value: "a"},
		"10": Field{Value: "k"},
		"2":  Field{Value: "c"},
	}
	out := Normalize(in)
	assert.Equal(t, []any{"a", "b", "c", "k"}, out)
}

func TestNormalizeMixedKeysStayMapping(t *testing.T) {
	// All keys must be numeric for a level to qualify as a sequence;
	// majority rule is not applied.
	in := map[string]any{
		"0":    Field{Value: "a"},
		"name": Field{Value: "x"},
	}
	out, ok := Normalize(in).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", out["0"])
	assert.Equal(t, "x", out["name"])
}

func TestNormalizeNested(t *testing.T) {
	in := map[string]any{
		"name": Field{Value: "gallery one"},
		"artists": map[string]any{
			"1": map[string]any{"name": Field{Value: "second"}},
			"0": map[string]any{"name": Field{Value: "first"}},
		},
	}
	out := Normalize(in).(map[string]any)
	artists := out["artists"].([]any)
	require.Len(t, artists, 2)
	assert.Equal(t, "first", artists[0].(map[string]any)["name"])
	assert.Equal(t, "second", artists[1].(map[string]any)["name"])
}

func TestNormalizeEmptyMapping(t *testing.T) {
	out := Normalize(map[string]any{})
	assert.Equal(t, map[string]any{}, out)
}

func TestNormalizeNegativeKeyStaysMapping(t *testing.T) {
	in := map[string]any{"-1": Field{Value: "a"}, "0": Field{Value: "b"}}
	_, isMap := Normalize(in).(map[string]any)
	assert.True(t, isMap)
}

func TestFromValues(t *testing.T) {
	values := map[string][]string{
		"name":             {"media one"},
		"artists[0][name]": {"alpha"},
		"artists[1][name]": {"beta"},
		"images":           {"a.jpg", "b.jpg"},
	}
	out := Normalize(FromValues(values)).(map[string]any)

	assert.Equal(t, "media one", out["name"])

	artists := out["artists"].([]any)
	require.Len(t, artists, 2)
	assert.Equal(t, "alpha", artists[0].(map[string]any)["name"])
	assert.Equal(t, "beta", artists[1].(map[string]any)["name"])

	images := out["images"].([]any)
	assert.Equal(t, []any{"a.jpg", "b.jpg"}, images)
}

func TestFromValuesBareArraySyntax(t *testing.T) {
	out := Normalize(FromValues(map[string][]string{"images[]": {"a.jpg"}})).(map[string]any)
	assert.Equal(t, []any{"a.jpg"}, out["images"])
}

func TestDecodeInto(t *testing.T) {
	id := primitive.NewObjectID()
	src := map[string]any{
		"home_slider": "true",
		"image":       "uploads/cover.jpg",
		"artists": []any{
			map[string]any{"_id": id.Hex(), "name": "alpha", "is_default": "false"},
		},
	}

	var m model.Media
	require.NoError(t, DecodeInto(src, &m))

	assert.True(t, m.HomeSlider)
	assert.Equal(t, "uploads/cover.jpg", m.Image)
	require.Len(t, m.Artists, 1)
	assert.Equal(t, id, m.Artists[0].ID)
	assert.False(t, m.Artists[0].IsDefault)
}

func TestDecodeIntoEmptyID(t *testing.T) {
	var a model.Artist
	require.NoError(t, DecodeInto(map[string]any{"_id": "", "name": "new"}, &a))
	assert.True(t, a.ID.IsZero())
}

func TestAdd(t *testing.T) {
	t.Run("splices a single value under a nested key", func(t *testing.T) {
		tree := FromValues(map[string][]string{
			"artists[0][name]": {"Lead"},
		})
		Add(tree, "artists[0][image]", "uploads/a.jpg")

		got := Normalize(tree)
		want := map[string]any{
			"artists": []any{
				map[string]any{"name": "Lead", "image": "uploads/a.jpg"},
			},
		}
		assert.Equal(t, want, got)
	})

	t.Run("multiple values become an ordered sequence", func(t *testing.T) {
		tree := map[string]any{}
		Add(tree, "images", "uploads/a.jpg", "uploads/b.jpg")

		got := Normalize(tree)
		assert.Equal(t, map[string]any{
			"images": []any{"uploads/a.jpg", "uploads/b.jpg"},
		}, got)
	})
}
