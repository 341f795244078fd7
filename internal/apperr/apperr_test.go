package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindNotFound, "gallery not found")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindValidation))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad input", MessageOf(New(KindValidation, "bad input")))
	assert.Equal(t, "something went wrong", MessageOf(errors.New("internal detail")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindStorage, "store attachment", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STORAGE_FAILURE")
}
