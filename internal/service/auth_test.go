package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"cmsapi/internal/apperr"
	"cmsapi/internal/model"
)

// fakeCredentialStore records the writes the rotation issues so tests can
// assert on ordering and payloads without a live transaction.
type fakeCredentialStore struct {
	user    *model.User
	findErr error
	missing bool // setPassword reports the account gone

	evictions []time.Time
	pushed    []model.PasswordEntry
	setHash   string
}

func (f *fakeCredentialStore) findUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeCredentialStore) evictHistory(ctx context.Context, id primitive.ObjectID, createdAt time.Time) error {
	f.evictions = append(f.evictions, createdAt)
	return nil
}

func (f *fakeCredentialStore) setPassword(ctx context.Context, id primitive.ObjectID, hash string, entry model.PasswordEntry) (bool, error) {
	f.setHash = hash
	f.pushed = append(f.pushed, entry)
	return !f.missing, nil
}

func rotationUser(t *testing.T, current string, history ...model.PasswordEntry) *model.User {
	t.Helper()
	return &model.User{
		ID:                primitive.NewObjectID(),
		Password:          mustHash(t, current),
		PreviousPasswords: history,
		Status:            true,
	}
}

func TestRotateCredentialUnknownUser(t *testing.T) {
	store := &fakeCredentialStore{findErr: apperr.New(apperr.KindNotFound, "user not found")}

	err := rotateCredential(context.Background(), store, primitive.NewObjectID(), "current", "next", bcrypt.MinCost)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.evictions)
	assert.Empty(t, store.pushed)
}

func TestRotateCredentialWrongCurrentPassword(t *testing.T) {
	// The new password here is also a retained one; the mismatch on the
	// current password must be reported first.
	user := rotationUser(t, "current",
		model.PasswordEntry{Password: mustHash(t, "reused"), CreatedAt: time.Now()},
	)
	store := &fakeCredentialStore{user: user}

	err := rotateCredential(context.Background(), store, user.ID, "wrong", "reused", bcrypt.MinCost)

	assert.Equal(t, apperr.KindAuthMismatch, apperr.KindOf(err))
	assert.Empty(t, store.pushed)
}

func TestRotateCredentialSameAsCurrent(t *testing.T) {
	user := rotationUser(t, "current")
	store := &fakeCredentialStore{user: user}

	err := rotateCredential(context.Background(), store, user.ID, "current", "current", bcrypt.MinCost)

	assert.Equal(t, apperr.KindPolicyViolation, apperr.KindOf(err))
	assert.ErrorContains(t, err, "must differ")
	assert.Empty(t, store.pushed)
}

func TestRotateCredentialReusedFromHistory(t *testing.T) {
	user := rotationUser(t, "current",
		model.PasswordEntry{Password: mustHash(t, "older"), CreatedAt: time.Now().Add(-48 * time.Hour)},
		model.PasswordEntry{Password: mustHash(t, "newer"), CreatedAt: time.Now().Add(-24 * time.Hour)},
	)
	store := &fakeCredentialStore{user: user}

	err := rotateCredential(context.Background(), store, user.ID, "current", "older", bcrypt.MinCost)

	assert.Equal(t, apperr.KindPolicyViolation, apperr.KindOf(err))
	assert.ErrorContains(t, err, "used recently")
	assert.Empty(t, store.evictions)
	assert.Empty(t, store.pushed)
}

func TestRotateCredentialSuccessUnderCap(t *testing.T) {
	user := rotationUser(t, "current",
		model.PasswordEntry{Password: mustHash(t, "older"), CreatedAt: time.Now().Add(-24 * time.Hour)},
	)
	store := &fakeCredentialStore{user: user}

	err := rotateCredential(context.Background(), store, user.ID, "current", "brand-new", bcrypt.MinCost)

	require.NoError(t, err)
	assert.Empty(t, store.evictions)
	require.Len(t, store.pushed, 1)
	assert.True(t, passwordMatches("brand-new", store.setHash))
	// The history entry retains the hash that was just persisted.
	assert.Equal(t, store.setHash, store.pushed[0].Password)
}

func TestRotateCredentialEvictsOldestAtCap(t *testing.T) {
	oldestAt := time.Now().Add(-72 * time.Hour).UTC()
	user := rotationUser(t, "current",
		model.PasswordEntry{Password: mustHash(t, "newer"), CreatedAt: time.Now().Add(-24 * time.Hour)},
		model.PasswordEntry{Password: mustHash(t, "older"), CreatedAt: oldestAt},
	)
	store := &fakeCredentialStore{user: user}

	err := rotateCredential(context.Background(), store, user.ID, "current", "brand-new", bcrypt.MinCost)

	require.NoError(t, err)
	require.Len(t, store.evictions, 1)
	assert.Equal(t, oldestAt, store.evictions[0])
	require.Len(t, store.pushed, 1)
	assert.True(t, passwordMatches("brand-new", store.setHash))
}

func TestRotateCredentialUserVanishedBeforeWrite(t *testing.T) {
	store := &fakeCredentialStore{user: rotationUser(t, "current"), missing: true}

	err := rotateCredential(context.Background(), store, primitive.NewObjectID(), "current", "brand-new", bcrypt.MinCost)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
