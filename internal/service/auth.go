package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cmsapi/internal/apperr"
	"cmsapi/internal/config"
	"cmsapi/internal/model"
	"cmsapi/internal/repository"
)

// rotateTimeout bounds the whole credential rotation transaction, including
// the driver's internal retries of transient commit errors.
const rotateTimeout = 15 * time.Second

// LoginResult is the service-level DTO for a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Login verifies credentials against the account matching the identifier
	// (email or username) and issues a signed access token.
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)

	// ChangePassword rotates the account's credential atomically: the current
	// password is verified, the new one is checked against the retained
	// history, the oldest history entry is evicted at capacity, and the new
	// hash is persisted together with its history entry in one transaction.
	ChangePassword(ctx context.Context, userID, current, next string) error
}

type authService struct {
	client *mongo.Client
	users  *mongo.Collection
	cfg    config.AuthConfig
	log    *logrus.Logger
}

// NewAuthService constructs an AuthService over the users collection. The
// client is needed to open sessions for the rotation transaction.
func NewAuthService(client *mongo.Client, users *mongo.Collection, cfg config.AuthConfig, log *logrus.Logger) AuthService {
	return &authService{client: client, users: users, cfg: cfg, log: log}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	var user model.User
	err := s.users.FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": identifier}, bson.M{"username": identifier}},
	}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindAuthMismatch, "invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !user.Status {
		return nil, apperr.New(apperr.KindPolicyViolation, "account is inactive")
	}
	if !passwordMatches(password, user.Password) {
		return nil, apperr.New(apperr.KindAuthMismatch, "invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) ChangePassword(ctx context.Context, userID, current, next string) error {
	id, err := repository.ParseID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, rotateTimeout)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return apperr.Wrap(apperr.KindTransactionAborted, "start session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, rotateCredential(sc, &mongoCredentialStore{users: s.users}, id, current, next, s.cfg.BcryptCost)
	})
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	s.log.WithError(err).Error("password rotation aborted")
	return apperr.Wrap(apperr.KindTransactionAborted, "password rotation failed", err)
}

// credentialStore is the persistence surface the rotation needs. The mongo
// implementation runs inside a session context so every call joins the same
// transaction.
type credentialStore interface {
	findUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	evictHistory(ctx context.Context, id primitive.ObjectID, createdAt time.Time) error
	// setPassword persists the new hash and its history entry; it reports
	// whether the account still existed at write time.
	setPassword(ctx context.Context, id primitive.ObjectID, hash string, entry model.PasswordEntry) (bool, error)
}

// rotateCredential runs the rotation state machine over store: verify the
// current password, reject a new password equal to the current one or present
// in the retained history, evict the oldest history entry at capacity, then
// persist the new hash together with its history entry.
func rotateCredential(ctx context.Context, store credentialStore, id primitive.ObjectID, current, next string, cost int) error {
	user, err := store.findUser(ctx, id)
	if err != nil {
		return err
	}

	if !passwordMatches(current, user.Password) {
		return apperr.New(apperr.KindAuthMismatch, "current password is incorrect")
	}
	if passwordMatches(next, user.Password) {
		return apperr.New(apperr.KindPolicyViolation, "new password must differ from the current password")
	}
	if isPasswordReused(next, user.PreviousPasswords) {
		return apperr.New(apperr.KindPolicyViolation, "new password was used recently")
	}

	hash, err := hashPassword(next, cost)
	if err != nil {
		return err
	}

	if len(user.PreviousPasswords) >= model.MaxPasswordHistory {
		oldest := oldestPasswordEntry(user.PreviousPasswords)
		if err := store.evictHistory(ctx, id, oldest.CreatedAt); err != nil {
			return err
		}
	}

	matched, err := store.setPassword(ctx, id, hash, model.PasswordEntry{
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !matched {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	return nil
}

type mongoCredentialStore struct {
	users *mongo.Collection
}

func (m *mongoCredentialStore) findUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *mongoCredentialStore) evictHistory(ctx context.Context, id primitive.ObjectID, createdAt time.Time) error {
	_, err := m.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"previousPasswords": bson.M{"createdAt": createdAt}},
	})
	return err
}

func (m *mongoCredentialStore) setPassword(ctx context.Context, id primitive.ObjectID, hash string, entry model.PasswordEntry) (bool, error) {
	res, err := m.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"password": hash, "updatedAt": time.Now().UTC()},
		"$push": bson.M{"previousPasswords": entry},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
