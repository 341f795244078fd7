package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"cmsapi/internal/apperr"
	"cmsapi/internal/config"
	"cmsapi/internal/files"
	"cmsapi/internal/model"
	"cmsapi/internal/query"
	"cmsapi/internal/repository"
)

// UserService defines the account management use cases. Credential changes
// are owned by AuthService, not here.
type UserService interface {
	Create(ctx context.Context, doc map[string]any) (*model.User, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.User, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type userService struct {
	resource[model.User]
	cfg config.AuthConfig
}

func NewUserService(repo *repository.Records[model.User], fs *files.Service, resolver *files.Resolver, cfg config.AuthConfig, log *logrus.Logger) UserService {
	return &userService{
		resource: resource[model.User]{
			repo:     repo,
			files:    fs,
			resolver: resolver,
			refs:     files.FieldSet{Scalars: []string{"profile_image"}},
			urls:     []string{"profile_image"},
			search:   []string{"name", "email", "username"},
			log:      log,
		},
		cfg: cfg,
	}
}

func (s *userService) Create(ctx context.Context, doc map[string]any) (*model.User, error) {
	rec, err := decodePayload[model.User](doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(rec,
		validation.Field(&rec.Username, validation.Required),
		validation.Field(&rec.Email, validation.Required, is.Email),
		validation.Field(&rec.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&rec.Name, validation.Required),
	); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	taken, err := s.repo.Exists(ctx, bson.M{
		"$or": bson.A{bson.M{"email": rec.Email}, bson.M{"username": rec.Username}},
	})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindValidation, "email or username already in use")
	}

	hash, err := hashPassword(rec.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	rec.Password = hash
	rec.PreviousPasswords = []model.PasswordEntry{}
	if rec.Role == "" {
		rec.Role = model.RoleUser
	}
	if _, ok := doc["status"]; !ok {
		rec.Status = true
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now

	return s.insert(ctx, rec)
}

func (s *userService) List(ctx context.Context, opts query.Options) (*query.Result[model.User], error) {
	return s.list(ctx, opts)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.get(ctx, id)
}

func (s *userService) Update(ctx context.Context, id string, patch map[string]any) (*model.User, error) {
	// Credential fields only change through the rotation transaction.
	delete(patch, "password")
	delete(patch, "previousPasswords")
	return s.update(ctx, id, patch)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *userService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}
