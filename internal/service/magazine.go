package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/model"
	"cmsapi/internal/query"
	"cmsapi/internal/repository"
)

// MagazineService defines the magazine issue use cases.
type MagazineService interface {
	Create(ctx context.Context, doc map[string]any) (*model.Magazine, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.Magazine], error)
	Get(ctx context.Context, id string) (*model.Magazine, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Magazine, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type magazineService struct {
	resource[model.Magazine]
}

func NewMagazineService(repo *repository.Records[model.Magazine], fs *files.Service, resolver *files.Resolver, log *logrus.Logger) MagazineService {
	return &magazineService{resource[model.Magazine]{
		repo:     repo,
		files:    fs,
		resolver: resolver,
		refs:     files.FieldSet{Scalars: []string{"attachment"}},
		urls:     []string{"attachment"},
		search:   []string{"name"},
		log:      log,
	}}
}

func (s *magazineService) Create(ctx context.Context, doc map[string]any) (*model.Magazine, error) {
	rec, err := decodePayload[model.Magazine](doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(rec,
		validation.Field(&rec.Name, validation.Required),
		validation.Field(&rec.RedirectLink, validation.Required),
	); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return s.insert(ctx, rec)
}

func (s *magazineService) List(ctx context.Context, opts query.Options) (*query.Result[model.Magazine], error) {
	return s.list(ctx, opts)
}

func (s *magazineService) Get(ctx context.Context, id string) (*model.Magazine, error) {
	return s.get(ctx, id)
}

func (s *magazineService) Update(ctx context.Context, id string, patch map[string]any) (*model.Magazine, error) {
	return s.update(ctx, id, patch)
}

func (s *magazineService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *magazineService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}
