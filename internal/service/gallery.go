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

// GalleryService defines the gallery use cases.
type GalleryService interface {
	Create(ctx context.Context, doc map[string]any) (*model.Gallery, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.Gallery], error)
	Get(ctx context.Context, id string) (*model.Gallery, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Gallery, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type galleryService struct {
	resource[model.Gallery]
}

func NewGalleryService(repo *repository.Records[model.Gallery], fs *files.Service, resolver *files.Resolver, log *logrus.Logger) GalleryService {
	return &galleryService{resource[model.Gallery]{
		repo:     repo,
		files:    fs,
		resolver: resolver,
		refs:     files.FieldSet{Scalars: []string{"attachment"}, Sequences: []string{"images"}},
		urls:     []string{"attachment", "images"},
		search:   []string{"name"},
		log:      log,
	}}
}

func (s *galleryService) Create(ctx context.Context, doc map[string]any) (*model.Gallery, error) {
	rec, err := decodePayload[model.Gallery](doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(rec,
		validation.Field(&rec.Name, validation.Required),
	); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}
	if rec.Slug, err = uniqueSlug(ctx, s.repo, rec.Name, nil); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return s.insert(ctx, rec)
}

func (s *galleryService) List(ctx context.Context, opts query.Options) (*query.Result[model.Gallery], error) {
	return s.list(ctx, opts)
}

func (s *galleryService) Get(ctx context.Context, id string) (*model.Gallery, error) {
	return s.get(ctx, id)
}

func (s *galleryService) Update(ctx context.Context, id string, patch map[string]any) (*model.Gallery, error) {
	return s.update(ctx, id, patch)
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *galleryService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}
