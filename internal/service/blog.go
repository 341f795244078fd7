package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/model"
	"cmsapi/internal/query"
	"cmsapi/internal/repository"
)

// BlogService defines the article use cases.
type BlogService interface {
	Create(ctx context.Context, doc map[string]any) (*model.Blog, error)
	CreateMany(ctx context.Context, docs []map[string]any) (int, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.Blog], error)
	Get(ctx context.Context, id string) (*model.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type blogService struct {
	resource[model.Blog]
}

func NewBlogService(repo *repository.Records[model.Blog], fs *files.Service, resolver *files.Resolver, log *logrus.Logger) BlogService {
	return &blogService{resource[model.Blog]{
		repo:     repo,
		files:    fs,
		resolver: resolver,
		refs:     files.FieldSet{Scalars: []string{"attachment"}, Sequences: []string{"images"}},
		urls:     []string{"attachment", "images"},
		search:   []string{"name", "shortDescription", "content"},
		log:      log,
	}}
}

// prepare decodes and validates one submitted article. taken carries the
// slugs already claimed by earlier articles of the same batch.
func (s *blogService) prepare(ctx context.Context, doc map[string]any, taken map[string]bool) (*model.Blog, error) {
	rec, err := decodePayload[model.Blog](doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(rec,
		validation.Field(&rec.Name, validation.Required),
		validation.Field(&rec.ShortDescription, validation.Required),
		validation.Field(&rec.Content, validation.Required),
	); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}
	if rec.Slug, err = uniqueSlug(ctx, s.repo, rec.Name, taken); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return rec, nil
}

func (s *blogService) Create(ctx context.Context, doc map[string]any) (*model.Blog, error) {
	rec, err := s.prepare(ctx, doc, nil)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, rec)
}

func (s *blogService) CreateMany(ctx context.Context, docs []map[string]any) (int, error) {
	recs := make([]any, 0, len(docs))
	assigned := make(map[string]bool, len(docs))
	for _, doc := range docs {
		rec, err := s.prepare(ctx, doc, assigned)
		if err != nil {
			return 0, err
		}
		assigned[rec.Slug] = true
		recs = append(recs, rec)
	}
	return s.repo.InsertMany(ctx, recs)
}

func (s *blogService) List(ctx context.Context, opts query.Options) (*query.Result[model.Blog], error) {
	return s.list(ctx, opts)
}

func (s *blogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return s.get(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return s.getBy(ctx, bson.M{"slug": slug})
}

func (s *blogService) Update(ctx context.Context, id string, patch map[string]any) (*model.Blog, error) {
	return s.update(ctx, id, patch)
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *blogService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}
