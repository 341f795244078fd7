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

// InterviewService defines the interview article use cases.
type InterviewService interface {
	Create(ctx context.Context, doc map[string]any) (*model.Interview, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.Interview], error)
	Get(ctx context.Context, id string) (*model.Interview, error)
	GetBySlug(ctx context.Context, slug string) (*model.Interview, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Interview, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type interviewService struct {
	resource[model.Interview]
}

func NewInterviewService(repo *repository.Records[model.Interview], fs *files.Service, resolver *files.Resolver, log *logrus.Logger) InterviewService {
	return &interviewService{resource[model.Interview]{
		repo:     repo,
		files:    fs,
		resolver: resolver,
		refs:     files.FieldSet{Scalars: []string{"attachment"}, Sequences: []string{"images"}},
		urls:     []string{"attachment", "images"},
		search:   []string{"name", "interviewerName", "shortDescription"},
		log:      log,
	}}
}

func (s *interviewService) Create(ctx context.Context, doc map[string]any) (*model.Interview, error) {
	rec, err := decodePayload[model.Interview](doc)
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
	if rec.Slug, err = uniqueSlug(ctx, s.repo, rec.Name, nil); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return s.insert(ctx, rec)
}

func (s *interviewService) List(ctx context.Context, opts query.Options) (*query.Result[model.Interview], error) {
	return s.list(ctx, opts)
}

func (s *interviewService) Get(ctx context.Context, id string) (*model.Interview, error) {
	return s.get(ctx, id)
}

func (s *interviewService) GetBySlug(ctx context.Context, slug string) (*model.Interview, error) {
	return s.getBy(ctx, bson.M{"slug": slug})
}

func (s *interviewService) Update(ctx context.Context, id string, patch map[string]any) (*model.Interview, error) {
	return s.update(ctx, id, patch)
}

func (s *interviewService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *interviewService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}
