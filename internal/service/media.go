package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/model"
	"cmsapi/internal/payload"
	"cmsapi/internal/query"
	"cmsapi/internal/repository"
)

// MediaService defines the media record use cases. Media records carry
// identifiable artist sub-records; updates diff them by id so only the
// artists the client actually replaced lose their files.
type MediaService interface {
	Create(ctx context.Context, doc map[string]any) (*model.Media, error)
	List(ctx context.Context, opts query.Options) (*query.Result[model.Media], error)
	Get(ctx context.Context, id string) (*model.Media, error)
	GetBySlug(ctx context.Context, slug string) (*model.Media, error)
	Update(ctx context.Context, id string, patch map[string]any) (*model.Media, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type mediaService struct {
	resource[model.Media]
}

func NewMediaService(repo *repository.Records[model.Media], fs *files.Service, resolver *files.Resolver, log *logrus.Logger) MediaService {
	return &mediaService{resource[model.Media]{
		repo:     repo,
		files:    fs,
		resolver: resolver,
		refs: files.FieldSet{
			Scalars: []string{"image"},
			Nested:  []files.NestedField{{Path: "artists", Fields: []string{"image"}}},
		},
		urls:   []string{"image", "artists.image"},
		search: []string{"slug", "artists.name"},
		log:    log,
	}}
}

func (s *mediaService) Create(ctx context.Context, doc map[string]any) (*model.Media, error) {
	rec, err := decodePayload[model.Media](doc)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(rec,
		validation.Field(&rec.Image, validation.Required),
		validation.Field(&rec.Artists, validation.Required),
	); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	assignArtistIDs(rec.Artists)
	s.denormalize(rec)
	if rec.Slug, err = uniqueSlug(ctx, s.repo, rec.Artists[0].Name, nil); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	return s.insert(ctx, rec)
}

// denormalize copies list-view fields off the first artist so listings never
// need to unwind the sub-records.
func (s *mediaService) denormalize(rec *model.Media) {
	if len(rec.Artists) == 0 {
		return
	}
	rec.Flag = rec.Artists[0].Flag
	if rec.Click == "" {
		rec.Click = rec.Artists[0].Country
	}
}

func (s *mediaService) List(ctx context.Context, opts query.Options) (*query.Result[model.Media], error) {
	return s.list(ctx, opts)
}

func (s *mediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	return s.get(ctx, id)
}

func (s *mediaService) GetBySlug(ctx context.Context, slug string) (*model.Media, error) {
	return s.getBy(ctx, bson.M{"slug": slug})
}

// Update persists the patch and reconciles artist files against what the
// client submitted. Submitted artist identifiers arrive as hex strings; they
// are retyped before the write, while the reconciliation diff still runs over
// the raw submitted values.
func (s *mediaService) Update(ctx context.Context, id string, patch map[string]any) (*model.Media, error) {
	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}

	if raw, ok := patch["artists"]; ok {
		artists, err := decodeArtists(raw)
		if err != nil {
			return nil, err
		}
		assignArtistIDs(artists)
		set["artists"] = artists
		if len(artists) > 0 {
			set["flag"] = artists[0].Flag
		}
	}

	return s.updateWith(ctx, id, set, patch)
}

func (s *mediaService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id)
}

func (s *mediaService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.removeMany(ctx, ids)
}

// assignArtistIDs gives every new sub-record an identifier. Retained
// sub-records keep the one the client echoed back.
func assignArtistIDs(artists []model.Artist) {
	for i := range artists {
		if artists[i].ID.IsZero() {
			artists[i].ID = primitive.NewObjectID()
		}
	}
}

func decodeArtists(raw any) ([]model.Artist, error) {
	var wrapper struct {
		Artists []model.Artist `bson:"artists"`
	}
	if err := payload.DecodeInto(map[string]any{"artists": raw}, &wrapper); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed artists payload", err)
	}
	return wrapper.Artists, nil
}
