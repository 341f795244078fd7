// Package service implements the use cases behind each endpoint group. Every
// record service shares the same lifecycle: normalized payload in, validated
// typed record out, file references reconciled after each committed write.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/payload"
	"cmsapi/internal/query"
	"cmsapi/internal/repository"
)

// resource bundles the collaborators shared by every record service:
// persistence, file lifecycle, URL materialization and search defaults.
type resource[T any] struct {
	repo     *repository.Records[T]
	files    *files.Service
	resolver *files.Resolver
	refs     files.FieldSet
	urls     []string
	search   []string
	log      *logrus.Logger
}

// materialize rewrites stored file references into public URLs on the
// in-memory copy.
func (r *resource[T]) materialize(v any) {
	if len(r.urls) > 0 {
		r.resolver.Resolve(v, r.urls...)
	}
}

func (r *resource[T]) list(ctx context.Context, opts query.Options) (*query.Result[T], error) {
	if len(opts.SearchFields) == 0 {
		opts.SearchFields = r.search
	}
	res, err := r.repo.Paginate(ctx, nil, opts)
	if err != nil {
		return nil, err
	}
	r.materialize(res.Results)
	return res, nil
}

func (r *resource[T]) get(ctx context.Context, id string) (*T, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	rec, err := r.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	r.materialize(rec)
	return rec, nil
}

func (r *resource[T]) getBy(ctx context.Context, filter bson.M) (*T, error) {
	rec, err := r.repo.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	r.materialize(rec)
	return rec, nil
}

func (r *resource[T]) insert(ctx context.Context, rec *T) (*T, error) {
	stored, err := r.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	r.materialize(stored)
	return stored, nil
}

func (r *resource[T]) update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	return r.updateWith(ctx, id, bson.M(patch), patch)
}

// updateWith applies set as the persisted patch and diffs orphaned file
// references against the submitted field values. Split in two so callers can
// retype parts of the patch (sub-record identifiers) before persisting while
// reconciliation still sees what the client sent.
func (r *resource[T]) updateWith(ctx context.Context, id string, set bson.M, patch map[string]any) (*T, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	old, err := r.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	clean := sanitizePatch(set)
	if len(clean) == 0 {
		return nil, apperr.New(apperr.KindValidation, "no fields to update")
	}
	typed, err := r.typedSet(clean)
	if err != nil {
		return nil, err
	}
	rec, err := r.repo.UpdateByID(ctx, oid, typed)
	if err != nil {
		return nil, err
	}

	// Only a committed write may orphan the previous references.
	r.files.ReconcileUpdate(old, patch, r.refs)

	r.materialize(rec)
	return rec, nil
}

func (r *resource[T]) remove(ctx context.Context, id string) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return err
	}
	rec, err := r.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := r.repo.DeleteByID(ctx, oid); err != nil {
		return err
	}
	r.files.ReconcileDelete(rec, r.refs)
	return nil
}

func (r *resource[T]) removeMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.New(apperr.KindValidation, "no ids provided")
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := repository.ParseID(id)
		if err != nil {
			return 0, err
		}
		oids = append(oids, oid)
	}
	recs, err := r.repo.FindAll(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	n, err := r.repo.DeleteByIDs(ctx, oids)
	if err != nil {
		return 0, err
	}
	for i := range recs {
		r.files.ReconcileDelete(&recs[i], r.refs)
	}
	return n, nil
}

// decodePayload turns a normalized payload into a typed record.
func decodePayload[T any](doc map[string]any) (*T, error) {
	var rec T
	if err := payload.DecodeInto(doc, &rec); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed payload", err)
	}
	return &rec, nil
}

// typedSet retypes a patch through the record model before persistence. Form
// values arrive as strings; writing them verbatim would store a string where
// the model declares, say, a bool, and the stored record would no longer
// decode. The patch is decoded into a zero record and converted back to its
// document form, then only the submitted keys are projected out. Keys the
// round trip drops (unknown fields, empty omitempty values) keep the
// submitted value.
func (r *resource[T]) typedSet(clean bson.M) (bson.M, error) {
	var rec T
	if err := payload.DecodeInto(map[string]any(clean), &rec); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed payload", err)
	}
	doc, err := files.ToDoc(&rec)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed payload", err)
	}
	out := bson.M{}
	for k, v := range clean {
		if typed, ok := doc[k]; ok {
			out[k] = typed
			continue
		}
		out[k] = v
	}
	return out, nil
}

// sanitizePatch removes fields a client may never set directly.
func sanitizePatch(set bson.M) bson.M {
	out := bson.M{}
	for k, v := range set {
		switch k {
		case "_id", "createdAt", "updatedAt":
			continue
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// uniqueSlug derives a URL slug from name, suffixing a counter until it is
// unique within the collection. taken holds slugs already claimed earlier in
// the same batch but not yet persisted; nil is fine for single inserts.
func uniqueSlug[T any](ctx context.Context, repo *repository.Records[T], name string, taken map[string]bool) (string, error) {
	return nextSlug(ctx, name, taken, func(ctx context.Context, candidate string) (bool, error) {
		return repo.Exists(ctx, bson.M{"slug": candidate})
	})
}

func nextSlug(ctx context.Context, name string, taken map[string]bool, exists func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = fmt.Sprintf("record-%d", time.Now().UnixMilli())
	}
	candidate := base
	for i := 2; ; i++ {
		if !taken[candidate] {
			found, err := exists(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !found {
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
