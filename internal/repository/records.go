// Package repository contains the data access layer. A single generic
// repository serves every record collection; entity-specific lookups live in
// thin wrappers next to it. No business logic here — strictly persistence
// operations.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cmsapi/internal/apperr"
	"cmsapi/internal/query"
)

// Records provides persistence operations for one collection of records of
// type T. Collection handles are passed in explicitly; there is no global
// registry.
type Records[T any] struct {
	coll *mongo.Collection
	name string // human name used in failure messages, e.g. "gallery"
}

// NewRecords wraps a collection. name appears in NotFound messages.
func NewRecords[T any](coll *mongo.Collection, name string) *Records[T] {
	return &Records[T]{coll: coll, name: name}
}

// Collection exposes the underlying handle for callers that need raw
// queries (pagination, backups).
func (r *Records[T]) Collection() *mongo.Collection { return r.coll }

// ParseID converts a hex identifier into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.KindValidation, "invalid id: %s", hex)
	}
	return id, nil
}

// Insert stores a new record and returns it with its assigned identifier.
func (r *Records[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return r.FindByID(ctx, id)
}

// InsertMany stores records in bulk, continuing past individual failures.
func (r *Records[T]) InsertMany(ctx context.Context, docs []any) (int, error) {
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		return len(res.InsertedIDs), err
	}
	return 0, err
}

// FindByID returns one record by identifier.
func (r *Records[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// FindOne returns the first record matching filter.
func (r *Records[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Newf(apperr.KindNotFound, "%s not found", r.name)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindAll returns every record matching filter, newest first.
func (r *Records[T]) FindAll(ctx context.Context, filter bson.M) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Exists reports whether any record matches filter.
func (r *Records[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

// UpdateByID applies a $set patch and returns the updated record. The
// updatedAt timestamp is stamped here.
func (r *Records[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	patched := bson.M{}
	for k, v := range set {
		patched[k] = v
	}
	patched["updatedAt"] = time.Now().UTC()

	var doc T
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patched},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Newf(apperr.KindNotFound, "%s not found", r.name)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID removes one record.
func (r *Records[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.Newf(apperr.KindNotFound, "%s not found", r.name)
	}
	return nil
}

// DeleteByIDs removes records in bulk and returns the deleted count.
func (r *Records[T]) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Paginate runs a filtered, sorted, paged query over the collection.
func (r *Records[T]) Paginate(ctx context.Context, base bson.M, opts query.Options) (*query.Result[T], error) {
	return query.Paginate[T](ctx, r.coll, base, opts)
}
