// Package query builds paginated, searchable, filterable, sorted queries
// over arbitrary record collections.
package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sort selects the primary sort key and direction.
type Sort struct {
	Field string
	Order string // "asc" or "desc"
}

// Range is an inclusive range filter; either bound may be nil.
type Range struct {
	From any
	To   any
}

// Options describes one pagination request. Page and Limit are clamped to a
// minimum of 1 before use. SearchText combined with SearchFields produces a
// disjunction of case-insensitive substring matches. Filter values map as:
// string -> case-insensitive substring, Range -> inclusive range, slice ->
// set membership, anything else -> literal equality. Field names are not
// pre-validated; an invalid name surfaces from the persistence layer.
type Options struct {
	Page         int
	Limit        int
	SearchText   string
	SearchFields []string
	Filters      map[string]any
	Sort         Sort
}

// Meta is the paging metadata returned alongside each page.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// Result is one page of records plus its metadata.
type Result[T any] struct {
	Results []T  `json:"results"`
	Meta    Meta `json:"meta"`
}

// BuildFilter translates Options into a filter document, merged over base.
func BuildFilter(base bson.M, opts Options) bson.M {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}

	for key, value := range opts.Filters {
		switch v := value.(type) {
		case string:
			filter[key] = primitive.Regex{Pattern: v, Options: "i"}
		case Range:
			rng := bson.M{}
			if v.From != nil {
				rng["$gte"] = v.From
			}
			if v.To != nil {
				rng["$lte"] = v.To
			}
			filter[key] = rng
		case []any:
			filter[key] = bson.M{"$in": v}
		case []string:
			filter[key] = bson.M{"$in": v}
		default:
			// Unrecognized shapes pass through as literal equality.
			filter[key] = v
		}
	}

	if opts.SearchText != "" && len(opts.SearchFields) > 0 {
		or := make(bson.A, 0, len(opts.SearchFields))
		for _, field := range opts.SearchFields {
			or = append(or, bson.M{field: primitive.Regex{Pattern: opts.SearchText, Options: "i"}})
		}
		filter["$or"] = or
	}

	return filter
}

// Paginate runs the filtered, sorted, paged query against coll. The total
// count reflects the full matching set, not the page. Creation order
// descending is always the secondary sort key so page boundaries stay stable
// across repeated queries when primary-sort values are equal.
func Paginate[T any](ctx context.Context, coll *mongo.Collection, base bson.M, opts Options) (*Result[T], error) {
	page, limit, skip := clampPage(opts.Page, opts.Limit)

	filter := BuildFilter(base, opts)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, filter, options.Find().
		SetSort(sortDoc(opts.Sort)).
		SetSkip(skip).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}

	results := make([]T, 0, limit)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return &Result[T]{
		Results: results,
		Meta:    NewMeta(page, limit, total),
	}, nil
}

// clampPage normalizes page and limit to a minimum of 1 and returns the
// resulting cursor skip.
func clampPage(page, limit int) (int, int, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit, int64(page-1) * int64(limit)
}

// NewMeta computes paging metadata; TotalPages = ceil(total/limit).
func NewMeta(page, limit int, total int64) Meta {
	return Meta{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

func sortDoc(s Sort) bson.D {
	field := s.Field
	if field == "" {
		field = "createdAt"
	}
	dir := -1 // default newest-first
	if s.Order == "asc" {
		dir = 1
	}
	doc := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		doc = append(doc, bson.E{Key: "_id", Value: -1})
	}
	return doc
}
