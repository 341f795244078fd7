package handler

import (
	"context"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/payload"
	"cmsapi/internal/query"
)

// formPayload reconstructs the structured payload of a multipart request:
// bracketed field names expand into nested values, every uploaded part is
// stored and its reference spliced in under the part's field name. Field
// names listed in multi always merge as sequences, even with a single part.
func formPayload(ctx context.Context, c *fiber.Ctx, svc *files.Service, multi ...string) (map[string]any, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed multipart form", err)
	}
	defer c.Request().RemoveMultipartFormFiles()

	tree := payload.FromValues(form.Value)
	if err := storeFormFiles(ctx, svc, form, tree, multi); err != nil {
		return nil, err
	}

	doc, _ := payload.Normalize(tree).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func storeFormFiles(ctx context.Context, svc *files.Service, form *multipart.Form, tree map[string]any, multi []string) error {
	for key, fhs := range form.File {
		refs, err := svc.StoreAll(ctx, fhs)
		if err != nil {
			return err
		}
		if len(refs) == 1 && !containsName(multi, key) {
			payload.Add(tree, key, refs[0])
			continue
		}
		payload.Add(tree, key, refs...)
	}
	return nil
}

func containsName(names []string, key string) bool {
	for _, n := range names {
		if n == key {
			return true
		}
	}
	return false
}

// reserved query parameters that never become filters.
var reservedParams = map[string]bool{
	"page":       true,
	"limit":      true,
	"searchText": true,
	"sortBy":     true,
	"sortOrder":  true,
	"from":       true,
	"to":         true,
}

// listOptions builds pagination options from query parameters. Unreserved
// parameters become field filters; from/to become an inclusive createdAt
// range.
func listOptions(c *fiber.Ctx) query.Options {
	opts := query.Options{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
		SearchText: c.Query("searchText"),
		Sort: query.Sort{
			Field: c.Query("sortBy"),
			Order: c.Query("sortOrder"),
		},
	}

	filters := map[string]any{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		if reservedParams[key] {
			return
		}
		val := string(v)
		if b, err := strconv.ParseBool(val); err == nil {
			filters[key] = b
			return
		}
		filters[key] = val
	})

	if rng, ok := createdRange(c.Query("from"), c.Query("to")); ok {
		filters["createdAt"] = rng
	}
	if len(filters) > 0 {
		opts.Filters = filters
	}
	return opts
}

func createdRange(from, to string) (query.Range, bool) {
	var rng query.Range
	if t, err := time.Parse(time.RFC3339, from); err == nil {
		rng.From = t
	}
	if t, err := time.Parse(time.RFC3339, to); err == nil {
		rng.To = t
	}
	return rng, rng.From != nil || rng.To != nil
}

// idList is the body shape of bulk delete requests.
type idList struct {
	IDs []string `json:"ids"`
}

func parseIDList(c *fiber.Ctx) ([]string, error) {
	var body idList
	if err := c.BodyParser(&body); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "malformed request body", err)
	}
	if len(body.IDs) == 0 {
		return nil, apperr.New(apperr.KindValidation, "no ids provided")
	}
	return body.IDs, nil
}
