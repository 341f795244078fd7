package files

import (
	"reflect"
	"strings"
)

// Resolver rewrites stored relative file references into externally
// addressable URLs. It operates only on the in-memory copy handed to it,
// never on persisted state.
type Resolver struct {
	// BaseURL is the public base URL, without a trailing slash.
	BaseURL string
}

// URL materializes a single reference. Empty references pass through.
func (r Resolver) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return r.BaseURL + "/" + normalizeRef(ref)
}

// Resolve rewrites the addressed fields of a record or slice of records.
// Field paths are dot-separated for nesting (e.g. "artists.image") and may
// address scalar string fields, []string fields (each element is rewritten),
// or string fields one level inside a slice of sub-records. Absent or empty
// values pass through unchanged. v must be a pointer to a struct, a slice of
// structs, or a pointer to such a slice.
func (r Resolver) Resolve(v any, fields ...string) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	for _, field := range fields {
		r.resolvePath(rv, strings.Split(field, "."))
	}
}

func (r Resolver) resolvePath(rv reflect.Value, segs []string) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		if len(segs) == 0 {
			// Leaf slice: rewrite each string element.
			if rv.Type().Elem().Kind() == reflect.String {
				for i := 0; i < rv.Len(); i++ {
					r.rewrite(rv.Index(i))
				}
				return
			}
		}
		for i := 0; i < rv.Len(); i++ {
			r.resolvePath(rv.Index(i), segs)
		}
	case reflect.Struct:
		if len(segs) == 0 {
			return
		}
		fv := fieldByName(rv, segs[0])
		if !fv.IsValid() {
			return
		}
		if len(segs) == 1 && fv.Kind() == reflect.String {
			r.rewrite(fv)
			return
		}
		r.resolvePath(fv, segs[1:])
	case reflect.String:
		if len(segs) == 0 {
			r.rewrite(rv)
		}
	}
}

func (r Resolver) rewrite(fv reflect.Value) {
	if !fv.CanSet() {
		return
	}
	if ref := fv.String(); ref != "" {
		fv.SetString(r.URL(ref))
	}
}

// fieldByName finds a struct field whose bson tag (or name, case-folded)
// matches the path segment.
func fieldByName(rv reflect.Value, name string) reflect.Value {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("bson")
		if comma := strings.IndexByte(tag, ','); comma >= 0 {
			tag = tag[:comma]
		}
		if tag == name {
			return rv.Field(i)
		}
	}
	return rv.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
}
