// Package payload reconstructs structured payloads from flattened multipart
// form submissions. Multipart encoding flattens nested structures into
// bracketed keys (artists[0][name]); this package expands them back into
// nested maps and slices with deterministic ordering.
package payload

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field wraps a raw form value as produced by multipart decoding.
// Normalize unwraps it to the underlying value.
type Field struct {
	Value any
}

// FromValues expands bracketed multipart keys into the flattened marker tree
// that Normalize consumes. Repeated keys become numerically keyed levels so
// that Normalize turns them into ordered sequences.
func FromValues(values map[string][]string) map[string]any {
	root := map[string]any{}
	for key, vals := range values {
		segs := splitKey(key)
		if len(vals) == 1 {
			insert(root, segs, Field{Value: vals[0]})
			continue
		}
		for i, v := range vals {
			insert(root, append(segs, strconv.Itoa(i)), Field{Value: v})
		}
	}
	return root
}

// Add merges extra values into a tree built by FromValues under a bracketed
// key, following the same expansion rules. Callers use it to splice stored
// file references into the submitted field tree before normalization.
func Add(root map[string]any, key string, vals ...string) {
	segs := splitKey(key)
	if len(vals) == 1 {
		insert(root, segs, Field{Value: vals[0]})
		return
	}
	for i, v := range vals {
		insert(root, append(append([]string{}, segs...), strconv.Itoa(i)), Field{Value: v})
	}
}

// Normalize converts a flattened keyed structure into a plain nested one.
// Levels whose keys are all non-negative integers become slices ordered by
// numeric key ascending, regardless of arrival order. Field markers unwrap
// to their raw value. The algorithm is total over well-formed input: a level
// mixing numeric and non-numeric keys stays a mapping.
func Normalize(v any) any {
	switch t := v.(type) {
	case Field:
		return t.Value
	case map[string]any:
		if keys, ok := numericKeys(t); ok {
			out := make([]any, 0, len(keys))
			for _, k := range keys {
				out = append(out, Normalize(t[k]))
			}
			return out
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// DecodeInto decodes a normalized payload into a typed model. Decoding is
// weakly typed (form values arrive as strings) and follows bson field names
// so the same tags drive persistence and payload decoding. Hex strings decode
// into ObjectIDs, which is how sub-record identifiers survive the round trip
// through a form submission.
func DecodeInto(src any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "bson",
		WeaklyTypedInput: true,
		DecodeHook:       stringToObjectIDHook,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

func stringToObjectIDHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(primitive.ObjectID{}) || from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return primitive.NilObjectID, nil
	}
	return primitive.ObjectIDFromHex(s)
}

// numericKeys reports whether every key of m parses as a non-negative integer
// and, if so, returns the keys sorted by numeric value ascending.
func numericKeys(m map[string]any) ([]string, bool) {
	if len(m) == 0 {
		return nil, false
	}
	type numKey struct {
		n int
		s string
	}
	keys := make([]numKey, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, false
		}
		keys = append(keys, numKey{n: n, s: k})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].n < keys[j].n })
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.s
	}
	return out, true
}

// splitKey turns "artists[0][name]" into ["artists", "0", "name"].
// A key without brackets is a single segment; a trailing "[]" maps to
// segment "0" so bare array syntax still lands in a sequence level.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}
	}
	segs := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			// Malformed remainder; treat it as a literal segment.
			segs = append(segs, rest)
			break
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			segs = append(segs, rest[1:])
			break
		}
		seg := rest[1:close]
		if seg == "" {
			seg = "0"
		}
		segs = append(segs, seg)
		rest = rest[close+1:]
	}
	return segs
}

func insert(node map[string]any, segs []string, leaf Field) {
	for i, seg := range segs {
		if i == len(segs)-1 {
			node[seg] = leaf
			return
		}
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
}
