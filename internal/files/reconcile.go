package files

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldSet declares which fields of a record carry file references.
// Scalars are single-reference string fields, Sequences are flat []string
// reference fields, and Nested describes identifiable sub-record slices
// whose elements own references of their own.
type FieldSet struct {
	Scalars   []string
	Sequences []string
	Nested    []NestedField
}

// NestedField addresses a slice of sub-records diffed by their "_id" value.
type NestedField struct {
	Path   string
	Fields []string
}

// ReconcileUpdate computes the references orphaned by applying patch over the
// previously persisted record and schedules their best-effort deletion. The
// caller must invoke it only after its own persistence write has committed;
// a failed commit must not lose files still referenced by the unchanged
// record.
func (s *Service) ReconcileUpdate(old any, patch map[string]any, set FieldSet) {
	oldDoc, err := ToDoc(old)
	if err != nil {
		s.log.WithError(err).Error("reconcile: convert record")
		return
	}
	s.DeleteAsync(StaleRefs(oldDoc, patch, set))
}

// ReconcileDelete schedules deletion of every reference the record owns,
// including those inside sub-records. The caller must invoke it only after
// the record itself has been removed.
func (s *Service) ReconcileDelete(rec any, set FieldSet) {
	doc, err := ToDoc(rec)
	if err != nil {
		s.log.WithError(err).Error("reconcile: convert record")
		return
	}
	s.DeleteAsync(AllRefs(doc, set))
}

// StaleRefs returns the references present in the old record but superseded
// by the new field values. Rules, per field class:
//
//   - scalar: the old value is stale only when the new value is present and
//     differs.
//   - flat sequence: a non-empty new sequence supersedes every old element;
//     no positional diffing is attempted.
//   - nested sub-records: diffed by "_id". A sub-record absent from the new
//     sequence contributes all of its references; a retained one contributes
//     a field's old value only when the new value is non-empty and differs.
//
// A field absent from newDoc leaves the old values owned and untouched.
func StaleRefs(oldDoc, newDoc map[string]any, set FieldSet) []string {
	var stale []string

	for _, f := range set.Scalars {
		oldV := str(oldDoc[f])
		newV, present := newDoc[f]
		if oldV != "" && present && str(newV) != "" && str(newV) != oldV {
			stale = append(stale, oldV)
		}
	}

	for _, f := range set.Sequences {
		newSeq := strSlice(newDoc[f])
		if len(newSeq) == 0 {
			continue
		}
		stale = append(stale, strSlice(oldDoc[f])...)
	}

	for _, nf := range set.Nested {
		if _, present := newDoc[nf.Path]; !present {
			continue
		}
		newByID := map[string]map[string]any{}
		for _, sub := range docSlice(newDoc[nf.Path]) {
			newByID[idString(sub["_id"])] = sub
		}
		for _, oldSub := range docSlice(oldDoc[nf.Path]) {
			newSub, retained := newByID[idString(oldSub["_id"])]
			for _, f := range nf.Fields {
				oldV := str(oldSub[f])
				if oldV == "" {
					continue
				}
				if !retained {
					stale = append(stale, oldV)
					continue
				}
				if newV := str(newSub[f]); newV != "" && newV != oldV {
					stale = append(stale, oldV)
				}
			}
		}
	}

	return stale
}

// AllRefs returns every reference the record owns, recursively.
func AllRefs(doc map[string]any, set FieldSet) []string {
	var refs []string
	for _, f := range set.Scalars {
		if v := str(doc[f]); v != "" {
			refs = append(refs, v)
		}
	}
	for _, f := range set.Sequences {
		refs = append(refs, strSlice(doc[f])...)
	}
	for _, nf := range set.Nested {
		for _, sub := range docSlice(doc[nf.Path]) {
			for _, f := range nf.Fields {
				if v := str(sub[f]); v != "" {
					refs = append(refs, v)
				}
			}
		}
	}
	return refs
}

// ToDoc converts a typed record into its document form via a bson round
// trip, so reconciliation always compares the persisted field names.
func ToDoc(v any) (map[string]any, error) {
	if doc, ok := asDoc(v); ok {
		return doc, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func asDoc(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case bson.M:
		return t, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case bson.A:
		return t, true
	default:
		return nil, false
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strSlice(v any) []string {
	if ss, ok := v.([]string); ok {
		return ss
	}
	raw, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s := str(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func docSlice(v any) []map[string]any {
	raw, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if doc, ok := asDoc(e); ok {
			out = append(out, doc)
		}
	}
	return out
}

// idString canonicalizes a sub-record identifier for comparison. Identifiers
// arrive as ObjectIDs from persisted records and as hex strings from form
// submissions.
func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
