// Package files implements the file attachment lifecycle shared by every
// record type: storing uploaded parts as stable relative references,
// materializing public URLs at read time, and reclaiming references that an
// update or delete has orphaned.
package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cmsapi/internal/apperr"
	"cmsapi/internal/storage"
)

// RefPrefix is the directory prefix of every stored file reference.
// References are always forward-slash separated regardless of host path
// conventions.
const RefPrefix = "uploads"

// DefaultAllowedTypes is the content-type allow-list applied when a caller
// does not supply its own.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/jpg"}

const deleteTimeout = 30 * time.Second

// Service persists uploaded binary content and deletes it by reference.
type Service struct {
	store storage.Storage
	log   *logrus.Logger
}

func NewService(store storage.Storage, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// Store validates, recompresses and persists one uploaded file part,
// returning its relative reference (uploads/<name>_<unixMillis>.<ext>).
// Content whose declared type is not in the allow-list is rejected before
// any write occurs.
func (s *Service) Store(ctx context.Context, fh *multipart.FileHeader, allowed ...string) (string, error) {
	if fh == nil {
		return "", apperr.New(apperr.KindValidation, "missing file part")
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}

	contentType := fh.Header.Get("Content-Type")
	if !typeAllowed(contentType, allowed) {
		return "", apperr.Newf(apperr.KindUnsupportedMedia,
			"unsupported media type: %s. allowed types: %s", contentType, strings.Join(allowed, ", "))
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "read uploaded file", err)
	}

	// Recompression is one-way and must succeed before the reference is
	// considered valid.
	data, err = recompress(data, contentType)
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "recompress image", err)
	}

	key := RefPrefix + "/" + storedName(fh.Filename)
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), storage.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": fh.Filename},
	}); err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "store file", err)
	}
	return key, nil
}

// StoreAll stores every part of a multi-file field in order.
func (s *Service) StoreAll(ctx context.Context, fhs []*multipart.FileHeader, allowed ...string) ([]string, error) {
	refs := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		ref, err := s.Store(ctx, fh, allowed...)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Delete removes the content behind a reference. It is idempotent: a missing
// object logs a warning and any other failure logs an error; neither is ever
// surfaced to the caller, since by the time a deletion runs the authoritative
// record state has already changed.
func (s *Service) Delete(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	err := s.store.Delete(ctx, normalizeRef(ref))
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		s.log.WithField("ref", ref).Warn("file not found during delete")
	default:
		s.log.WithField("ref", ref).WithError(err).Error("failed to delete file")
	}
}

// DeleteAsync schedules best-effort deletion of the given references. It is
// dispatched after the owning record write has committed and never blocks or
// fails the triggering request.
func (s *Service) DeleteAsync(refs []string) {
	if len(refs) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()
		for _, ref := range refs {
			s.Delete(ctx, ref)
		}
	}()
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)
var whitespace = regexp.MustCompile(`\s+`)

// storedName derives a collision-resistant storage name from the sanitized
// original basename plus a millisecond timestamp suffix. The caller-supplied
// name is never reused verbatim.
func storedName(filename string) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(path.Base(filename), ext)
	base = whitespace.ReplaceAllString(base, "_")
	base = nonWord.ReplaceAllString(base, "")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)
}

// normalizeRef converts any backslash-separated reference to the canonical
// forward-slash form.
func normalizeRef(ref string) string {
	return strings.ReplaceAll(ref, "\\", "/")
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
