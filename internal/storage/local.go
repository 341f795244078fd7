package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements Storage on the local filesystem under a root
// directory. Keys are resolved against the root and may not escape it.
type localStorage struct {
	root string
}

// NewLocal creates a filesystem-backed Storage rooted at the given directory,
// creating it if missing.
func NewLocal(root string) (Storage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &localStorage{root: abs}, nil
}

// safePath resolves a key against the root and rejects any result that
// escapes it (directory traversal).
func (l *localStorage) safePath(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute keys not allowed: %s", key)
	}
	abs := filepath.Join(l.root, cleaned)
	if !strings.HasPrefix(abs, l.root+string(os.PathSeparator)) && abs != l.root {
		return "", fmt.Errorf("storage: key escapes storage root: %s", key)
	}
	return abs, nil
}

// Put writes the object atomically: tmp file, then rename.
func (l *localStorage) Put(_ context.Context, key string, r io.Reader, _ int64, opt PutOptions) (ObjectInfo, error) {
	abs, err := l.safePath(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".upload-tmp-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: rename: %w", err)
	}
	success = true

	return ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType}, nil
}

func (l *localStorage) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	abs, err := l.safePath(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("storage: open %s: %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("storage: stat %s: %w", key, err)
	}
	info := ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(abs)),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

// Delete removes the object. A missing key surfaces fs.ErrNotExist through
// the returned error so callers can treat repeat deletes as no-ops.
func (l *localStorage) Delete(_ context.Context, key string) error {
	abs, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
