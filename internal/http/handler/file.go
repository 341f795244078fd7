package handler

import (
	"errors"
	"io/fs"

	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/storage"
)

// FileHandler streams stored file content by reference. It backs the public
// upload URLs when the storage driver has no directly servable filesystem.
type FileHandler struct {
	store storage.Storage
}

func NewFileHandler(store storage.Storage) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Get(c *fiber.Ctx) error {
	name := c.Params("+")
	if name == "" {
		return apperr.New(apperr.KindValidation, "missing file name")
	}

	rc, info, err := h.store.Get(c.UserContext(), files.RefPrefix+"/"+name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.New(apperr.KindNotFound, "file not found")
		}
		return apperr.Wrap(apperr.KindStorage, "open file", err)
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	return c.SendStream(rc, int(info.Size))
}
