package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/apperr"
	"cmsapi/internal/files"
	"cmsapi/internal/service"
)

// BlogHandler exposes the article endpoints.
type BlogHandler struct {
	svc   service.BlogService
	files *files.Service
}

func NewBlogHandler(svc service.BlogService, files *files.Service) *BlogHandler {
	return &BlogHandler{svc: svc, files: files}
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "blog created", rec)
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	res, err := h.svc.List(c.UserContext(), listOptions(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blogs fetched", res)
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blog fetched", rec)
}

func (h *BlogHandler) GetBySlug(c *fiber.Ctx) error {
	rec, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blog fetched", rec)
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blog updated", rec)
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blog deleted", nil)
}

func (h *BlogHandler) DeleteMany(c *fiber.Ctx) error {
	ids, err := parseIDList(c)
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteMany(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "blogs deleted", fiber.Map{"deletedCount": n})
}

// CreateMany bulk-creates articles from a JSON array of records. File
// references must already exist; bulk creation takes no uploads.
func (h *BlogHandler) CreateMany(c *fiber.Ctx) error {
	var docs []map[string]any
	if err := c.BodyParser(&docs); err != nil {
		return apperr.Wrap(apperr.KindValidation, "malformed request body", err)
	}
	if len(docs) == 0 {
		return apperr.New(apperr.KindValidation, "no records provided")
	}
	n, err := h.svc.CreateMany(c.UserContext(), docs)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "blogs created", fiber.Map{"insertedCount": n})
}
