package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/files"
	"cmsapi/internal/service"
)

// MediaHandler exposes the media endpoints. Artist images arrive as file
// parts named artists[i][image], which formPayload splices into the matching
// sub-record.
type MediaHandler struct {
	svc   service.MediaService
	files *files.Service
}

func NewMediaHandler(svc service.MediaService, files *files.Service) *MediaHandler {
	return &MediaHandler{svc: svc, files: files}
}

func (h *MediaHandler) Create(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files)
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "media created", rec)
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	res, err := h.svc.List(c.UserContext(), listOptions(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media fetched", res)
}

func (h *MediaHandler) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media fetched", rec)
}

func (h *MediaHandler) GetBySlug(c *fiber.Ctx) error {
	rec, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media fetched", rec)
}

func (h *MediaHandler) Update(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files)
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media updated", rec)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media deleted", nil)
}

func (h *MediaHandler) DeleteMany(c *fiber.Ctx) error {
	ids, err := parseIDList(c)
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteMany(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "media deleted", fiber.Map{"deletedCount": n})
}
