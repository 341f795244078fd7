package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/files"
	"cmsapi/internal/service"
)

// GalleryHandler exposes the gallery endpoints.
type GalleryHandler struct {
	svc   service.GalleryService
	files *files.Service
}

func NewGalleryHandler(svc service.GalleryService, files *files.Service) *GalleryHandler {
	return &GalleryHandler{svc: svc, files: files}
}

func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "gallery created", rec)
}

func (h *GalleryHandler) List(c *fiber.Ctx) error {
	res, err := h.svc.List(c.UserContext(), listOptions(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "galleries fetched", res)
}

func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "gallery fetched", rec)
}

func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "gallery updated", rec)
}

func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "gallery deleted", nil)
}

func (h *GalleryHandler) DeleteMany(c *fiber.Ctx) error {
	ids, err := parseIDList(c)
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteMany(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "galleries deleted", fiber.Map{"deletedCount": n})
}
