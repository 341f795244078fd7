package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/files"
	"cmsapi/internal/service"
)

// MagazineHandler exposes the magazine endpoints.
type MagazineHandler struct {
	svc   service.MagazineService
	files *files.Service
}

func NewMagazineHandler(svc service.MagazineService, files *files.Service) *MagazineHandler {
	return &MagazineHandler{svc: svc, files: files}
}

func (h *MagazineHandler) Create(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files)
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "magazine created", rec)
}

func (h *MagazineHandler) List(c *fiber.Ctx) error {
	res, err := h.svc.List(c.UserContext(), listOptions(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "magazines fetched", res)
}

func (h *MagazineHandler) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "magazine fetched", rec)
}

func (h *MagazineHandler) Update(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files)
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "magazine updated", rec)
}

func (h *MagazineHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "magazine deleted", nil)
}

func (h *MagazineHandler) DeleteMany(c *fiber.Ctx) error {
	ids, err := parseIDList(c)
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteMany(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "magazines deleted", fiber.Map{"deletedCount": n})
}
