package handler

import (
	"github.com/gofiber/fiber/v2"

	"cmsapi/internal/files"
	"cmsapi/internal/service"
)

// InterviewHandler exposes the interview endpoints.
type InterviewHandler struct {
	svc   service.InterviewService
	files *files.Service
}

func NewInterviewHandler(svc service.InterviewService, files *files.Service) *InterviewHandler {
	return &InterviewHandler{svc: svc, files: files}
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusCreated, "interview created", rec)
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	res, err := h.svc.List(c.UserContext(), listOptions(c))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interviews fetched", res)
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	rec, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interview fetched", rec)
}

func (h *InterviewHandler) GetBySlug(c *fiber.Ctx) error {
	rec, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interview fetched", rec)
}

func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	doc, err := formPayload(c.UserContext(), c, h.files, "images")
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interview updated", rec)
}

func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interview deleted", nil)
}

func (h *InterviewHandler) DeleteMany(c *fiber.Ctx) error {
	ids, err := parseIDList(c)
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteMany(c.UserContext(), ids)
	if err != nil {
		return err
	}
	return writeSuccess(c, fiber.StatusOK, "interviews deleted", fiber.Map{"deletedCount": n})
}
