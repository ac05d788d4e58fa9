package handler

import (
	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RoadmapHandler struct {
	uc *usecase.RoadmapUsecase
}

func NewRoadmapHandler(uc *usecase.RoadmapUsecase) *RoadmapHandler {
	return &RoadmapHandler{uc: uc}
}

func (h *RoadmapHandler) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	g := api.Group("/roadmap", auth)
	g.Get("/:analysisId", h.Get)
	g.Patch("/progress/:analysisId", h.UpdateStep)
	g.Patch("/progress/:analysisId/bulk", h.BulkUpdate)
}

func (h *RoadmapHandler) Get(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	analysis, err := h.uc.Get(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get roadmap",
		Data:    dto.NewRoadmapResponse(analysis),
	})
}

func (h *RoadmapHandler) UpdateStep(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}
	var req dto.UpdateStepRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	res, err := h.uc.UpdateStep(c.UserContext(), userID, id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Progress updated successfully",
		Data:    res,
	})
}

func (h *RoadmapHandler) BulkUpdate(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}
	var req dto.BulkUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	res, err := h.uc.BulkUpdate(c.UserContext(), userID, id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Progress updated successfully",
		Data:    res,
	})
}
