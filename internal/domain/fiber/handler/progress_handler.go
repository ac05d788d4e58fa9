package handler

import (
	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	uc *usecase.ProgressUsecase
}

func NewProgressHandler(uc *usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	g := api.Group("/progress", auth)
	g.Post("/", h.Create)
	g.Get("/latest", h.Latest)
	g.Get("/history", h.History)
	g.Get("/analysis/:analysisId", h.ByAnalysis)
}

func (h *ProgressHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProgressRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	event, err := h.uc.Create(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Progress tracked successfully",
		Data:    fiber.Map{"progressId": event.ID},
	})
}

func (h *ProgressHandler) Latest(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	event, err := h.uc.Latest(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}

	message := "Success get latest progress"
	if event == nil {
		message = "No progress found"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data:    fiber.Map{"progress": event},
	})
}

func (h *ProgressHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := parseQuery(c, &q); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	events, err := h.uc.History(c.UserContext(), userID, q.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get progress history",
		Data:    events,
	})
}

func (h *ProgressHandler) ByAnalysis(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	events, err := h.uc.ByAnalysis(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get analysis progress",
		Data:    events,
	})
}
