package handler

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024

type AnalysisHandler struct {
	uc             *usecase.AnalysisUsecase
	analyzeLimiter fiber.Handler
}

// NewAnalysisHandler takes the limiter guarding the analyze route; nil means
// no extra limit.
func NewAnalysisHandler(uc *usecase.AnalysisUsecase, analyzeLimiter fiber.Handler) *AnalysisHandler {
	if analyzeLimiter == nil {
		analyzeLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &AnalysisHandler{uc: uc, analyzeLimiter: analyzeLimiter}
}

func (h *AnalysisHandler) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	api.Post("/resume/analyze", auth, h.analyzeLimiter, h.Analyze)
	api.Post("/resume/extract", auth, h.Extract)

	g := api.Group("/resume-analysis", auth)
	g.Get("/", h.List)
	g.Get("/:analysisId", h.Get)
	g.Delete("/:analysisId", h.Delete)
	g.Get("/:analysisId/similar", h.Similar)
}

func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	res, err := h.uc.Analyze(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}

	data := dto.NewAnalysisResponse(res.Analysis)
	data.Warnings = res.Warnings
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume analyzed successfully",
		Data:    data,
	})
}

func (h *AnalysisHandler) Extract(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required", err)
	}
	if file.Size > maxUploadSize {
		return badRequest(c, "file size is too large (max 5MB)", nil)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return badRequest(c, fmt.Sprintf("unsupported file type %q, only PDF is accepted", ext), nil)
	}

	f, err := file.Open()
	if err != nil {
		return handleError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return handleError(c, err)
	}

	res, err := h.uc.Extract(c.UserContext(), data)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Text extracted successfully",
		Data:    res,
	})
}

func (h *AnalysisHandler) List(c *fiber.Ctx) error {
	var q dto.ListAnalysesQuery
	if err := parseQuery(c, &q); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	items, pagination, err := h.uc.List(c.UserContext(), userID, q)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resume analyses",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *AnalysisHandler) Get(c *fiber.Ctx) error {
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
		Message: "Success get resume analysis",
		Data:    dto.NewAnalysisResponse(analysis),
	})
}

func (h *AnalysisHandler) Delete(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	if err := h.uc.Delete(c.UserContext(), userID, id); err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume analysis deleted successfully",
	})
}

func (h *AnalysisHandler) Similar(c *fiber.Ctx) error {
	id, err := analysisIDParam(c)
	if err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	similar, err := h.uc.Similar(c.UserContext(), userID, id, c.QueryInt("limit", 0))
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get similar analyses",
		Data:    similar,
	})
}
