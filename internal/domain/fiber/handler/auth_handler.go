package handler

import (
	"github.com/fadilmartias/skillsnap/internal/dto"
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	g := api.Group("/auth")
	g.Post("/register", h.Register)
	g.Post("/login", h.Login)
	g.Get("/me", auth, h.Me)
	g.Get("/profile", auth, h.Me)
	g.Put("/profile", auth, h.UpdateProfile)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	res, err := h.uc.Register(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "User registered successfully",
		Data:    res,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	res, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login successful",
		Data:    res,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	user, err := h.uc.Me(c.UserContext(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get user",
		Data:    fiber.Map{"user": user},
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	userID, _ := middleware.UserID(c)
	user, err := h.uc.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile updated successfully",
		Data:    fiber.Map{"user": user},
	})
}
