package handler

import (
	"errors"

	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/fadilmartias/skillsnap/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const msgAIMalformed = "The AI service returned a malformed answer. Please try again."

// errorMessages is the client-facing wording of the usecase sentinels.
var errorMessages = map[error]string{
	usecase.ErrInvalidCredentials: "Invalid email or password",
	usecase.ErrEmailTaken:         "Email already registered",
	usecase.ErrUserNotFound:       "User not found",
	usecase.ErrAnalysisNotFound:   "Resume analysis not found",
	usecase.ErrStepNotFound:       "Roadmap step not found",
	usecase.ErrAIMalformed:        msgAIMalformed,
}

// ErrorHandler is the app-wide fallback for errors no handler rendered.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if e.Message != "" {
			message = e.Message
		}
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func handleError(c *fiber.Ctx, err error) error {
	var (
		formErr  *util.FormError
		inputErr *usecase.InputError
		aiErr    *service.AIError
	)

	switch {
	case errors.As(err, &formErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, err)
	case errors.As(err, &inputErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: inputErr.Error(),
			Details: map[string]string{inputErr.Field: inputErr.Err.Error()},
		}, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return badRequest(c, errorMessages[usecase.ErrEmailTaken], err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusUnauthorized, Message: errorMessages[usecase.ErrInvalidCredentials]}, err)
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrAnalysisNotFound),
		errors.Is(err, usecase.ErrStepNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusNotFound, Message: notFoundMessage(err)}, err)
	case errors.Is(err, usecase.ErrAIMalformed):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusServiceUnavailable, Message: msgAIMalformed}, err)
	case errors.As(err, &aiErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusServiceUnavailable, Message: aiErr.Message()}, err)
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusInternalServerError,
		Message: "Internal server error",
	}, err)
}

func notFoundMessage(err error) string {
	for _, target := range []error{usecase.ErrStepNotFound, usecase.ErrAnalysisNotFound, usecase.ErrUserNotFound} {
		if errors.Is(err, target) {
			return errorMessages[target]
		}
	}
	return "Not found"
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: message}, err)
}

// parseBody decodes and validates a JSON body into req.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return util.NewFormError("invalid request body", map[string]string{"body": err.Error()})
	}
	return util.ValidateStruct(req)
}

func parseQuery(c *fiber.Ctx, q any) error {
	if err := c.QueryParser(q); err != nil {
		return util.NewFormError("invalid query parameters", map[string]string{"query": err.Error()})
	}
	return util.ValidateStruct(q)
}

func analysisIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("analysisId"))
	if err != nil {
		return uuid.Nil, util.NewFormError("Invalid analysis id", map[string]string{"analysisId": "uuid"})
	}
	return id, nil
}
