package handler

import "github.com/gofiber/fiber/v2"

type RouteRegistrar interface {
	RegisterRoutes(api fiber.Router, auth fiber.Handler)
}

// RegisterRoutes mounts every handler under /api.
func RegisterRoutes(app *fiber.App, auth fiber.Handler, handlers ...RouteRegistrar) {
	api := app.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api, auth)
	}
}
