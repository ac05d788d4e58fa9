package handler

import (
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// DocumentPathResolver maps a storage key to a file on disk.
type DocumentPathResolver interface {
	Path(key string) (string, error)
}

// DocumentHandler serves locally stored documents to the user who owns them.
type DocumentHandler struct {
	store DocumentPathResolver
}

func NewDocumentHandler(store DocumentPathResolver) *DocumentHandler {
	return &DocumentHandler{store: store}
}

func (h *DocumentHandler) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	api.Get("/documents/*", auth, h.Get)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	key := c.Params("*")
	userID, _ := middleware.UserID(c)

	// someone else's key gets the same answer as a missing one
	owner, err := storage.OwnerOf(key)
	if err != nil || owner != userID {
		return fiber.ErrNotFound
	}
	path, err := h.store.Path(key)
	if err != nil {
		return fiber.ErrNotFound
	}
	return c.SendFile(path)
}
