package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"fruteria/internal/models"
	"fruteria/internal/services"
)

// MovementHandler handles HTTP requests for stock entries and exits.
type MovementHandler struct {
	service *services.LedgerService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(service *services.LedgerService) *MovementHandler {
	return &MovementHandler{
		service: service,
	}
}

// RegisterRoutes registers the /stock/entry and /stock/exit routes.
func (h *MovementHandler) RegisterRoutes(router fiber.Router) {
	stock := router.Group("/stock")

	entries := stock.Group("/entry")
	entries.Get("/", h.HandleGetEntries)
	entries.Get("/:id", h.HandleGetEntryByID)
	entries.Post("/", h.HandleCreateEntry)
	entries.Delete("/:id", h.HandleDeleteEntry)

	exits := stock.Group("/exit")
	exits.Get("/", h.HandleGetExits)
	exits.Get("/:id", h.HandleGetExitByID)
	exits.Post("/", h.HandleCreateExit)
	exits.Delete("/:id", h.HandleDeleteExit)
}

// HandleGetEntries lists every stock entry.
func (h *MovementHandler) HandleGetEntries(c *fiber.Ctx) error {
	entries, err := h.service.ListEntries(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve stock entries", err)
	}
	return c.JSON(entries)
}

// HandleGetEntryByID retrieves one stock entry.
func (h *MovementHandler) HandleGetEntryByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid entry ID", err)
	}
	entry, err := h.service.GetEntry(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve stock entry %d", id), err)
	}
	return c.JSON(entry)
}

// HandleCreateEntry records a stock entry and raises the product's stock.
func (h *MovementHandler) HandleCreateEntry(c *fiber.Ctx) error {
	var input models.EntryInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	_, entry, err := h.service.RecordEntry(c.UserContext(), input)
	if err != nil {
		return respondError(c, "Could not record stock entry", err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleDeleteEntry reverses a stock entry and returns the updated product.
func (h *MovementHandler) HandleDeleteEntry(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid entry ID", err)
	}
	product, err := h.service.DeleteEntry(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not delete stock entry %d", id), err)
	}
	return c.JSON(product)
}

// HandleGetExits lists every stock exit.
func (h *MovementHandler) HandleGetExits(c *fiber.Ctx) error {
	exits, err := h.service.ListExits(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve stock exits", err)
	}
	return c.JSON(exits)
}

// HandleGetExitByID retrieves one stock exit.
func (h *MovementHandler) HandleGetExitByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid exit ID", err)
	}
	exit, err := h.service.GetExit(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not retrieve stock exit %d", id), err)
	}
	return c.JSON(exit)
}

// HandleCreateExit records a stock exit. Exits larger than the current stock
// are answered with 409 Conflict.
func (h *MovementHandler) HandleCreateExit(c *fiber.Ctx) error {
	var input models.ExitInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	_, exit, err := h.service.RecordExit(c.UserContext(), input)
	if err != nil {
		return respondError(c, "Could not record stock exit", err)
	}
	return c.Status(fiber.StatusCreated).JSON(exit)
}

// HandleDeleteExit reverses a stock exit and returns the updated product.
func (h *MovementHandler) HandleDeleteExit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid exit ID", err)
	}
	product, err := h.service.DeleteExit(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Could not delete stock exit %d", id), err)
	}
	return c.JSON(product)
}
