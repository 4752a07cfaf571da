package handlers

import (
	"fyyur/internal/app"
	venueController "fyyur/internal/controllers/venues"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type VenueHandler struct {
	Handler
	venueController venueController.VenueControllerInterface
}

func NewVenueHandler(app app.App, router fiber.Router) *VenueHandler {
	log := logger.New("handlers").File("venue_handler")
	return &VenueHandler{
		venueController: app.Controllers.Venue,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VenueHandler) Register() {
	venues := h.router.Group("/venues")

	venues.Get("", h.getAreas)
	venues.Post("/search", h.searchVenues)
	venues.Get("/:id", h.getVenue)
	venues.Post("", h.createVenue)
	venues.Post("/:id/edit", h.editVenue)
	venues.Delete("/:id", h.deleteVenue)
}

func (h *VenueHandler) getAreas(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("getAreas")

	areas, err := h.venueController.GetAreas(c.UserContext())
	if err != nil {
		_ = log.Err("Failed to retrieve venue areas", err)
		return respondReadError(c, err)
	}

	return c.JSON(fiber.Map{
		"areas": areas,
	})
}

func (h *VenueHandler) searchVenues(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("searchVenues")

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondReadError(c, err)
	}

	result, err := h.venueController.Search(c.UserContext(), form.Get(types.FormSearchTerm))
	if err != nil {
		_ = log.Err("Failed to search venues", err)
		return respondReadError(c, err)
	}

	return c.JSON(result)
}

func (h *VenueHandler) getVenue(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("getVenue")

	id, err := pathID(c)
	if err != nil {
		return respondReadError(c, err)
	}

	venue, err := h.venueController.Get(c.UserContext(), id)
	if err != nil {
		log.Warn("Failed to retrieve venue", "id", id, "kind", types.Classify(err).String(), "error", err)
		return respondReadError(c, err)
	}

	return c.JSON(fiber.Map{
		"venue": venue,
	})
}

func (h *VenueHandler) createVenue(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("createVenue")

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondOutcome(c, types.Failed(types.Classify(err), "/"))
	}

	return respondOutcome(c, h.venueController.Create(c.UserContext(), form))
}

func (h *VenueHandler) editVenue(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("editVenue")

	id, err := pathID(c)
	if err != nil {
		return respondOutcome(c, types.Failed(types.Classify(err), "/"))
	}

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondOutcome(c, types.Failed(types.Classify(err), c.Path()))
	}

	return respondOutcome(c, h.venueController.Edit(c.UserContext(), id, form))
}

// deleteVenue always reports success; a venue that is already gone needs no deleting.
func (h *VenueHandler) deleteVenue(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("venue_handler").Function("deleteVenue")

	id, err := pathID(c)
	if err != nil {
		log.Warn("Invalid venue id", "id", c.Params("id"))
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Venue not found!",
		})
	}

	outcome := h.venueController.Delete(c.UserContext(), id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": outcome.Message,
	})
}
