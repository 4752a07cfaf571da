package handlers

import (
	"fyyur/internal/app"
	showController "fyyur/internal/controllers/shows"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ShowHandler struct {
	Handler
	showController showController.ShowControllerInterface
}

func NewShowHandler(app app.App, router fiber.Router) *ShowHandler {
	log := logger.New("handlers").File("show_handler")
	return &ShowHandler{
		showController: app.Controllers.Show,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ShowHandler) Register() {
	shows := h.router.Group("/shows")

	shows.Get("", h.getShows)
	shows.Post("", h.createShow)
}

func (h *ShowHandler) getShows(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("show_handler").Function("getShows")

	shows, err := h.showController.List(c.UserContext())
	if err != nil {
		_ = log.Err("Failed to retrieve shows", err)
		return respondReadError(c, err)
	}

	return c.JSON(fiber.Map{
		"shows": shows,
	})
}

func (h *ShowHandler) createShow(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("show_handler").Function("createShow")

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondOutcome(c, types.Failed(types.Classify(err), "/"))
	}

	return respondOutcome(c, h.showController.Create(c.UserContext(), form))
}
