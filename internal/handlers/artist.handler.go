package handlers

import (
	"fyyur/internal/app"
	artistController "fyyur/internal/controllers/artists"
	"fyyur/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ArtistHandler struct {
	Handler
	artistController artistController.ArtistControllerInterface
}

func NewArtistHandler(app app.App, router fiber.Router) *ArtistHandler {
	log := logger.New("handlers").File("artist_handler")
	return &ArtistHandler{
		artistController: app.Controllers.Artist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ArtistHandler) Register() {
	artists := h.router.Group("/artists")

	artists.Get("", h.getArtists)
	artists.Post("/search", h.searchArtists)
	artists.Get("/:id", h.getArtist)
	artists.Post("", h.createArtist)
	artists.Post("/:id/edit", h.editArtist)
}

func (h *ArtistHandler) getArtists(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("artist_handler").Function("getArtists")

	artists, err := h.artistController.List(c.UserContext())
	if err != nil {
		_ = log.Err("Failed to retrieve artists", err)
		return respondReadError(c, err)
	}

	return c.JSON(fiber.Map{
		"artists": artists,
	})
}

func (h *ArtistHandler) searchArtists(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("artist_handler").Function("searchArtists")

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondReadError(c, err)
	}

	result, err := h.artistController.Search(c.UserContext(), form.Get(types.FormSearchTerm))
	if err != nil {
		_ = log.Err("Failed to search artists", err)
		return respondReadError(c, err)
	}

	return c.JSON(result)
}

func (h *ArtistHandler) getArtist(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("artist_handler").Function("getArtist")

	id, err := pathID(c)
	if err != nil {
		return respondReadError(c, err)
	}

	artist, err := h.artistController.Get(c.UserContext(), id)
	if err != nil {
		log.Warn("Failed to retrieve artist", "id", id, "kind", types.Classify(err).String(), "error", err)
		return respondReadError(c, err)
	}

	return c.JSON(fiber.Map{
		"artist": artist,
	})
}

func (h *ArtistHandler) createArtist(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("artist_handler").Function("createArtist")

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondOutcome(c, types.Failed(types.Classify(err), "/"))
	}

	return respondOutcome(c, h.artistController.Create(c.UserContext(), form))
}

func (h *ArtistHandler) editArtist(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("artist_handler").Function("editArtist")

	id, err := pathID(c)
	if err != nil {
		return respondOutcome(c, types.Failed(types.Classify(err), "/"))
	}

	form, err := parseForm(c)
	if err != nil {
		log.Warn("Invalid form body", "error", err)
		return respondOutcome(c, types.Failed(types.Classify(err), c.Path()))
	}

	return respondOutcome(c, h.artistController.Edit(c.UserContext(), id, form))
}
