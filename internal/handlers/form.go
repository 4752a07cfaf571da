package handlers

import (
	"strings"

	"fyyur/internal/types"
	"fyyur/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// parseForm collects every submitted field, keeping repeated keys such as genres.
// Both urlencoded and multipart bodies are accepted.
func parseForm(c *fiber.Ctx) (types.Form, error) {
	form := types.Form{}

	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		multipart, err := c.MultipartForm()
		if err != nil {
			return nil, types.Validationf("malformed multipart body: %v", err)
		}
		for key, values := range multipart.Value {
			for _, value := range values {
				form.Add(key, value)
			}
		}
		return form, nil
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form.Add(string(key), string(value))
	})

	return form, nil
}

// pathID reads the :id route parameter
func pathID(c *fiber.Ctx) (int, error) {
	return utils.ParseID("id", c.Params("id"))
}

// statusForKind maps a failure kind onto the HTTP status of the response
func statusForKind(kind types.FailureKind) int {
	switch kind {
	case types.FailureNone:
		return fiber.StatusOK
	case types.FailureValidation:
		return fiber.StatusBadRequest
	case types.FailureNotFound:
		return fiber.StatusNotFound
	case types.FailureConstraint:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondOutcome(c *fiber.Ctx, outcome types.Outcome) error {
	return c.Status(statusForKind(outcome.Kind)).JSON(outcome)
}

// respondReadError answers a failed lookup with the generic message and the
// status its failure kind maps to.
func respondReadError(c *fiber.Ctx, err error) error {
	return c.Status(statusForKind(types.Classify(err))).JSON(fiber.Map{
		"error": types.GenericFailureMessage,
	})
}
