package middleware

import (
	"net/http/httptest"
	"testing"

	"fyyur/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTraceApp() *fiber.App {
	m := New(config.Config{})
	app := fiber.New()
	app.Use(m.TraceID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTraceID_GeneratesWhenMissing(t *testing.T) {
	resp, err := newTraceApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	traceID := resp.Header.Get(TraceIDHeader)
	assert.Len(t, traceID, 36)
}

func TestTraceID_ReusesIncomingHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(TraceIDHeader, "trace-from-client")

	resp, err := newTraceApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, "trace-from-client", resp.Header.Get(TraceIDHeader))
}

func TestGetTraceID_Empty(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("[" + GetTraceID(c) + "]")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
