package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fyyur/config"
	"fyyur/internal/app"
	"fyyur/internal/database"
	"fyyur/internal/handlers/middleware"
	"fyyur/internal/testutil"
	"fyyur/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*fiber.App, database.DB) {
	t.Helper()

	db := testutil.NewTestDB(t)
	application, err := app.Build(db, config.Config{GeneralVersion: "test", Environment: "test"})
	require.NoError(t, err)

	server := fiber.New()
	require.NoError(t, Router(server, application))

	return server, db
}

func postForm(t *testing.T, server *fiber.App, path string, values url.Values) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return do(t, server, req)
}

func do(t *testing.T, server *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := server.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &payload), string(body))
	}

	return resp, payload
}

func fillmoreValues() url.Values {
	return url.Values{
		types.FormName:        {"The Fillmore"},
		types.FormAddress:     {"1805 Geary Blvd"},
		types.FormCity:        {"San Francisco"},
		types.FormState:       {"CA"},
		types.FormWebsiteLink: {"https://www.thefillmore.com"},
		types.FormGenres:      {"Rock", "Jazz", "Rock"},
	}
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, statusForKind(types.FailureNone))
	assert.Equal(t, fiber.StatusBadRequest, statusForKind(types.FailureValidation))
	assert.Equal(t, fiber.StatusNotFound, statusForKind(types.FailureNotFound))
	assert.Equal(t, fiber.StatusConflict, statusForKind(types.FailureConstraint))
	assert.Equal(t, fiber.StatusInternalServerError, statusForKind(types.FailureInternal))
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	resp, payload := do(t, server, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "test", payload["version"])
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))
}

func TestVenueRoutes(t *testing.T) {
	server, db := newTestServer(t)

	resp, payload := postForm(t, server, "/venues", fillmoreValues())
	require.Equal(t, fiber.StatusOK, resp.StatusCode, payload)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Venue The Fillmore was successfully listed!", payload["message"])
	assert.Equal(t, "/", payload["redirect"])
	assert.Equal(t, int64(2), testutil.Count(t, db, "venue_genres"))

	resp, payload = do(t, server, httptest.NewRequest(http.MethodGet, "/venues", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	areas := payload["areas"].([]any)
	require.Len(t, areas, 1)
	assert.Equal(t, "San Francisco", areas[0].(map[string]any)["city"])

	resp, payload = postForm(t, server, "/venues/search", url.Values{types.FormSearchTerm: {"Fill"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["count"])

	resp, payload = do(t, server, httptest.NewRequest(http.MethodGet, "/venues/1", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	venue := payload["venue"].(map[string]any)
	assert.Equal(t, "The Fillmore", venue["name"])
	assert.Equal(t, float64(0), venue["upcomingShowsCount"])

	edit := fillmoreValues()
	edit.Set(types.FormName, "The Fillmore SF")
	resp, payload = postForm(t, server, "/venues/1/edit", edit)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, payload)
	assert.Equal(t, "/venues/1", payload["redirect"])

	resp, payload = do(t, server, httptest.NewRequest(http.MethodDelete, "/venues/1", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, int64(0), testutil.Count(t, db, "venues"))

	resp, payload = do(t, server, httptest.NewRequest(http.MethodDelete, "/venues/1", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Venue not found!", payload["message"])
}

func TestVenueRoutes_Failures(t *testing.T) {
	server, db := newTestServer(t)

	seeking := fillmoreValues()
	seeking.Set(types.FormLookingForArtist, types.SeekingYes)
	resp, payload := postForm(t, server, "/venues", seeking)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, types.GenericFailureMessage, payload["message"])
	assert.Equal(t, int64(0), testutil.Count(t, db, "cities"))

	resp, payload = postForm(t, server, "/venues/99/edit", fillmoreValues())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "/venues/99", payload["redirect"])

	resp, _ = do(t, server, httptest.NewRequest(http.MethodGet, "/venues/99", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, server, httptest.NewRequest(http.MethodGet, "/venues/abc", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestArtistRoutes_Multipart(t *testing.T) {
	server, db := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := [][2]string{
		{types.FormName, "Guns N Petals"},
		{types.FormCity, "San Francisco"},
		{types.FormState, "CA"},
		{types.FormGenres, "Rock n Roll"},
		{types.FormGenres, "Grunge"},
	}
	for _, field := range fields {
		require.NoError(t, writer.WriteField(field[0], field[1]))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/artists", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())

	resp, payload := do(t, server, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, payload)
	assert.Equal(t, "Artist Guns N Petals was successfully listed!", payload["message"])
	assert.Equal(t, int64(2), testutil.Count(t, db, "artist_genres"))

	resp, payload = do(t, server, httptest.NewRequest(http.MethodGet, "/artists", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, payload["artists"], 1)

	resp, payload = postForm(t, server, "/artists/search", url.Values{types.FormSearchTerm: {"Petals"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["count"])

	resp, _ = do(t, server, httptest.NewRequest(http.MethodGet, "/artists/1", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestShowRoutes(t *testing.T) {
	server, db := newTestServer(t)

	resp, _ := postForm(t, server, "/venues", fillmoreValues())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = postForm(t, server, "/artists", url.Values{
		types.FormName:  {"Guns N Petals"},
		types.FormCity:  {"San Francisco"},
		types.FormState: {"CA"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, payload := postForm(t, server, "/shows", url.Values{
		types.FormArtistID:  {"1"},
		types.FormVenueID:   {"1"},
		types.FormStartTime: {"2024-13-01 10:00:00"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, payload["success"])

	resp, _ = postForm(t, server, "/shows", url.Values{
		types.FormArtistID:  {"42"},
		types.FormVenueID:   {"1"},
		types.FormStartTime: {"2024-05-01 10:00:00"},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(0), testutil.Count(t, db, "shows"))

	resp, payload = postForm(t, server, "/shows", url.Values{
		types.FormArtistID:  {"1"},
		types.FormVenueID:   {"1"},
		types.FormStartTime: {"2035-05-01 21:00:00"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, payload)
	assert.Equal(t, "Show was successfully listed!", payload["message"])

	resp, payload = do(t, server, httptest.NewRequest(http.MethodGet, "/shows", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	shows := payload["shows"].([]any)
	require.Len(t, shows, 1)
	assert.Equal(t, "The Fillmore", shows[0].(map[string]any)["venueName"])

	metricsResp, err := server.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	exposition, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, metricsResp.StatusCode)
	assert.Contains(t, string(exposition), "fyyur_submissions_total")
}
