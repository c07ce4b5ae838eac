package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thewhitewolf2411/TaskManager/internal/api/http/handlers"
)

func TestHealth_Live(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandler("taskmanagerappbe", "dev", nil, nil)
	app.Get("/health/live", h.Live)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "alive", parsed["status"])
	assert.Equal(t, "taskmanagerappbe", parsed["service"])
}

func TestHealth_ReadyReportsUnavailableStores(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandler("taskmanagerappbe", "dev", nil, nil)
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "credential_store")
	assert.Contains(t, string(body), "revocation_list")
}
