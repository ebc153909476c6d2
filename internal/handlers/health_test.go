package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantBody   string
	}{
		{"all up", map[string]HealthCheck{"database": ok, "redis": ok}, fiber.StatusOK, "ok"},
		{"redis down", map[string]HealthCheck{"database": ok, "redis": down}, fiber.StatusServiceUnavailable, "degraded"},
		{"no checks", nil, fiber.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			h := NewHealthHandler(tt.checks, nil)
			app.Get("/health", h.Check)
			app.Get("/cache", h.CacheStats)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Status   string            `json:"status"`
				Services map[string]string `json:"services"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Len(t, body.Services, len(tt.checks))

			resp, err = app.Test(httptest.NewRequest("GET", "/cache", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		})
	}
}
