package handlers

import (
	"context"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	cache   *cache.CacheService
	timeout time.Duration
}

// NewHealthHandler builds the handler. cacheSvc may be nil when Redis is
// not configured.
func NewHealthHandler(checks map[string]HealthCheck, cacheSvc *cache.CacheService) *HealthHandler {
	return &HealthHandler{checks: checks, cache: cacheSvc, timeout: 2 * time.Second}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = "unavailable"
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cache is not configured"})
	}
	poolStats := h.cache.GetStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
