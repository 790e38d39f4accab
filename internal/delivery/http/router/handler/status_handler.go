package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root answers the unauthenticated liveness probe at the API root.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"api": "up"})
}

// HealthCheck answers orchestrator health probes.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
