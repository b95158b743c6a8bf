package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Taimur-DevOps/rep-backend/config"
)

func Root(c echo.Context) error {
	return c.String(http.StatusOK, "API is running...")
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": []string{"/api/properties", "/api/users"},
	})
}

// APINotFound answers unmatched /api/* paths with the available surface so
// clients get a usable 404.
func APINotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"message": "API endpoint " + c.Request().URL.Path + " not found",
		"availableEndpoints": []string{
			"GET /api/properties",
			"POST /api/properties",
			"GET /api/properties/:id",
			"PUT /api/properties/:id",
			"DELETE /api/properties/:id",
			"GET /api/users",
			"POST /api/users",
			"GET /api/users/:id",
			"PUT /api/users/:id",
			"DELETE /api/users/:id",
		},
	})
}

// HTTPErrorHandler is the final catch-all: anything a handler did not map
// itself becomes a JSON response, defaulting to 500, with a stack trace
// outside production.
func HTTPErrorHandler(cfg config.App) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}

		body := map[string]interface{}{"message": message}
		if cfg.Env != "production" {
			body["stack"] = string(debug.Stack())
		}

		if err := c.JSON(code, body); err != nil {
			c.Logger().Error(err)
		}
	}
}
