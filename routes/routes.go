package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Taimur-DevOps/rep-backend/config"
	"github.com/Taimur-DevOps/rep-backend/handlers"
)

func RegisterRoutes(e *echo.Echo, cfg config.App) {
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck)

	pc := handlers.NewPropertyController(cfg)
	properties := e.Group("/api/properties")
	// Specific paths before /:id so they are not captured as ids.
	properties.GET("/paginated", pc.GetPaginatedProperties)
	properties.GET("/search/paginated", pc.SearchPropertiesPaginated)
	properties.GET("/featured", pc.GetFeaturedProperties)
	properties.GET("/search", pc.SearchProperties)
	properties.GET("", pc.GetProperties)
	properties.POST("", pc.CreateProperty)
	properties.GET("/:id", pc.GetPropertyByID)
	properties.PUT("/:id", pc.UpdateProperty)
	properties.DELETE("/:id", pc.DeleteProperty)
	properties.DELETE("/:id/images/:imageIndex", pc.DeletePropertyImage)

	uc := handlers.NewUserController(cfg)
	users := e.Group("/api/users")
	users.GET("/search", uc.SearchUsers)
	users.GET("/paginated", uc.GetUsersPaginated)
	users.GET("", uc.GetUsers)
	users.GET("/:id", uc.GetUserByID)
	users.POST("", uc.CreateUser)
	users.PUT("/:id", uc.UpdateUser)
	users.DELETE("/:id", uc.DeleteUser)
	users.DELETE("/:id/images/:imageIndex", uc.DeleteUserImage)

	e.Any("/api/*", handlers.APINotFound)

	uploads := e.Group("/uploads", staticCORS)
	uploads.Static("/", cfg.UploadDir)
}

// staticCORS lets browsers load uploaded images cross-origin.
func staticCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", http.MethodGet)
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		return next(c)
	}
}
