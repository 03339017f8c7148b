package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Events *EventHandler
	Guests *GuestHandler
	Users  *UserHandler
}

// RegisterRoutes mounts every console endpoint on the engine.
// Middleware is attached by the caller before registration.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
		}

		events := v1.Group("/events")
		{
			events.GET("", h.Events.List)
			events.POST("", h.Events.Create)
			events.GET("/:id", h.Events.Get)
			events.PUT("/:id", h.Events.Update)
			events.DELETE("/:id", h.Events.Delete)

			events.GET("/:id/assignments", h.Guests.Board)

			guests := events.Group("/:id/guests")
			{
				guests.GET("", h.Guests.List)
				guests.POST("", h.Guests.Create)
				guests.PUT("/:guest_id", h.Guests.Update)
				guests.DELETE("/:guest_id", h.Guests.Delete)
				guests.PATCH("/:guest_id/assignment", h.Guests.Assign)
				guests.POST("/:guest_id/checkin", h.Guests.CheckIn)
				guests.POST("/:guest_id/checkout", h.Guests.CheckOut)
			}
		}

		users := v1.Group("/users")
		{
			users.GET("", h.Users.List)
			users.POST("", h.Users.Create)
			users.PUT("/:id", h.Users.Update)
			users.DELETE("/:id", h.Users.Delete)
		}
	}
}
