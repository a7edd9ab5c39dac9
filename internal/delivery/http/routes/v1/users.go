package v1

import (
	"skillswap/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, auth fiber.Handler) {
	if r == nil {
		return
	}
	if userHandler == nil || auth == nil {
		return
	}

	r.Get("/profiles", userHandler.ViewProfile)

	userHandler.RegisterRoutes(r.Group("/me", auth))
}
