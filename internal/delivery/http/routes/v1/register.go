package v1

import (
	"skillswap/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the /api/v1 endpoints plus the middleware guarding them.
type Handlers struct {
	AuthHandler  *handler.AuthHandler
	UserHandler  *handler.UserHandler
	SkillHandler *handler.SkillHandler

	Auth      fiber.Handler
	RateLimit fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterAuth(r, h.AuthHandler, h.RateLimit)
	RegisterUsers(r, h.UserHandler, h.Auth)
	RegisterSkills(r, h.SkillHandler, h.Auth)
}

func RegisterAuth(r fiber.Router, authHandler *handler.AuthHandler, rateLimit fiber.Handler) {
	if authHandler == nil {
		return
	}

	var authGroup fiber.Router
	if rateLimit != nil {
		authGroup = r.Group("/auth", rateLimit)
	} else {
		authGroup = r.Group("/auth")
	}
	authHandler.RegisterRoutes(authGroup)
}
