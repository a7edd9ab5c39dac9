package app

import (
	"context"
	"fmt"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"
	v1 "skillswap/internal/delivery/http/routes/v1"
	"skillswap/internal/pkg/username"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of c. The caller runs c.Hub.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, prepares the store and starts the hub.
// The returned cleanup stops the hub and releases connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("container: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := c.Migrate(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}
	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverMemory {
		if err := c.Seed(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.Named("http"))
	errMw := middleware.NewErrorMiddleware(logger.Named("http"))
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cookie := handler.SessionCookie{Secure: c.Config.Session.CookieSecure}
	authMw := middleware.NewAuthMiddleware(c.JWT)
	rateMw := middleware.NewRateLimitMiddleware(c.Config.RateLimit)

	authUC := usecase.NewAuthUsecase(c.Users, c.Skills, username.NewGenerator(), c.JWT)
	userUC := usecase.NewUserUsecase(c.Users, c.Skills, c.Hub, c.JWT)
	skillUC := usecase.NewSkillUsecase(c.Skills)

	api := v1.Handlers{
		AuthHandler:  handler.NewAuthHandler(authUC, cookie),
		UserHandler:  handler.NewUserHandler(userUC, cookie),
		SkillHandler: handler.NewSkillHandler(skillUC),
		Auth:         authMw.Middleware(),
		RateLimit:    rateMw.Middleware(),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c),
		api,
		ws.NewHandler(c.Hub, c.Logger.Named("ws"), middleware.CtxUserIDKey),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
