package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	"skillswap/internal/database/mongodb"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/database/seeder"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/infrastructure/persistence/memory"
	mongorepo "skillswap/internal/infrastructure/persistence/mongo"
	"skillswap/internal/logging"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/ws"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies. The store is chosen by
// cfg.Database.Driver.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Mongo *mongodb.Client
	Cache *cache.Redis

	Users  user.Repository
	Skills skill.Repository

	JWT jwt.Service
	Hub *ws.Hub
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = logging.OrNop(logger)
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL, cfg.App.AppName),
		Hub:    ws.NewHub(logger.Named("ws")),
	}

	var rawSkills skill.Repository
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Users = repository.NewPostgresUserRepository(db)
		rawSkills = repository.NewPostgresSkillRepository(db)

	case config.DriverMongo:
		mc, err := mongodb.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.Mongo = mc
		c.Users = mongorepo.NewUserRepository(mc.Collection(mongodb.UsersCollection))
		rawSkills = mongorepo.NewSkillRepository(mc.Collection(mongodb.SkillsCollection))

	case config.DriverMemory:
		store := memory.NewStore()
		c.Users = store.Users()
		rawSkills = store.Skills()

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Database.Driver)
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"))
	c.Skills = cache.NewSkillCatalog(rawSkills, c.Cache, logger.Named("cache"))

	return c, nil
}

// Migrate brings the store schema up to date: SQL migrations for Postgres,
// unique indexes for Mongo. The memory store needs nothing.
func (c *Container) Migrate(ctx context.Context) error {
	switch {
	case c.DB != nil:
		applied, err := migration.Runner{FS: migration.Files()}.Run(ctx, c.DB.SQLDB())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		for _, m := range applied {
			c.Logger.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
		}
	case c.Mongo != nil:
		names, err := c.Mongo.EnsureIndexes(ctx)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Logger.Info("indexes ensured", zap.Strings("indexes", names))
	}
	return nil
}

func (c *Container) Seed(ctx context.Context) error {
	return seeder.Runner{Seeders: seeder.Defaults(c.Skills), Logger: c.Logger}.Run(ctx)
}

// Ping checks the active store.
func (c *Container) Ping(ctx context.Context) error {
	switch {
	case c.DB != nil:
		return c.DB.Ping(ctx)
	case c.Mongo != nil:
		return c.Mongo.Ping(ctx)
	default:
		return nil
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Close(ctx))
	}
	return errors.Join(errs...)
}
