// Package app assembles the storage backend, services and HTTP routes from
// configuration. The binaries under cmd/ share it.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/api"
	"github.com/pageza/nutriai/backend/internal/database"
	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/storage"
)

// App holds every long-lived component of the backend.
type App struct {
	Config *config.Config
	Store  *storage.KeyValueStore
	Conns  *database.Connections

	Accounts  *service.AccountService
	Profiles  *service.ProfileService
	Theme     *service.ThemeService
	Hydration *service.HydrationService
	CheckIns  *service.CheckInService
	Library   *service.LibraryService
	// Planner and Coach are nil when no Gemini API key is configured.
	Planner *service.PlannerService
	Coach   *service.CoachService
	Limiter *middleware.RateLimiter
}

// New opens the configured backend and builds the services on top of it.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	conns, err := database.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := storage.New(conns.Backend,
		storage.WithLogger(log.Named("storage")),
		storage.WithLocation(loc))
	library := service.NewLibraryService(store)

	a := &App{
		Config:    cfg,
		Store:     store,
		Conns:     conns,
		Accounts:  service.NewAccountService(store, cfg.JWTSecret),
		Profiles:  service.NewProfileService(store),
		Theme:     service.NewThemeService(store),
		Hydration: service.NewHydrationService(store),
		CheckIns:  service.NewCheckInService(store, library),
		Library:   library,
		Limiter:   middleware.NewGenerationRateLimiter(conns.Redis, cfg.GenerationRateLimit, log.Named("ratelimit")),
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, AI generation is disabled")
	} else {
		generator, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log.Named("gemini"))
		if err != nil {
			conns.Close()
			return nil, err
		}
		a.Planner = service.NewPlannerService(generator, library, store, log.Named("planner"))
		a.Coach = service.NewCoachService(generator, store, log.Named("coach"))
	}

	log.Info("application assembled",
		zap.String("storage", cfg.StorageBackend),
		zap.String("day_boundary", loc.String()),
		zap.Bool("generation", a.Planner != nil))
	return a, nil
}

// Services returns the handler dependencies.
func (a *App) Services() api.Services {
	svc := api.Services{
		Accounts:  a.Accounts,
		Profiles:  a.Profiles,
		Theme:     a.Theme,
		Hydration: a.Hydration,
		CheckIns:  a.CheckIns,
		Library:   a.Library,
		Limiter:   a.Limiter,
		Health:    a.Conns.Ping,
	}
	// Leave the interface nil rather than holding a nil pointer.
	if a.Planner != nil {
		svc.Planner = a.Planner
	}
	if a.Coach != nil {
		svc.Coach = a.Coach
	}
	return svc
}

// Close releases the storage connections.
func (a *App) Close() error {
	return a.Conns.Close()
}
