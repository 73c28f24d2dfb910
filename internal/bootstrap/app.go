package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"dmappex-backend/internal/consensus"
	"dmappex-backend/internal/matching"
	"dmappex-backend/internal/services/health"
	"dmappex-backend/internal/shared/config"
	"dmappex-backend/internal/shared/server"
	"dmappex-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	Engine       *matching.Engine
	Panel        *consensus.Panel
	MatchService *matching.Service
	MatchHandler *matching.Handler
	Health       *health.Service
}

// Options lets callers override collaborators, mainly for tests.
type Options struct {
	Jitter matching.JitterSource
}

// Build wires the matching engine, optional consensus panel and router.
func Build(cfg config.Config, opts Options) (*App, error) {
	jitter := opts.Jitter
	if jitter == nil {
		jitter = matching.NewRandJitter(cfg.JitterSeed)
	}

	app := &App{
		Config: cfg,
		Engine: matching.NewEngine(matching.DefaultCatalog(), jitter),
		Health: health.NewService(nil),
	}

	if len(cfg.ConsensusProviders) > 0 {
		providers, err := consensus.NewProviders(cfg.ConsensusProviders)
		if err != nil {
			return nil, fmt.Errorf("consensus providers: %w", err)
		}
		app.Panel = consensus.NewPanel(providers, cfg.ConsensusTimeout)
		telemetry.Info("bootstrap.consensus", map[string]any{
			"providers": cfg.ConsensusProviders,
			"timeout":   cfg.ConsensusTimeout.String(),
		})
	}

	// Keep a nil *Panel out of the interface field.
	if app.Panel != nil {
		app.MatchService = matching.NewService(app.Engine, app.Panel)
	} else {
		app.MatchService = matching.NewService(app.Engine, nil)
	}
	app.MatchHandler = matching.NewHandler(app.MatchService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		MatchHandler: app.MatchHandler,
		Health:       app.Health,
	})
	return app, nil
}
