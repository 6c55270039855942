// Package app wires configuration, clients, services, and servers together.
package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/fpl-assistant/external/fpl"
	"github.com/riskibarqy/fpl-assistant/external/fplauth"
	"github.com/riskibarqy/fpl-assistant/internal/config"
	"github.com/riskibarqy/fpl-assistant/internal/domain/session"
	"github.com/riskibarqy/fpl-assistant/internal/interfaces/mcptool"
	"github.com/riskibarqy/fpl-assistant/internal/interfaces/webauth"
	"github.com/riskibarqy/fpl-assistant/internal/platform/diskcache"
	idgen "github.com/riskibarqy/fpl-assistant/internal/platform/id"
	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/platform/resilience"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

// App owns the two server surfaces: the MCP tool server and the web login
// flow. Run blocks until the context ends and both have shut down.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	mcp *mcptool.Server
	web *http.Server
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cache, err := diskcache.NewStore(cfg.CacheDir, cfg.CacheTTLHours)
	if err != nil {
		return nil, fmt.Errorf("open cache directory: %w", err)
	}

	gateway := fpl.NewClient(fpl.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
	auth := fplauth.NewTokenClient(fplauth.Config{
		LoginURL:    cfg.FPLAuthURL,
		RedirectURI: cfg.FPLAuthRedirectURI,
		Timeout:     cfg.FPLTimeout,
		Logger:      logger,
	})

	refData := usecase.NewRefDataService(cache, gateway, logger)
	sessions := usecase.NewSessionService(
		session.NewStore[usecase.Session](),
		auth,
		gateway,
		idgen.NewRandomGenerator(),
		logger,
		cfg.PublicBaseURL,
	)
	players := usecase.NewPlayerService(refData)
	teams := usecase.NewTeamService(refData)
	gameweeks := usecase.NewGameweekService(refData)
	fixtures := usecase.NewFixtureService(refData, gameweeks, teams)
	squad := usecase.NewSquadService(refData, logger)
	transfers := usecase.NewTransferService(refData, players, gameweeks, logger)
	leagues := usecase.NewLeagueService(refData)
	chips := usecase.NewChipService(refData, squad, gameweeks)
	refresh := usecase.NewRefreshService(refData, cfg.RefreshWorkers, logger)

	mcpServer := mcptool.NewServer(cfg.ServiceName, cfg.ServiceVersion, mcptool.Services{
		RefData:   refData,
		Sessions:  sessions,
		Players:   players,
		Teams:     teams,
		Gameweeks: gameweeks,
		Fixtures:  fixtures,
		Squad:     squad,
		Transfers: transfers,
		Leagues:   leagues,
		Chips:     chips,
		Refresh:   refresh,
	}, usecase.Session{Gateway: gateway}, logger)

	a := &App{cfg: cfg, logger: logger, mcp: mcpServer}
	if cfg.WebEnabled {
		a.web = &http.Server{
			Addr:         cfg.WebAddr,
			Handler:      webauth.NewRouter(webauth.NewHandler(sessions, logger), logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
	}

	return a, nil
}

// Run serves the web login flow and the MCP transport until ctx is done.
// Either server failing cancels the other.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 3)
	var wg conc.WaitGroup

	if a.web != nil {
		wg.Go(func() {
			a.logger.Info("web login server starting", "addr", a.web.Addr)
			if err := a.web.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("web server: %w", err)
				cancel()
			}
		})
		wg.Go(func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := a.web.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("web server shutdown failed", "error", err)
			}
		})
	}

	wg.Go(func() {
		defer cancel()
		if err := a.serveMCP(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			errs <- fmt.Errorf("mcp server: %w", err)
		}
	})

	wg.Wait()
	close(errs)
	return <-errs
}

func (a *App) serveMCP(ctx context.Context) error {
	if a.cfg.MCPTransport == config.MCPTransportHTTP {
		server := &http.Server{
			Addr:    a.cfg.MCPAddr,
			Handler: a.mcp.HTTPHandler(),
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		a.logger.Info("mcp http server starting", "addr", a.cfg.MCPAddr)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	a.logger.Info("mcp stdio server starting")
	return a.mcp.RunStdio(ctx)
}
