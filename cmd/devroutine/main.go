package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"devroutine/api"
	"devroutine/config"
	"devroutine/handlers"
	"devroutine/internal/logging"
	"devroutine/services/dashboard"
	"devroutine/services/sessions"
	"devroutine/utils"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML settings file (default $"+config.EnvConfigPath+")")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	logFile := flag.String("log-file", "", "rotating log file, overrides log.file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(handlers.GetBuildVersion())
		return
	}

	settings, err := config.Load(afero.NewOsFs(), config.ResolvePath(*configPath))
	if err != nil {
		log.Fatalf("[main] %v", err)
	}
	if *addr != "" {
		settings.Server.Addr = *addr
	}
	if *logFile != "" {
		settings.Log.File = *logFile
	}

	closer, err := logging.Setup(settings.Log)
	if err != nil {
		log.Fatalf("[main] log setup: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings); err != nil {
		log.Printf("[main] %v", err)
		closer.Close()
		os.Exit(1)
	}
	log.Println("[main] bye")
}

type app struct {
	server   *http.Server
	sessions *sessions.Service
	limiter  *api.IPRateLimiter
}

// newApp wires settings into the HTTP server and its background services.
func newApp(settings config.Settings) *app {
	dashCfg := settings.DashboardConfig()
	sessionsSvc := sessions.NewService(func() *dashboard.Dashboard {
		return dashboard.New(dashCfg, time.Now)
	}, settings.Sessions.IdleTimeout.Duration, settings.Sessions.MaxSessions)

	trustProxy := settings.RateLimit.TrustProxyHeaders
	limiter := api.NewPerMinuteLimiter(settings.RateLimit.RequestsPerMinute, settings.RateLimit.Burst).
		TrustProxyHeaders(trustProxy)

	r := utils.NewRouter(settings.CORS.AllowedOrigins)
	r.Use(api.RequestLogger)
	handlers.RegisterRoutes(r, handlers.Routes{
		Sessions:          sessionsSvc,
		Limiter:           limiter,
		TrustProxyHeaders: trustProxy,
	})

	return &app{
		server: &http.Server{
			Addr:         settings.Server.Addr,
			Handler:      r,
			ReadTimeout:  settings.Server.ReadTimeout.Duration,
			WriteTimeout: settings.Server.WriteTimeout.Duration,
		},
		sessions: sessionsSvc,
		limiter:  limiter,
	}
}

// run serves until ctx is cancelled or the listener fails, then shuts down
// within the configured grace period.
func run(ctx context.Context, settings config.Settings) error {
	a := newApp(settings)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		a.sessions.Run(ctx, settings.Sessions.CleanupInterval.Duration)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		a.limiter.Run(ctx)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		log.Printf("[server] listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		log.Println("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownGrace.Duration)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return p.Wait()
}
