package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/tempo/internal/handlers"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/middleware"
	"github.com/JonnyWalker81/tempo/internal/recent"
	"github.com/JonnyWalker81/tempo/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and the scheduled suggestion expiry sweep.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	if port != "" {
		cfg.Server.Port = port
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	schedule := a.scheduleService()
	opts := a.options()

	jobs, err := startJobs(ctx, a, schedule)
	if err != nil {
		return err
	}
	defer func() { <-jobs.Stop().Done() }()

	var secret []byte
	if cfg.Auth.JWTSecret != "" {
		secret = []byte(cfg.Auth.JWTSecret)
	}
	var verifier middleware.TokenVerifier
	if a.supabase != nil {
		verifier = a.supabase
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Env:             cfg.Server.Env,
		Production:      cfg.IsProduction(),
		CORSOrigins:     cfg.Server.CORSOrigins,
		JWTSecret:       secret,
		Verifier:        verifier,
		Recommendations: a.recommendationService(),
		Feedback:        service.NewFeedbackService(a.repos.Feedback, opts),
		Schedule:        schedule,
		HealthChecks:    a.checks,
		Location:        a.location,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			logger.String("port", cfg.Server.Port),
			logger.String("env", cfg.Server.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// startJobs schedules the expiry sweep and, for the in-process recent
// store, pruning of entries older than the rotation window
func startJobs(ctx context.Context, a *app, schedule service.ScheduleService) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(a.location))
	sweeper := service.NewSweeper(a.repos.Suggestions, schedule, a.cfg.Engine.SweepConcurrency)

	if _, err := c.AddFunc(a.cfg.Engine.ExpirySchedule, func() {
		if _, err := sweeper.Sweep(ctx); err != nil {
			logger.Error("suggestion sweep failed", logger.Err(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid expiry schedule: %w", err)
	}

	if mem, ok := a.recent.(*recent.MemoryStore); ok {
		if _, err := c.AddFunc("@every 1h", func() {
			if n := mem.Prune(time.Now()); n > 0 {
				logger.Debug("pruned recent suggestions", logger.Int("removed", n))
			}
		}); err != nil {
			return nil, fmt.Errorf("failed to schedule recent store pruning: %w", err)
		}
	}

	c.Start()
	logger.Info("background jobs started", logger.String("expiry_schedule", a.cfg.Engine.ExpirySchedule))
	return c, nil
}
