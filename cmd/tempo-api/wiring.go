package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonnyWalker81/tempo/internal/config"
	"github.com/JonnyWalker81/tempo/internal/handlers"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/recent"
	"github.com/JonnyWalker81/tempo/internal/repository"
	"github.com/JonnyWalker81/tempo/internal/repository/memory"
	"github.com/JonnyWalker81/tempo/internal/repository/sqlstore"
	"github.com/JonnyWalker81/tempo/internal/service"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

// app holds everything the commands share
type app struct {
	cfg      *config.Config
	location *time.Location
	repos    repository.Repositories
	recent   recent.Store
	supabase *supabase.Client

	// saveCategory stores categories found while importing calendars
	saveCategory func(ctx context.Context, c models.Category) error
	checks       map[string]handlers.HealthCheck
	closers      []func() error
}

// setupLogger installs the configured logger as the process default
func setupLogger(cfg *config.Config) logger.Logger {
	l := logger.New(logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Backend: cfg.Log.Backend,
	})
	logger.SetDefault(l)
	return l
}

// newApp loads configuration and connects storage
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogger(cfg)

	loc, err := cfg.Engine.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid engine timezone: %w", err)
	}

	a := &app{
		cfg:      cfg,
		location: loc,
		checks:   make(map[string]handlers.HealthCheck),
	}
	if cfg.Supabase.URL != "" {
		a.supabase = supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	}

	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openRecentStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("storage ready",
		logger.String("driver", cfg.Storage.Driver),
		logger.Bool("redis", cfg.Redis.Address != ""),
		logger.String("timezone", loc.String()),
	)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch driver := a.cfg.Storage.Driver; driver {
	case config.DriverSupabase:
		client := a.supabase
		a.repos = repository.Repositories{
			Events:      repository.NewEventRepository(client),
			Moods:       repository.NewMoodEntryRepository(client),
			Feedback:    repository.NewFeedbackRepository(client),
			Suggestions: repository.NewSuggestionRepository(client),
		}
		a.saveCategory = func(ctx context.Context, c models.Category) error {
			_, err := client.Upsert(ctx, "categories", []models.Category{c}, "id")
			return err
		}

	case config.DriverPostgres, config.DriverSQLite:
		dialect := sqlstore.DialectPostgres
		if driver == config.DriverSQLite {
			dialect = sqlstore.DialectSQLite
		}
		store, err := sqlstore.Open(ctx, dialect, a.cfg.Storage.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, store.Close)
		a.repos = store.Repositories()
		a.saveCategory = store.CreateCategory
		a.checks["storage"] = store.Ping

	case config.DriverMemory:
		events := memory.NewEventStore()
		a.repos = repository.Repositories{
			Events:      events,
			Moods:       memory.NewMoodStore(),
			Feedback:    memory.NewFeedbackStore(),
			Suggestions: memory.NewSuggestionStore(),
		}
		a.saveCategory = func(_ context.Context, c models.Category) error {
			events.AddCategory(c)
			return nil
		}

	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}
	return nil
}

func (a *app) openRecentStore(ctx context.Context) error {
	window := a.cfg.Engine.RecentWindow
	if a.cfg.Redis.Address == "" {
		a.recent = recent.NewMemoryStore(window)
		return nil
	}

	rdb, err := recent.Dial(ctx, a.cfg.Redis.Address, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, rdb.Close)
	a.recent = recent.NewRedisStore(rdb, window)
	a.checks["redis"] = func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
	return nil
}

// options maps engine configuration onto the services
func (a *app) options() service.Options {
	e := a.cfg.Engine
	return service.Options{
		LookbackDays:     e.LookbackDays,
		LookaheadDays:    e.LookaheadDays,
		DistributionDays: e.DistributionDays,
		DefaultLimit:     e.DefaultLimit,
		RecentWindow:     e.RecentWindow,
		SuggestionMaxAge: e.SuggestionMaxAge,
		Location:         a.location,
	}
}

func (a *app) recommendationService() service.RecommendationService {
	return service.NewRecommendationService(a.repos.Events, a.repos.Moods, a.recent, nil, a.options())
}

func (a *app) scheduleService() service.ScheduleService {
	return service.NewScheduleService(a.repos.Events, a.repos.Suggestions, a.options())
}

// Close releases connections in reverse order of opening
func (a *app) Close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		logger.Warn("failed to close resources", logger.Err(err))
	}
	_ = logger.Sync(logger.Default())
}
