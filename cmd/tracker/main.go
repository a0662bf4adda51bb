package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apiclient "github.com/tasksure/client/api/client"
	"github.com/tasksure/client/domain"
	"github.com/tasksure/client/internal/config"
	"github.com/tasksure/client/internal/infrastructure/snapshot"
	"github.com/tasksure/client/internal/schedule"
	"github.com/tasksure/client/internal/services/lifecycle"
	"github.com/tasksure/client/internal/services/monitor"
	"github.com/tasksure/client/pkg/logger"
	"github.com/tasksure/client/usecase/calendar"
	"github.com/tasksure/client/usecase/quotes"
	"github.com/tasksure/client/usecase/store"
	"github.com/tasksure/client/usecase/timer"
)

func main() {
	focus := flag.Bool("focus", false, "start a Pomodoro focus session on boot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	api := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, logger.Named(zapLogger, "api"))

	sess, err := openSession(appCtx, cfg, api)
	if err != nil {
		zapLogger.Fatal("authentication failed", zap.Error(err))
	}
	if me, err := api.Me(appCtx, sess); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			zapLogger.Fatal("session rejected by server", zap.Error(err))
		}
		zapLogger.Warn("could not verify session", zap.Error(err))
	} else {
		zapLogger.Info("signed in", zap.String("username", me.Username))
	}

	var snaps store.Snapshots
	if cfg.Snapshot.Enabled {
		boltStore, err := snapshot.Open(cfg.Snapshot.Path, cfg.Snapshot.Bucket)
		if err != nil {
			zapLogger.Fatal("failed to open snapshot store", zap.Error(err))
		}
		manager.Register("snapshot", func(ctx context.Context) error {
			return boltStore.Close()
		})
		snaps = boltStore
	}

	taskStore := store.New(api, snaps, logger.Named(zapLogger, "store"))
	if taskStore.RestoreSnapshot() {
		zapLogger.Info("snapshot restored",
			zap.Int("tasks", len(taskStore.Tasks())),
			zap.Time("saved_at", taskStore.LoadedAt()))
	}

	mon := monitor.New(api, cfg.Sync.MonitorInterval, logger.Named(zapLogger, "monitor"))
	mon.Start()
	manager.RegisterStopper("monitor", mon)

	sched := schedule.NewCron(logger.Named(zapLogger, "scheduler"))
	manager.Register("scheduler", func(ctx context.Context) error {
		sched.Shutdown(ctx)
		return nil
	})

	rotator := quotes.New(sched)
	if err := rotator.Start(cfg.Quotes.Interval); err != nil {
		zapLogger.Fatal("quote rotation failed to start", zap.Error(err))
	}
	manager.RegisterStopper("quotes", rotator)

	engine := timer.New(sched, func() {
		zapLogger.Info("session complete, take a break",
			zap.String("rest", timer.FormatSeconds(timer.RestSeconds)))
	}, logger.Named(zapLogger, "timer"))
	manager.Register("timer", func(ctx context.Context) error {
		engine.Pause()
		return nil
	})
	if *focus {
		if err := engine.Start(); err != nil {
			zapLogger.Error("timer failed to start", zap.Error(err))
		}
	}

	resync := func() {
		if status := mon.GetStatus(); !status.LastCheck.IsZero() && !status.Online {
			zapLogger.Debug("skipping resync (server unreachable)")
			return
		}

		ctx, cancelReq := context.WithTimeout(appCtx, cfg.Context.RequestTimeout)
		defer cancelReq()

		if err := taskStore.LoadAll(ctx, sess); err != nil {
			zapLogger.Warn("resync failed", zap.Error(err))
			return
		}
		logDashboard(zapLogger, taskStore, engine, rotator, taskStore.CompletionCalendar(ctx, sess))
	}

	resync()
	if _, err := sched.Every(cfg.Sync.Interval, resync); err != nil {
		zapLogger.Fatal("resync schedule failed", zap.Error(err))
	}

	zapLogger.Info("tracker started",
		zap.String("server", cfg.API.BaseURL),
		zap.Bool("focus_session", *focus))

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openSession produces the bearer session from either a pre-issued
// token or a login with the configured credentials.
func openSession(ctx context.Context, cfg *config.Config, api *apiclient.Client) (*domain.Session, error) {
	if cfg.Auth.Token != "" {
		sess := domain.NewSession(cfg.Auth.Token)
		return &sess, nil
	}
	if cfg.Auth.Email != "" {
		return api.Login(ctx, cfg.Auth.Email, cfg.Auth.Password)
	}
	return nil, domain.ErrUnauthenticated
}

func logDashboard(zapLogger *zap.Logger, taskStore *store.Store, engine *timer.Engine, rotator *quotes.Rotator, completions []time.Time) {
	stats := taskStore.Stats()
	grid := calendar.MonthGrid(time.Now(), completions)

	var days []string
	for _, cell := range grid {
		if cell.Completed {
			days = append(days, strconv.Itoa(cell.Day))
		}
	}

	zapLogger.Info("dashboard",
		zap.Int("tasks", len(taskStore.Tasks())),
		zap.Int("total_points", stats.TotalPoints),
		zap.Int("current_streak", stats.CurrentStreak),
		zap.Int("longest_streak", stats.LongestStreak),
		zap.String("completed_days", strings.Join(days, ",")),
		zap.String("timer", engine.Format()),
		zap.Bool("timer_running", engine.Running()),
		zap.String("quote", rotator.Current()))
}
