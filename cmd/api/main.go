package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/config"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	appHTTP "github.com/mol-coffee/mol-backend-go/internal/handler/http"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/cache"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/cron"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/database"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/email"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/jwt"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/sse"
	"github.com/mol-coffee/mol-backend-go/internal/repository/postgresql"
	activityService "github.com/mol-coffee/mol-backend-go/internal/service/activity"
	notificationService "github.com/mol-coffee/mol-backend-go/internal/service/notification"
	payrollService "github.com/mol-coffee/mol-backend-go/internal/service/payroll"
	profileService "github.com/mol-coffee/mol-backend-go/internal/service/profile"
	rateService "github.com/mol-coffee/mol-backend-go/internal/service/rate"
	shiftService "github.com/mol-coffee/mol-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	loc := localtime.Zone(cfg.App.TimezoneOffsetMinutes)

	profileRepo := postgresql.NewProfileRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	confirmationRepo := postgresql.NewConfirmationRepository(db)
	snapshotRepo := postgresql.NewSnapshotRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	gate := postgresql.NewPeriodGate(db)

	var summaryCache payroll.SummaryCache = cache.Noop{}
	var reminders payroll.ReminderLedger = cache.NewMemoryReminderLedger()
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		defer rdb.Close()
		summaryCache = cache.NewSummaryCache(rdb, cfg.Redis.SummaryTTL)
		reminders = cache.NewRedisReminderLedger(rdb)
	} else {
		slog.Warn("REDIS_ADDR not set, payroll cache disabled")
	}

	var mailer notificationService.Mailer
	if cfg.RabbitMQ.Enabled() {
		publisher, err := email.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.PublishTimeout)
		if err != nil {
			log.Fatal("Error connecting to rabbitmq: ", err)
		}
		defer publisher.Close()
		mailer = publisher
	} else {
		slog.Warn("RABBITMQ_URL not set, email notifications disabled")
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SSETokenTTL)
	hub := sse.NewHub(16)

	notifSvc := notificationService.NewNotificationService(notificationRepo, profileRepo, hub, mailer, notificationService.Config{
		AppURL: cfg.App.FrontendURL,
	})
	defer notifSvc.Stop()

	profileSvc := profileService.NewProfileService(profileRepo)
	activitySvc := activityService.NewActivityService(activityRepo, summaryCache)
	rateSvc := rateService.NewRateService(rateRepo, activityRepo, summaryCache, loc)
	shiftSvc := shiftService.NewShiftService(shiftRepo, profileRepo, activityRepo, gate, summaryCache, notifSvc, loc)
	payrollSvc := payrollService.NewPayrollService(payrollService.Dependencies{
		Gate:          gate,
		Periods:       periodRepo,
		Confirmations: confirmationRepo,
		Snapshots:     snapshotRepo,
		Shifts:        shiftRepo,
		Rates:         rateRepo,
		Profiles:      profileRepo,
		Cache:         summaryCache,
		Reminders:     reminders,
		Notifier:      notifSvc,
		Location:      loc,
		Now:           time.Now,
	})

	scheduler := cron.NewScheduler(ctx)
	cron.NewPayrollJobs(payrollSvc, cfg.Cron.ReminderInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(logger, cfg.AllowedOrigins(), JWTService, profileSvc, appHTTP.Handlers{
		Profile:      appHTTP.NewProfileHandler(profileSvc),
		Activity:     appHTTP.NewActivityHandler(activitySvc),
		Rate:         appHTTP.NewRateHandler(rateSvc),
		Shift:        appHTTP.NewShiftHandler(shiftSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService, profileSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
