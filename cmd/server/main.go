package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/config"
	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
	v1 "github.com/clinagenda/clinagenda/internal/handler/v1"
	"github.com/clinagenda/clinagenda/internal/middleware"
	"github.com/clinagenda/clinagenda/internal/service"
	"github.com/clinagenda/clinagenda/internal/store/jsonfile"
	"github.com/clinagenda/clinagenda/internal/store/postgres"
	"github.com/clinagenda/clinagenda/pkg/logger"
	"github.com/clinagenda/clinagenda/pkg/metrics"
	"github.com/clinagenda/clinagenda/pkg/tracer"
)

type recordStore interface {
	Patients() patient.Repository
	Doctors() doctor.Repository
	Appointments() appointment.Repository
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}

	clock := schedule.NewClock(cfg.Clinic.UTCOffsetHours)
	col := metrics.NewCollector("clinagenda")

	patientSvc := service.NewPatientService(store.Patients(), store.Appointments(), clock, log)
	doctorSvc := service.NewDoctorService(store.Doctors(), log)
	apptSvc := service.NewAppointmentService(store.Appointments(), store.Patients(), store.Doctors(), clock, log)
	querySvc := service.NewQueryService(store.Appointments(), store.Doctors(), clock, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := v1.NewHandler(patientSvc, doctorSvc, apptSvc, querySvc, clock, col)
	rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	router := v1.NewRouter(h, log, col, rl)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.Int("clinic_utc_offset", cfg.Clinic.UTCOffsetHours),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config, log *zap.Logger) (recordStore, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		store, err := postgres.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(log); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return jsonfile.Open(cfg.Storage.DataDir)
	}
}
