// Package postgres backs the three clinic collections with PostgreSQL via
// gorm. Slot uniqueness is enforced by a partial unique index rather than
// application-level pre-checks, so concurrent schedule calls cannot
// double-book a doctor.
package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clinagenda/clinagenda/internal/config"
	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
)

type Store struct {
	db *gorm.DB
}

func Connect(cfg config.DatabaseConfig) (*Store, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:    true,
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Patients() patient.Repository         { return &patientRepo{db: s.db} }
func (s *Store) Doctors() doctor.Repository           { return &doctorRepo{db: s.db} }
func (s *Store) Appointments() appointment.Repository { return &appointmentRepo{db: s.db} }

func (s *Store) Migrate(log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	if err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS clinica").Error; err != nil {
		return fmt.Errorf("creating schema clinica: %w", err)
	}

	models := []any{
		&patient.Patient{},
		&doctor.Doctor{},
		&appointment.Appointment{},
	}
	if err := s.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	// One non-cancelled appointment per (doctor, fecha, hora). This is the
	// authoritative conflict guard; the scheduler's pre-check only exists
	// for deterministic error ordering.
	slotIndex := `CREATE UNIQUE INDEX IF NOT EXISTS idx_citas_slot
		ON clinica.citas (doctor_id, fecha, hora)
		WHERE estado <> 'cancelada'`
	if err := s.db.Exec(slotIndex).Error; err != nil {
		return fmt.Errorf("creating slot index: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// nextID assigns prefix### inside the given transaction, continuing from the
// highest numeric suffix in the table.
func nextID(tx *gorm.DB, table, prefix string) (string, error) {
	var max int
	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM 2) AS INTEGER)), 0) FROM %s", table)
	if err := tx.Raw(query).Scan(&max).Error; err != nil {
		return "", fmt.Errorf("computing next id for %s: %w", table, err)
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}
