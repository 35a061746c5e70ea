package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
)

type PatientService struct {
	repo     patient.Repository
	apptRepo appointment.Repository
	clock    *schedule.Clock
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, apptRepo appointment.Repository, clock *schedule.Clock, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, apptRepo: apptRepo, clock: clock, log: log}
}

func (s *PatientService) RegisterPatient(ctx context.Context, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	// Normalized once here; the uniqueness check and the persisted record
	// must see the same values.
	nombre := strings.TrimSpace(cmd.Nombre)
	telefono := strings.TrimSpace(cmd.Telefono)
	email := strings.TrimSpace(cmd.Email)

	// An edad of zero is an age violation, not a missing field.
	if cmd.Edad <= 0 {
		return nil, patient.ErrInvalidAge
	}
	if nombre == "" || telefono == "" || email == "" {
		return nil, ErrMissingFields
	}

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if taken {
		return nil, patient.ErrEmailTaken
	}

	p := &patient.Patient{
		Nombre:        nombre,
		Edad:          cmd.Edad,
		Telefono:      telefono,
		Email:         email,
		FechaRegistro: s.clock.Today(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.log.Info("patient registered", zap.String("patient_id", p.ID))
	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id string) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

// UpdatePatient re-checks email uniqueness when the edit changes the email,
// so both record stores reject a taken address the same way; the postgres
// unique index stays as the backstop under concurrent edits.
func (s *PatientService) UpdatePatient(ctx context.Context, id string, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if cmd.Email != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(*cmd.Email, current.Email) {
			taken, err := s.repo.ExistsByEmail(ctx, *cmd.Email)
			if err != nil {
				return nil, fmt.Errorf("checking email uniqueness: %w", err)
			}
			if taken {
				return nil, patient.ErrEmailTaken
			}
		}
	}
	return s.repo.Update(ctx, id, cmd)
}

// History returns every appointment the patient has ever had, in any state.
// An unknown or appointment-less patient yields an empty list, not an error.
func (s *PatientService) History(ctx context.Context, id string) ([]*appointment.Appointment, error) {
	return s.apptRepo.ListByPatient(ctx, id)
}
