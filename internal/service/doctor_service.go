package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/doctor"
)

type DoctorService struct {
	repo doctor.Repository
	log  *zap.Logger
}

func NewDoctorService(repo doctor.Repository, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, log: log}
}

func (s *DoctorService) RegisterDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	// Normalized once here; the uniqueness check and the persisted record
	// must see the same (nombre, especialidad) pair.
	nombre := strings.TrimSpace(cmd.Nombre)
	especialidad := strings.TrimSpace(cmd.Especialidad)

	if nombre == "" ||
		especialidad == "" ||
		cmd.HorarioInicio == "" ||
		cmd.HorarioFin == "" ||
		len(cmd.DiasDisponibles) == 0 {
		return nil, ErrMissingFields
	}

	dup, err := s.repo.ExistsByNameAndSpecialty(ctx, nombre, especialidad)
	if err != nil {
		return nil, fmt.Errorf("checking doctor uniqueness: %w", err)
	}
	if dup {
		return nil, doctor.ErrDuplicateDoctor
	}

	if cmd.HorarioInicio >= cmd.HorarioFin {
		return nil, doctor.ErrInvalidHours
	}

	d := &doctor.Doctor{
		Nombre:          nombre,
		Especialidad:    especialidad,
		HorarioInicio:   cmd.HorarioInicio,
		HorarioFin:      cmd.HorarioFin,
		DiasDisponibles: cmd.DiasDisponibles,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.log.Info("doctor registered",
		zap.String("doctor_id", d.ID),
		zap.String("especialidad", d.Especialidad),
	)
	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, id string, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inicio, fin := current.HorarioInicio, current.HorarioFin
	if cmd.HorarioInicio != nil {
		inicio = *cmd.HorarioInicio
	}
	if cmd.HorarioFin != nil {
		fin = *cmd.HorarioFin
	}
	if inicio >= fin {
		return nil, doctor.ErrInvalidHours
	}

	if cmd.Nombre != nil || cmd.Especialidad != nil {
		nombre, especialidad := current.Nombre, current.Especialidad
		if cmd.Nombre != nil {
			nombre = *cmd.Nombre
		}
		if cmd.Especialidad != nil {
			especialidad = *cmd.Especialidad
		}
		if nombre != current.Nombre || especialidad != current.Especialidad {
			dup, err := s.repo.ExistsByNameAndSpecialty(ctx, nombre, especialidad)
			if err != nil {
				return nil, fmt.Errorf("checking doctor uniqueness: %w", err)
			}
			if dup {
				return nil, doctor.ErrDuplicateDoctor
			}
		}
	}

	return s.repo.Update(ctx, id, cmd)
}

// FindBySpecialty matches case-insensitively and returns ErrNoDoctorsFound
// on an empty result, which the API surfaces as 404. Every other listing
// returns an empty array instead; this asymmetry is the documented legacy
// contract for the specialty filter.
func (s *DoctorService) FindBySpecialty(ctx context.Context, especialidad string) ([]*doctor.Doctor, error) {
	doctors, err := s.repo.FindBySpecialty(ctx, especialidad)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, doctor.ErrNoDoctorsFound
	}
	return doctors, nil
}
