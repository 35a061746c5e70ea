package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
)

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	clock       *schedule.Clock
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	clock *schedule.Clock,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		clock:       clock,
		log:         log,
	}
}

// ScheduleAppointment runs the validation pipeline in a fixed order and
// short-circuits on the first failure, so a request failing several rules
// always gets the same message. The created appointment is always
// programada; callers cannot choose the initial state.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	if strings.TrimSpace(cmd.PacienteID) == "" ||
		strings.TrimSpace(cmd.DoctorID) == "" ||
		cmd.Fecha == "" ||
		cmd.Hora == "" ||
		strings.TrimSpace(cmd.Motivo) == "" {
		return nil, ErrMissingFields
	}
	if !schedule.ValidDate(cmd.Fecha) {
		return nil, ErrBadDateFormat
	}
	if !schedule.ValidTime(cmd.Hora) {
		return nil, ErrBadTimeFormat
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PacienteID); err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return nil, appointment.ErrUnknownPatient
		}
		return nil, fmt.Errorf("resolving patient: %w", err)
	}

	d, err := s.doctorRepo.GetByID(ctx, cmd.DoctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return nil, appointment.ErrUnknownDoctor
		}
		return nil, fmt.Errorf("resolving doctor: %w", err)
	}

	if s.clock.IsPastDate(cmd.Fecha) {
		return nil, appointment.ErrDateInPast
	}

	dia, err := s.clock.WeekdayOf(cmd.Fecha)
	if err != nil {
		return nil, ErrBadDateFormat
	}
	if !d.AvailableOn(dia) {
		return nil, &appointment.UnavailableDayError{Dia: dia}
	}

	if !d.InOfficeHours(cmd.Hora) {
		return nil, &appointment.OutsideHoursError{Inicio: d.HorarioInicio, Fin: d.HorarioFin}
	}

	// Pre-check keeps error ordering deterministic; the store's own slot
	// guard is what actually prevents a double booking under concurrency.
	agenda, err := s.repo.ListByDoctor(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("loading doctor agenda: %w", err)
	}
	for _, existing := range agenda {
		if existing.Fecha == cmd.Fecha && existing.Hora == cmd.Hora && existing.Active() {
			return nil, appointment.ErrSlotTaken
		}
	}

	a := &appointment.Appointment{
		PacienteID: cmd.PacienteID,
		DoctorID:   cmd.DoctorID,
		Fecha:      cmd.Fecha,
		Hora:       cmd.Hora,
		Motivo:     strings.TrimSpace(cmd.Motivo),
		Estado:     appointment.EstadoProgramada,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, appointment.ErrSlotTaken) {
			return nil, err
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.log.Info("appointment scheduled",
		zap.String("appointment_id", a.ID),
		zap.String("doctor_id", a.DoctorID),
		zap.String("fecha", a.Fecha),
		zap.String("hora", a.Hora),
	)
	return a, nil
}

// CancelAppointment transitions programada → cancelada. The transition is
// irreversible and rejected for appointments in any other state.
func (s *AppointmentService) CancelAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEstado(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment estado: %w", err)
	}

	s.log.Info("appointment cancelled", zap.String("appointment_id", id))
	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAppointments applies the optional fecha/estado filters with AND
// semantics; estado matches case-insensitively.
func (s *AppointmentService) ListAppointments(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx, q)
}

// AgendaOfDoctor returns the doctor's appointments in every state. Callers
// sort by date and time if they need ordering.
func (s *AppointmentService) AgendaOfDoctor(ctx context.Context, doctorID string) ([]*appointment.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
