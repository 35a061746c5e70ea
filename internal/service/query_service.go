package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/schedule"
)

// QueryService serves the derived read-side views: availability search,
// the 24-hour notification window, and the booking statistics. It holds no
// state of its own; every call reads a fresh snapshot from the store.
type QueryService struct {
	apptRepo   appointment.Repository
	doctorRepo doctor.Repository
	clock      *schedule.Clock
	log        *zap.Logger
}

func NewQueryService(apptRepo appointment.Repository, doctorRepo doctor.Repository, clock *schedule.Clock, log *zap.Logger) *QueryService {
	return &QueryService{apptRepo: apptRepo, doctorRepo: doctorRepo, clock: clock, log: log}
}

// DoctorStats names the doctor with the most appointments in any state.
// DoctorID is null when no appointments exist.
type DoctorStats struct {
	DoctorID   *string `json:"doctorId"`
	TotalCitas int     `json:"totalCitas"`
}

// SpecialtyStats names the specialty with the most appointments, counted
// through each appointment's doctor. Appointments whose doctor no longer
// resolves are skipped.
type SpecialtyStats struct {
	Especialidad     *string `json:"especialidad"`
	TotalSolicitudes int     `json:"totalSolicitudes"`
}

// AvailableDoctors returns doctors free to take the (fecha, hora) slot:
// working that weekday, inside office hours, and without a programada
// appointment at that exact slot. Only programada blocks here — a
// completada appointment does not — unlike the scheduler's conflict rule.
func (s *QueryService) AvailableDoctors(ctx context.Context, fecha, hora string) ([]*doctor.Doctor, error) {
	dia, err := s.clock.WeekdayOf(fecha)
	if err != nil {
		return nil, ErrBadDateFormat
	}

	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	sameDay, err := s.apptRepo.List(ctx, &appointment.ListQuery{Fecha: fecha})
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	available := []*doctor.Doctor{}
	for _, d := range doctors {
		if !d.AvailableOn(dia) || !d.InOfficeHours(hora) {
			continue
		}
		busy := false
		for _, a := range sameDay {
			if a.DoctorID == d.ID && a.Hora == hora && a.Estado == appointment.EstadoProgramada {
				busy = true
				break
			}
		}
		if !busy {
			available = append(available, d)
		}
	}
	return available, nil
}

// UpcomingWithin24h returns programada appointments whose slot instant falls
// within [ref, ref+24h], both bounds inclusive. A zero ref means now.
func (s *QueryService) UpcomingWithin24h(ctx context.Context, ref time.Time) ([]*appointment.Appointment, error) {
	if ref.IsZero() {
		ref = s.clock.Now()
	}
	limit := ref.Add(24 * time.Hour)

	all, err := s.apptRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	upcoming := []*appointment.Appointment{}
	for _, a := range all {
		if a.Estado != appointment.EstadoProgramada {
			continue
		}
		at, err := s.clock.SlotInstant(a.Fecha, a.Hora)
		if err != nil {
			s.log.Warn("skipping appointment with unparseable slot",
				zap.String("appointment_id", a.ID),
				zap.Error(err),
			)
			continue
		}
		if !at.Before(ref) && !at.After(limit) {
			upcoming = append(upcoming, a)
		}
	}
	return upcoming, nil
}

// BusiestDoctor counts appointments per doctor in every state. Ties go to
// the doctor seen first in appointment insertion order, so the first-seen
// key list is kept explicitly rather than iterating the count map.
func (s *QueryService) BusiestDoctor(ctx context.Context) (*DoctorStats, error) {
	all, err := s.apptRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	counts := map[string]int{}
	var order []string
	for _, a := range all {
		if _, seen := counts[a.DoctorID]; !seen {
			order = append(order, a.DoctorID)
		}
		counts[a.DoctorID]++
	}

	stats := &DoctorStats{}
	for _, id := range order {
		if counts[id] > stats.TotalCitas {
			stats.TotalCitas = counts[id]
			doctorID := id
			stats.DoctorID = &doctorID
		}
	}
	return stats, nil
}

// MostRequestedSpecialty mirrors BusiestDoctor, grouping through each
// appointment's doctor and silently skipping dangling doctor references.
func (s *QueryService) MostRequestedSpecialty(ctx context.Context) (*SpecialtyStats, error) {
	all, err := s.apptRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}

	specialtyOf := make(map[string]string, len(doctors))
	for _, d := range doctors {
		specialtyOf[d.ID] = d.Especialidad
	}

	counts := map[string]int{}
	var order []string
	for _, a := range all {
		esp, ok := specialtyOf[a.DoctorID]
		if !ok {
			continue
		}
		if _, seen := counts[esp]; !seen {
			order = append(order, esp)
		}
		counts[esp]++
	}

	stats := &SpecialtyStats{}
	for _, esp := range order {
		if counts[esp] > stats.TotalSolicitudes {
			stats.TotalSolicitudes = counts[esp]
			especialidad := esp
			stats.Especialidad = &especialidad
		}
	}
	return stats, nil
}
