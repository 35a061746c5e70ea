package jsonfile

import (
	"context"
	"strings"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
)

type appointmentRepo struct {
	c *collection[appointment.Appointment]
}

// Create re-checks the slot inside the collection lock, so two concurrent
// schedule calls for the same (doctor, fecha, hora) cannot both insert.
func (r *appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.DoctorID == a.DoctorID &&
			existing.Fecha == a.Fecha &&
			existing.Hora == a.Hora &&
			existing.Active() {
			return appointment.ErrSlotTaken
		}
	}
	a.ID = nextID(items, "C", func(a *appointment.Appointment) string { return a.ID })
	return r.c.save(append(items, a))
}

func (r *appointmentRepo) GetByID(_ context.Context, id string) (*appointment.Appointment, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	for _, a := range items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (r *appointmentRepo) List(_ context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	matches := []*appointment.Appointment{}
	for _, a := range items {
		if q != nil && q.Fecha != "" && a.Fecha != q.Fecha {
			continue
		}
		if q != nil && q.Estado != "" && !strings.EqualFold(string(a.Estado), q.Estado) {
			continue
		}
		matches = append(matches, a)
	}
	return matches, nil
}

func (r *appointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]*appointment.Appointment, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	matches := []*appointment.Appointment{}
	for _, a := range items {
		if a.DoctorID == doctorID {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

func (r *appointmentRepo) ListByPatient(_ context.Context, pacienteID string) ([]*appointment.Appointment, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	matches := []*appointment.Appointment{}
	for _, a := range items {
		if a.PacienteID == pacienteID {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

func (r *appointmentRepo) UpdateEstado(_ context.Context, a *appointment.Appointment) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.ID == a.ID {
			existing.Estado = a.Estado
			return r.c.save(items)
		}
	}
	return appointment.ErrAppointmentNotFound
}
