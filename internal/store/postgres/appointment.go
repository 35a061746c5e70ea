package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
)

type appointmentRepo struct {
	db *gorm.DB
}

// Create relies on the partial unique slot index: a concurrent insert for
// the same non-cancelled slot loses with a duplicate-key error, which is
// surfaced as ErrSlotTaken.
func (r *appointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, "clinica.citas", "C")
		if err != nil {
			return err
		}
		a.ID = id
		if err := tx.Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return appointment.ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) List(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	db := r.db.WithContext(ctx).Model(&appointment.Appointment{})
	if q != nil && q.Fecha != "" {
		db = db.Where("fecha = ?", q.Fecha)
	}
	if q != nil && q.Estado != "" {
		db = db.Where("LOWER(estado) = LOWER(?)", q.Estado)
	}
	appointments := []*appointment.Appointment{}
	if err := db.Order("id").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]*appointment.Appointment, error) {
	appointments := []*appointment.Appointment{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("id").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepo) ListByPatient(ctx context.Context, pacienteID string) ([]*appointment.Appointment, error) {
	appointments := []*appointment.Appointment{}
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Order("id").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepo) UpdateEstado(ctx context.Context, a *appointment.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", a.ID).
		Update("estado", a.Estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}
