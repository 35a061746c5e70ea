package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clinagenda/clinagenda/internal/domain/doctor"
)

type doctorRepo struct {
	db *gorm.DB
}

func (r *doctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, "clinica.doctores", "D")
		if err != nil {
			return err
		}
		d.ID = id
		if err := tx.Create(d).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return doctor.ErrDuplicateDoctor
			}
			return err
		}
		return nil
	})
}

func (r *doctorRepo) GetByID(ctx context.Context, id string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepo) List(ctx context.Context) ([]*doctor.Doctor, error) {
	doctors := []*doctor.Doctor{}
	if err := r.db.WithContext(ctx).Order("id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepo) Update(ctx context.Context, id string, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return doctor.ErrDoctorNotFound
			}
			return err
		}
		if cmd.Nombre != nil {
			d.Nombre = *cmd.Nombre
		}
		if cmd.Especialidad != nil {
			d.Especialidad = *cmd.Especialidad
		}
		if cmd.HorarioInicio != nil {
			d.HorarioInicio = *cmd.HorarioInicio
		}
		if cmd.HorarioFin != nil {
			d.HorarioFin = *cmd.HorarioFin
		}
		if cmd.DiasDisponibles != nil {
			d.DiasDisponibles = *cmd.DiasDisponibles
		}
		if err := tx.Save(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return doctor.ErrDuplicateDoctor
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepo) FindBySpecialty(ctx context.Context, especialidad string) ([]*doctor.Doctor, error) {
	doctors := []*doctor.Doctor{}
	err := r.db.WithContext(ctx).
		Where("LOWER(especialidad) = LOWER(?)", especialidad).
		Order("id").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepo) ExistsByNameAndSpecialty(ctx context.Context, nombre, especialidad string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("nombre = ? AND especialidad = ?", nombre, especialidad).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
