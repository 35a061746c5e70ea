package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clinagenda/clinagenda/internal/domain/patient"
)

type patientRepo struct {
	db *gorm.DB
}

func (r *patientRepo) Create(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, "clinica.pacientes", "P")
		if err != nil {
			return err
		}
		p.ID = id
		if err := tx.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return patient.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepo) List(ctx context.Context) ([]*patient.Patient, error) {
	patients := []*patient.Patient{}
	if err := r.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepo) Update(ctx context.Context, id string, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return patient.ErrPatientNotFound
			}
			return err
		}
		if cmd.Nombre != nil {
			p.Nombre = *cmd.Nombre
		}
		if cmd.Edad != nil {
			p.Edad = *cmd.Edad
		}
		if cmd.Telefono != nil {
			p.Telefono = *cmd.Telefono
		}
		if cmd.Email != nil {
			p.Email = *cmd.Email
		}
		if err := tx.Save(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return patient.ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
