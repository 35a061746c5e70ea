package jsonfile

import (
	"context"
	"strings"

	"github.com/clinagenda/clinagenda/internal/domain/patient"
)

type patientRepo struct {
	c *collection[patient.Patient]
}

func (r *patientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return err
	}
	p.ID = nextID(items, "P", func(p *patient.Patient) string { return p.ID })
	return r.c.save(append(items, p))
}

func (r *patientRepo) GetByID(_ context.Context, id string) (*patient.Patient, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (r *patientRepo) List(_ context.Context) ([]*patient.Patient, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*patient.Patient{}
	}
	return items, nil
}

func (r *patientRepo) Update(_ context.Context, id string, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		if p.ID != id {
			continue
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
		if err := r.c.save(items); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, patient.ErrPatientNotFound
}

func (r *patientRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return false, err
	}
	for _, p := range items {
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
