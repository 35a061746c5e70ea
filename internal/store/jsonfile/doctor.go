package jsonfile

import (
	"context"
	"strings"

	"github.com/clinagenda/clinagenda/internal/domain/doctor"
)

type doctorRepo struct {
	c *collection[doctor.Doctor]
}

func (r *doctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return err
	}
	d.ID = nextID(items, "D", func(d *doctor.Doctor) string { return d.ID })
	return r.c.save(append(items, d))
}

func (r *doctorRepo) GetByID(_ context.Context, id string) (*doctor.Doctor, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	for _, d := range items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *doctorRepo) List(_ context.Context) ([]*doctor.Doctor, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*doctor.Doctor{}
	}
	return items, nil
}

func (r *doctorRepo) Update(_ context.Context, id string, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	for _, d := range items {
		if d.ID != id {
			continue
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
		if err := r.c.save(items); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *doctorRepo) FindBySpecialty(_ context.Context, especialidad string) ([]*doctor.Doctor, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return nil, err
	}
	matches := []*doctor.Doctor{}
	for _, d := range items {
		if strings.EqualFold(d.Especialidad, especialidad) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (r *doctorRepo) ExistsByNameAndSpecialty(_ context.Context, nombre, especialidad string) (bool, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	items, err := r.c.load()
	if err != nil {
		return false, err
	}
	for _, d := range items {
		if d.Nombre == nombre && d.Especialidad == especialidad {
			return true, nil
		}
	}
	return false, nil
}
