package doctor

import (
	"context"
	"slices"

	"github.com/clinagenda/clinagenda/internal/domain/schedule"
)

// Doctor is a clinic doctor with office hours and a set of available
// weekdays (Spanish names, e.g. "Lunes"). No two doctors may share the same
// (nombre, especialidad) pair. IDs are store-assigned with the form D###.
type Doctor struct {
	ID              string   `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Nombre          string   `gorm:"column:nombre;type:varchar(150);not null;uniqueIndex:idx_doctores_nombre_especialidad" json:"nombre"`
	Especialidad    string   `gorm:"column:especialidad;type:varchar(100);not null;uniqueIndex:idx_doctores_nombre_especialidad" json:"especialidad"`
	HorarioInicio   string   `gorm:"column:horario_inicio;type:varchar(5);not null" json:"horarioInicio"`
	HorarioFin      string   `gorm:"column:horario_fin;type:varchar(5);not null" json:"horarioFin"`
	DiasDisponibles []string `gorm:"column:dias_disponibles;serializer:json" json:"diasDisponibles"`
}

func (Doctor) TableName() string {
	return "clinica.doctores"
}

// AvailableOn reports whether the doctor works on the given weekday name.
func (d *Doctor) AvailableOn(dia string) bool {
	return slices.Contains(d.DiasDisponibles, dia)
}

// InOfficeHours reports whether hora falls inside the doctor's office hours,
// bounds inclusive.
func (d *Doctor) InOfficeHours(hora string) bool {
	return schedule.WithinTimeRange(hora, d.HorarioInicio, d.HorarioFin)
}

type CreateDoctorCommand struct {
	Nombre          string
	Especialidad    string
	HorarioInicio   string
	HorarioFin      string
	DiasDisponibles []string
}

// UpdateDoctorCommand applies a partial update; DiasDisponibles, when
// present, replaces the stored set wholesale.
type UpdateDoctorCommand struct {
	Nombre          *string
	Especialidad    *string
	HorarioInicio   *string
	HorarioFin      *string
	DiasDisponibles *[]string
}

type Repository interface {
	// Create persists a new doctor, assigning its ID.
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns ErrDoctorNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*Doctor, error)

	// List returns all doctors in insertion order.
	List(ctx context.Context) ([]*Doctor, error)

	// Update merges the provided fields onto the existing record.
	Update(ctx context.Context, id string, cmd *UpdateDoctorCommand) (*Doctor, error)

	// FindBySpecialty matches especialidad case-insensitively.
	FindBySpecialty(ctx context.Context, especialidad string) ([]*Doctor, error)

	// ExistsByNameAndSpecialty checks the (nombre, especialidad) uniqueness
	// invariant without fetching the record.
	ExistsByNameAndSpecialty(ctx context.Context, nombre, especialidad string) (bool, error)
}
