package appointment

import "context"

// Estado is the lifecycle state of an appointment.
//
// Transitions:
//
//	programada → cancelada   (one-way, via cancellation)
//	programada → completada  (set externally, never by this service)
type Estado string

const (
	EstadoProgramada Estado = "programada"
	EstadoCancelada  Estado = "cancelada"
	EstadoCompletada Estado = "completada"
)

// Appointment links a patient to a doctor at a (fecha, hora) slot. Records
// are never deleted; cancellation only flips the estado. IDs are
// store-assigned with the form C###.
type Appointment struct {
	ID         string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	PacienteID string `gorm:"column:paciente_id;type:varchar(20);not null;index" json:"pacienteId"`
	DoctorID   string `gorm:"column:doctor_id;type:varchar(20);not null;index" json:"doctorId"`
	Fecha      string `gorm:"column:fecha;type:varchar(10);not null;index" json:"fecha"`
	Hora       string `gorm:"column:hora;type:varchar(5);not null" json:"hora"`
	Motivo     string `gorm:"column:motivo;type:text;not null" json:"motivo"`
	Estado     Estado `gorm:"column:estado;type:varchar(20);not null;default:'programada';index" json:"estado"`
}

func (Appointment) TableName() string {
	return "clinica.citas"
}

// Active reports whether the appointment blocks its slot for scheduling
// purposes: anything not cancelled holds the slot.
func (a *Appointment) Active() bool {
	return a.Estado != EstadoCancelada
}

// Cancel transitions programada → cancelada. Cancelling an appointment in
// any other state is rejected, not a no-op.
func (a *Appointment) Cancel() error {
	if a.Estado != EstadoProgramada {
		return ErrNotCancellable
	}
	a.Estado = EstadoCancelada
	return nil
}

type CreateAppointmentCommand struct {
	PacienteID string
	DoctorID   string
	Fecha      string
	Hora       string
	Motivo     string
}

// ListQuery filters the full appointment list. Both filters are optional and
// compose with AND semantics; Estado matches case-insensitively.
type ListQuery struct {
	Fecha  string
	Estado string
}

type Repository interface {
	// Create persists a new appointment, assigning its ID. The store
	// guarantees at most one non-cancelled appointment per
	// (doctorId, fecha, hora) slot and returns ErrSlotTaken otherwise.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*Appointment, error)

	// List returns appointments matching the query, in insertion order.
	List(ctx context.Context, q *ListQuery) ([]*Appointment, error)

	// ListByDoctor returns the doctor's full agenda, all states included.
	ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error)

	// ListByPatient returns the patient's history, all states included.
	ListByPatient(ctx context.Context, pacienteID string) ([]*Appointment, error)

	// UpdateEstado persists a state transition already applied to a.
	UpdateEstado(ctx context.Context, a *Appointment) error
}
