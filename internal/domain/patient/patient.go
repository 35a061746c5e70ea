package patient

import "context"

// Patient is a registered clinic patient. Records are created and edited in
// place, never deleted. IDs are store-assigned with the form P###.
type Patient struct {
	ID            string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Nombre        string `gorm:"column:nombre;type:varchar(150);not null" json:"nombre"`
	Edad          int    `gorm:"column:edad;not null" json:"edad"`
	Telefono      string `gorm:"column:telefono;type:varchar(30);not null" json:"telefono"`
	Email         string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	FechaRegistro string `gorm:"column:fecha_registro;type:varchar(10);not null" json:"fechaRegistro"`
}

func (Patient) TableName() string {
	return "clinica.pacientes"
}

type CreatePatientCommand struct {
	Nombre   string
	Edad     int
	Telefono string
	Email    string
}

// UpdatePatientCommand applies a partial update: only non-nil fields
// overwrite the stored record.
type UpdatePatientCommand struct {
	Nombre   *string
	Edad     *int
	Telefono *string
	Email    *string
}

type Repository interface {
	// Create persists a new patient, assigning its ID.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*Patient, error)

	// List returns all patients in insertion order.
	List(ctx context.Context) ([]*Patient, error)

	// Update merges the provided fields onto the existing record.
	Update(ctx context.Context, id string, cmd *UpdatePatientCommand) (*Patient, error)

	// ExistsByEmail checks email uniqueness without fetching the record.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
