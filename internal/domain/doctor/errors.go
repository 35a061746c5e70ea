package doctor

import "errors"

var (
	ErrDoctorNotFound  = errors.New("ID no encontrado")
	ErrDuplicateDoctor = errors.New("Este doctor ya está registrado en la misma especialidad, ingresa otro")
	ErrInvalidHours    = errors.New("El horario de inicio debe ser menor al horario de fin")
	ErrNoDoctorsFound  = errors.New("No se encontraron doctores con esa especialidad")
)
