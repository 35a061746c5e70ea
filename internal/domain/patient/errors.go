package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("ID no encontrado")
	ErrEmailTaken      = errors.New("Este email ya está registrado, ingresa otro")
	ErrInvalidAge      = errors.New("Edad debe ser mayor a 0")
)
