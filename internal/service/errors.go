package service

import "errors"

var (
	ErrMissingFields = errors.New("Faltan datos obligatorios")
	ErrBadDateFormat = errors.New("Formato de fecha inválido, usa YYYY-MM-DD")
	ErrBadTimeFormat = errors.New("Formato de hora inválido, usa HH:MM")
)
