package appointment

import (
	"errors"
	"fmt"
)

var (
	ErrAppointmentNotFound = errors.New("ID no encontrado")
	ErrSlotTaken           = errors.New("El doctor ya tiene una cita agendada en esa fecha y hora")
	ErrDateInPast          = errors.New("La fecha de la cita no puede ser en el pasado")
	ErrNotCancellable      = errors.New("Solo se pueden cancelar citas en estado programada")
	ErrUnknownPatient      = errors.New("El paciente no está registrado")
	ErrUnknownDoctor       = errors.New("El doctor no está registrado")
)

// UnavailableDayError reports a slot on a weekday the doctor does not work.
type UnavailableDayError struct {
	Dia string
}

func (e *UnavailableDayError) Error() string {
	return fmt.Sprintf("El doctor no esta disponible los días %s", e.Dia)
}

// OutsideHoursError reports a slot time outside the doctor's office hours.
type OutsideHoursError struct {
	Inicio, Fin string
}

func (e *OutsideHoursError) Error() string {
	return fmt.Sprintf("La hora de la cita debe estar dentro del horario del doctor: %s - %s", e.Inicio, e.Fin)
}
