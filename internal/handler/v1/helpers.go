package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
	"github.com/clinagenda/clinagenda/internal/domain/doctor"
	"github.com/clinagenda/clinagenda/internal/domain/patient"
	"github.com/clinagenda/clinagenda/internal/service"
)

// dataEnvelope is the wire format for successful responses carrying a
// payload. Data is always present, so an empty listing serializes as [].
type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// messageEnvelope is the wire format for errors and data-less confirmations.
type messageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dataEnvelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dataEnvelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, messageEnvelope{Success: true, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, messageEnvelope{Success: false, Message: message})
}

// respondServiceError maps domain errors onto the HTTP taxonomy: unknown
// ids are 404, every validation, reference, conflict and state failure is
// 400, anything unrecognized is 500.
func respondServiceError(c *gin.Context, err error) {
	var dayErr *appointment.UnavailableDayError
	var hoursErr *appointment.OutsideHoursError

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, doctor.ErrNoDoctorsFound),
		errors.Is(err, appointment.ErrAppointmentNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrBadDateFormat),
		errors.Is(err, service.ErrBadTimeFormat),
		errors.Is(err, patient.ErrInvalidAge),
		errors.Is(err, patient.ErrEmailTaken),
		errors.Is(err, doctor.ErrDuplicateDoctor),
		errors.Is(err, doctor.ErrInvalidHours),
		errors.Is(err, appointment.ErrUnknownPatient),
		errors.Is(err, appointment.ErrUnknownDoctor),
		errors.Is(err, appointment.ErrDateInPast),
		errors.Is(err, appointment.ErrSlotTaken),
		errors.Is(err, appointment.ErrNotCancellable),
		errors.As(err, &dayErr),
		errors.As(err, &hoursErr):
		respondError(c, http.StatusBadRequest, err.Error())

	default:
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return false
	}
	return true
}
