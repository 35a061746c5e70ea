package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/clinagenda/clinagenda/internal/domain/appointment"
)

// createAppointmentRequest deliberately has no estado field: appointments
// always start programada, regardless of what the client sends.
type createAppointmentRequest struct {
	PacienteID string `json:"pacienteId"`
	DoctorID   string `json:"doctorId"`
	Fecha      string `json:"fecha"`
	Hora       string `json:"hora"`
	Motivo     string `json:"motivo"`
}

func (h *Handler) scheduleAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.appointments.ScheduleAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PacienteID: req.PacienteID,
		DoctorID:   req.DoctorID,
		Fecha:      req.Fecha,
		Hora:       req.Hora,
		Motivo:     req.Motivo,
	})
	if err != nil {
		if errors.Is(err, appointment.ErrSlotTaken) {
			h.col.SlotConflictsTotal.Inc()
		}
		h.col.AppointmentsTotal.WithLabelValues("rejected").Inc()
		respondServiceError(c, err)
		return
	}

	h.col.AppointmentsTotal.WithLabelValues("scheduled").Inc()
	respondCreated(c, a)
}

func (h *Handler) listAppointments(c *gin.Context) {
	appointments, err := h.appointments.ListAppointments(c.Request.Context(), &appointment.ListQuery{
		Fecha:  c.Query("fecha"),
		Estado: c.Query("estado"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appointments)
}

func (h *Handler) getAppointment(c *gin.Context) {
	a, err := h.appointments.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *Handler) cancelAppointment(c *gin.Context) {
	if _, err := h.appointments.CancelAppointment(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	h.col.CancellationsTotal.Inc()
	respondMessage(c, "Cita cancelada exitosamente")
}

func (h *Handler) doctorAgenda(c *gin.Context) {
	agenda, err := h.appointments.AgendaOfDoctor(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, agenda)
}
