package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) busiestDoctor(c *gin.Context) {
	stats, err := h.queries.BusiestDoctor(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}

func (h *Handler) mostRequestedSpecialty(c *gin.Context) {
	stats, err := h.queries.MostRequestedSpecialty(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}

// availableDoctors defaults fecha and hora to the clinic's current date and
// time, and echoes the values actually used so clients can tell which
// defaults applied.
func (h *Handler) availableDoctors(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		fecha = h.clock.Today()
	}
	hora := c.Query("hora")
	if hora == "" {
		hora = h.clock.NowTime()
	}

	doctors, err := h.queries.AvailableDoctors(c.Request.Context(), fecha, hora)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    doctors,
		"fecha":   fecha,
		"hora":    hora,
	})
}

// upcomingAppointments accepts an optional RFC3339 reference instant in
// ?ahora= (the dashboard passes its own clock) and otherwise uses now.
func (h *Handler) upcomingAppointments(c *gin.Context) {
	var ref time.Time
	if raw := c.Query("ahora"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Formato de ahora inválido, usa RFC3339")
			return
		}
		ref = parsed
	}

	appointments, err := h.queries.UpcomingWithin24h(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appointments)
}
