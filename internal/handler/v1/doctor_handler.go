package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/clinagenda/clinagenda/internal/domain/doctor"
)

type createDoctorRequest struct {
	Nombre          string   `json:"nombre"`
	Especialidad    string   `json:"especialidad"`
	HorarioInicio   string   `json:"horarioInicio"`
	HorarioFin      string   `json:"horarioFin"`
	DiasDisponibles []string `json:"diasDisponibles"`
}

type updateDoctorRequest struct {
	Nombre          *string   `json:"nombre"`
	Especialidad    *string   `json:"especialidad"`
	HorarioInicio   *string   `json:"horarioInicio"`
	HorarioFin      *string   `json:"horarioFin"`
	DiasDisponibles *[]string `json:"diasDisponibles"`
}

func (h *Handler) registerDoctor(c *gin.Context) {
	var req createDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.RegisterDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		Nombre:          req.Nombre,
		Especialidad:    req.Especialidad,
		HorarioInicio:   req.HorarioInicio,
		HorarioFin:      req.HorarioFin,
		DiasDisponibles: req.DiasDisponibles,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.col.DoctorsRegisteredTotal.Inc()
	respondCreated(c, d)
}

func (h *Handler) listDoctors(c *gin.Context) {
	doctors, err := h.doctors.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}

func (h *Handler) getDoctor(c *gin.Context) {
	d, err := h.doctors.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *Handler) updateDoctor(c *gin.Context) {
	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.doctors.UpdateDoctor(c.Request.Context(), c.Param("id"), &doctor.UpdateDoctorCommand{
		Nombre:          req.Nombre,
		Especialidad:    req.Especialidad,
		HorarioInicio:   req.HorarioInicio,
		HorarioFin:      req.HorarioFin,
		DiasDisponibles: req.DiasDisponibles,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

// doctorsBySpecialty keeps the legacy contract of answering 404 when the
// filter matches nothing, unlike every other listing.
func (h *Handler) doctorsBySpecialty(c *gin.Context) {
	doctors, err := h.doctors.FindBySpecialty(c.Request.Context(), c.Param("especialidad"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}
