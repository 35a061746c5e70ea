package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/clinagenda/clinagenda/internal/domain/patient"
)

type createPatientRequest struct {
	Nombre   string `json:"nombre"`
	Edad     int    `json:"edad"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

type updatePatientRequest struct {
	Nombre   *string `json:"nombre"`
	Edad     *int    `json:"edad"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
}

func (h *Handler) registerPatient(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.RegisterPatient(c.Request.Context(), &patient.CreatePatientCommand{
		Nombre:   req.Nombre,
		Edad:     req.Edad,
		Telefono: req.Telefono,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.col.PatientsRegisteredTotal.Inc()
	respondCreated(c, p)
}

func (h *Handler) listPatients(c *gin.Context) {
	patients, err := h.patients.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *Handler) getPatient(c *gin.Context) {
	p, err := h.patients.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *Handler) updatePatient(c *gin.Context) {
	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.UpdatePatient(c.Request.Context(), c.Param("id"), &patient.UpdatePatientCommand{
		Nombre:   req.Nombre,
		Edad:     req.Edad,
		Telefono: req.Telefono,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

// patientHistory always answers 200; a patient with no appointments gets an
// empty list.
func (h *Handler) patientHistory(c *gin.Context) {
	history, err := h.patients.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, history)
}
