package handler

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/model"
)

// CreatePatient registers a patient.
//
// POST /pacientes
func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	patient, err := h.clinical.CreatePatient(r.Context(), &model.Patient{
		Name:           req.Name,
		Surname:        req.Surname,
		Gender:         req.Gender,
		Age:            req.Age,
		STI:            req.STI,
		HeartCondition: req.HeartCondition,
		Diabetes:       req.Diabetes,
		Phone:          req.Phone,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, patient)
}

// ListPatients returns all patients.
//
// GET /pacientes
func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.clinical.ListPatients(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, patients)
}
