package handler

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/model"
)

// CreateDoctor registers a doctor profile directly.
//
// POST /doctores
func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	doctor, err := h.clinical.CreateDoctor(r.Context(), &model.Doctor{
		Name:       req.Name,
		Surname:    req.Surname,
		Office:     req.Office,
		Profession: req.Profession,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, doctor)
}

// ListDoctors returns all doctor profiles.
//
// GET /doctores
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.clinical.ListDoctors(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doctors)
}
