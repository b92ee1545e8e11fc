package handler

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/model"
)

// CreateOffice registers a consultation office.
//
// POST /consultorios
func (h *Handler) CreateOffice(w http.ResponseWriter, r *http.Request) {
	var req dto.OfficeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	office, err := h.clinical.CreateOffice(r.Context(), &model.Office{
		Name:           req.Name,
		DoctorCapacity: req.DoctorCapacity,
		OpensAt:        req.OpensAt,
		ContactNumber:  req.ContactNumber,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, office)
}

// ListOffices returns all offices.
//
// GET /consultorios
func (h *Handler) ListOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.clinical.ListOffices(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offices)
}

// CreateDoctorOffice assigns a doctor to an office.
//
// POST /doctor_consultorios
func (h *Handler) CreateDoctorOffice(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorOfficeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.clinical.CreateDoctorOffice(r.Context(), &model.DoctorOffice{
		OfficeID: req.OfficeID,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, assignment)
}

// ListDoctorOffices returns all doctor-office assignments.
//
// GET /doctor_consultorios
func (h *Handler) ListDoctorOffices(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.clinical.ListDoctorOffices(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assignments)
}
