package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/model"
)

// CreateRecord creates a clinical record for a patient.
//
// POST /historiales
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor := auth.MustIdentityFromContext(r.Context()).Email

	record, err := h.clinical.CreateRecord(r.Context(), actor, &model.ClinicalRecord{
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		Medication: req.Medication,
		Treatment:  req.Treatment,
		Diagnosis:  req.Diagnosis,
		Notes:      req.Notes,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// GetRecord retrieves a clinical record by ID.
//
// GET /historiales/{id}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.clinical.GetRecord(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// ListRecords returns all clinical records.
//
// GET /historiales
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.clinical.ListRecords(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// UpdateRecord replaces the mutable fields of a clinical record.
//
// PUT /historiales/{id}
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RecordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor := auth.MustIdentityFromContext(r.Context()).Email

	record, err := h.clinical.UpdateRecord(r.Context(), actor, &model.ClinicalRecord{
		ID:         id,
		PatientID:  req.PatientID,
		DoctorID:   req.DoctorID,
		Medication: req.Medication,
		Treatment:  req.Treatment,
		Diagnosis:  req.Diagnosis,
		Notes:      req.Notes,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteRecord removes a clinical record.
//
// DELETE /historiales/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor := auth.MustIdentityFromContext(r.Context()).Email

	if err := h.clinical.DeleteRecord(r.Context(), actor, id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Clinical record deleted"})
}
