package handler

import (
	"net/http"

	"github.com/clinicore/clinicore/internal/handler/dto"
	"github.com/clinicore/clinicore/internal/model"
)

// CreateAppointment schedules an appointment.
//
// POST /citas
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	appointment, err := h.clinical.CreateAppointment(r.Context(), &model.Appointment{
		ScheduledAt: req.ScheduledAt,
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		OfficeID:    req.OfficeID,
		Phone:       req.Phone,
		Details:     req.Details,
		Email:       req.Email,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

// ListAppointments returns all appointments.
//
// GET /citas
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.clinical.ListAppointments(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, appointments)
}
