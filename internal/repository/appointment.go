package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/model"
)

// CreateAppointment inserts a new appointment.
// Foreign key violations surface as ErrReferenceNotFound.
func (r *Repository) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	appt.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO appointments (
			id, scheduled_at, doctor_id, patient_id, office_id, phone, details,
			email, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.ScheduledAt,
		appt.DoctorID,
		appt.PatientID,
		appt.OfficeID,
		nullableString(appt.Phone),
		nullableString(appt.Details),
		nullableString(appt.Email),
		appt.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

// ListAppointments retrieves all appointments ordered by creation time.
func (r *Repository) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT id, scheduled_at, doctor_id, patient_id, office_id,
			COALESCE(phone, ''), COALESCE(details, ''), COALESCE(email, ''), created_at
		FROM appointments
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.ScheduledAt,
			&a.DoctorID,
			&a.PatientID,
			&a.OfficeID,
			&a.Phone,
			&a.Details,
			&a.Email,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, rows.Err()
}
