package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/model"
)

// CreatePatient inserts a new patient record.
func (r *Repository) CreatePatient(ctx context.Context, patient *model.Patient) error {
	patient.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO patients (
			id, name, surname, gender, age, sti, heart_condition, diabetes,
			phone, email, birth_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		patient.ID,
		patient.Name,
		patient.Surname,
		nullableString(patient.Gender),
		patient.Age,
		patient.STI,
		patient.HeartCondition,
		patient.Diabetes,
		nullableString(patient.Phone),
		nullableString(patient.Email),
		patient.BirthDate,
		patient.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// ListPatients retrieves all patients ordered by creation time.
func (r *Repository) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, name, surname, COALESCE(gender, ''), age, sti, heart_condition,
			diabetes, COALESCE(phone, ''), COALESCE(email, ''), birth_date, created_at
		FROM patients
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []*model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Surname,
			&p.Gender,
			&p.Age,
			&p.STI,
			&p.HeartCondition,
			&p.Diabetes,
			&p.Phone,
			&p.Email,
			&p.BirthDate,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, &p)
	}

	return patients, rows.Err()
}
