package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/model"
)

// ErrDoctorEmailExists indicates a doctor record already carries this email.
var ErrDoctorEmailExists = errors.New("doctor email already exists")

// CreateDoctor inserts a new doctor record.
// The partial unique index on doctors.email keeps profile derivation
// idempotent per email even under concurrent registration.
func (r *Repository) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	doctor.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO doctors (id, name, surname, office, profession, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Surname,
		nullableString(doctor.Office),
		nullableString(doctor.Profession),
		nullableString(doctor.Phone),
		nullableString(doctor.Email),
		doctor.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDoctorEmailExists
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	return nil
}

// DoctorEmailExists reports whether a doctor record exists for this email.
func (r *Repository) DoctorEmailExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor email: %w", err)
	}

	return exists, nil
}

// ListDoctors retrieves all doctors ordered by creation time.
func (r *Repository) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, surname, COALESCE(office, ''), COALESCE(profession, ''),
			COALESCE(phone, ''), COALESCE(email, ''), created_at
		FROM doctors
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Surname,
			&d.Office,
			&d.Profession,
			&d.Phone,
			&d.Email,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, &d)
	}

	return doctors, rows.Err()
}
