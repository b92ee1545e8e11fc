package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/model"
)

// CreateOffice inserts a new office.
func (r *Repository) CreateOffice(ctx context.Context, office *model.Office) error {
	office.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO offices (id, name, doctor_capacity, opens_at, contact_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		office.ID,
		nullableString(office.Name),
		office.DoctorCapacity,
		nullableString(office.OpensAt),
		nullableString(office.ContactNumber),
		office.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create office: %w", err)
	}

	return nil
}

// ListOffices retrieves all offices ordered by creation time.
func (r *Repository) ListOffices(ctx context.Context) ([]*model.Office, error) {
	query := `
		SELECT id, COALESCE(name, ''), doctor_capacity, COALESCE(opens_at, ''),
			COALESCE(contact_number, ''), created_at
		FROM offices
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	defer rows.Close()

	var offices []*model.Office
	for rows.Next() {
		var o model.Office
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.DoctorCapacity,
			&o.OpensAt,
			&o.ContactNumber,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, &o)
	}

	return offices, rows.Err()
}

// CreateDoctorOffice links a doctor to an office.
// Foreign key violations surface as ErrReferenceNotFound.
func (r *Repository) CreateDoctorOffice(ctx context.Context, do *model.DoctorOffice) error {
	do.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO doctor_offices (id, office_id, doctor_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, do.ID, do.OfficeID, do.DoctorID, do.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create doctor-office assignment: %w", err)
	}

	return nil
}

// ListDoctorOffices retrieves all doctor-office assignments.
func (r *Repository) ListDoctorOffices(ctx context.Context) ([]*model.DoctorOffice, error) {
	query := `
		SELECT id, office_id, doctor_id, created_at
		FROM doctor_offices
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor-office assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*model.DoctorOffice
	for rows.Next() {
		var do model.DoctorOffice
		if err := rows.Scan(&do.ID, &do.OfficeID, &do.DoctorID, &do.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan doctor-office assignment: %w", err)
		}
		assignments = append(assignments, &do)
	}

	return assignments, rows.Err()
}
