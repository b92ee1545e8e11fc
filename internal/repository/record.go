package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clinicore/clinicore/internal/model"
)

// Common errors for clinical record operations.
var (
	ErrRecordNotFound    = errors.New("clinical record not found")
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

const recordColumns = `id, patient_id, COALESCE(doctor_id, ''), COALESCE(medication, ''),
	COALESCE(treatment, ''), COALESCE(diagnosis, ''), COALESCE(notes, ''), created_at, updated_at`

// CreateRecord inserts a new clinical record.
// Foreign key violations (unknown patient or doctor) surface as
// ErrReferenceNotFound.
func (r *Repository) CreateRecord(ctx context.Context, record *model.ClinicalRecord) error {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO clinical_records (
			id, patient_id, doctor_id, medication, treatment, diagnosis, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.PatientID,
		nullableString(record.DoctorID),
		nullableString(record.Medication),
		nullableString(record.Treatment),
		nullableString(record.Diagnosis),
		nullableString(record.Notes),
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create clinical record: %w", err)
	}

	return nil
}

// GetRecordByID retrieves a clinical record by its ID.
func (r *Repository) GetRecordByID(ctx context.Context, id string) (*model.ClinicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM clinical_records WHERE id = $1`

	record, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get clinical record: %w", err)
	}

	return record, nil
}

// ListRecords retrieves all clinical records ordered by creation time.
func (r *Repository) ListRecords(ctx context.Context) ([]*model.ClinicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM clinical_records ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical records: %w", err)
	}
	defer rows.Close()

	var records []*model.ClinicalRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clinical record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// UpdateRecord replaces the mutable fields of a clinical record.
func (r *Repository) UpdateRecord(ctx context.Context, record *model.ClinicalRecord) error {
	record.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE clinical_records
		SET patient_id = $2, doctor_id = $3, medication = $4, treatment = $5,
			diagnosis = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		record.ID,
		record.PatientID,
		nullableString(record.DoctorID),
		nullableString(record.Medication),
		nullableString(record.Treatment),
		nullableString(record.Diagnosis),
		nullableString(record.Notes),
		record.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to update clinical record: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteRecord removes a clinical record.
func (r *Repository) DeleteRecord(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinical_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinical record: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// scanRecord scans one clinical record row.
func scanRecord(row pgx.Row) (*model.ClinicalRecord, error) {
	var rec model.ClinicalRecord
	err := row.Scan(
		&rec.ID,
		&rec.PatientID,
		&rec.DoctorID,
		&rec.Medication,
		&rec.Treatment,
		&rec.Diagnosis,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
