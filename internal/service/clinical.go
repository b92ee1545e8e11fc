package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinicore/clinicore/internal/audit"
	"github.com/clinicore/clinicore/internal/metrics"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

// Clinical domain errors.
var (
	// ErrRecordNotFound indicates a clinical record lookup miss.
	ErrRecordNotFound = errors.New("clinical record not found")

	// ErrReferenceNotFound indicates a referenced entity does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

// ClinicalRepository defines the persistence operations for clinical
// entities.
type ClinicalRepository interface {
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)

	CreatePatient(ctx context.Context, patient *model.Patient) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)

	CreateRecord(ctx context.Context, record *model.ClinicalRecord) error
	GetRecordByID(ctx context.Context, id string) (*model.ClinicalRecord, error)
	ListRecords(ctx context.Context) ([]*model.ClinicalRecord, error)
	UpdateRecord(ctx context.Context, record *model.ClinicalRecord) error
	DeleteRecord(ctx context.Context, id string) error

	CreateAppointment(ctx context.Context, appointment *model.Appointment) error
	ListAppointments(ctx context.Context) ([]*model.Appointment, error)

	CreateOffice(ctx context.Context, office *model.Office) error
	ListOffices(ctx context.Context) ([]*model.Office, error)
	CreateDoctorOffice(ctx context.Context, assignment *model.DoctorOffice) error
	ListDoctorOffices(ctx context.Context) ([]*model.DoctorOffice, error)
}

// ClinicalService handles doctors, patients, records, appointments,
// and office assignments.
type ClinicalService struct {
	repo    ClinicalRepository
	logger  *slog.Logger
	metrics metrics.Recorder
	audit   *audit.Publisher
}

// NewClinicalService creates a ClinicalService. The audit publisher may
// be nil when the pipeline is disabled.
func NewClinicalService(repo ClinicalRepository, logger *slog.Logger, recorder metrics.Recorder, publisher *audit.Publisher) *ClinicalService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ClinicalService{
		repo:    repo,
		logger:  logger.With("component", "service.clinical"),
		metrics: recorder,
		audit:   publisher,
	}
}

// CreateDoctor registers a doctor profile directly.
func (s *ClinicalService) CreateDoctor(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	doctor.ID = newID()
	if err := s.repo.CreateDoctor(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDoctorEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return doctor, nil
}

// ListDoctors returns all doctor profiles.
func (s *ClinicalService) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

// CreatePatient registers a patient.
func (s *ClinicalService) CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	patient.ID = newID()
	if err := s.repo.CreatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return patient, nil
}

// ListPatients returns all patients.
func (s *ClinicalService) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.ListPatients(ctx)
}

// CreateRecord creates a clinical record for a patient.
func (s *ClinicalService) CreateRecord(ctx context.Context, actor string, record *model.ClinicalRecord) (*model.ClinicalRecord, error) {
	record.ID = newID()
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.publishAudit(model.AuditRecordCreated, actor, record.ID, "")
	s.logger.Info("clinical record created",
		"record_id", record.ID,
		"patient_id", record.PatientID,
	)
	return record, nil
}

// GetRecord retrieves a clinical record by ID.
func (s *ClinicalService) GetRecord(ctx context.Context, id string) (*model.ClinicalRecord, error) {
	record, err := s.repo.GetRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// ListRecords returns all clinical records.
func (s *ClinicalService) ListRecords(ctx context.Context) ([]*model.ClinicalRecord, error) {
	return s.repo.ListRecords(ctx)
}

// UpdateRecord replaces the mutable fields of a clinical record.
func (s *ClinicalService) UpdateRecord(ctx context.Context, actor string, record *model.ClinicalRecord) (*model.ClinicalRecord, error) {
	if err := s.repo.UpdateRecord(ctx, record); err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrReferenceNotFound):
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("update record: %w", err)
	}

	updated, err := s.repo.GetRecordByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("reload record: %w", err)
	}

	s.publishAudit(model.AuditRecordUpdated, actor, record.ID, "")
	return updated, nil
}

// DeleteRecord removes a clinical record.
func (s *ClinicalService) DeleteRecord(ctx context.Context, actor, id string) error {
	if err := s.repo.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}

	s.publishAudit(model.AuditRecordDeleted, actor, id, "")
	s.logger.Info("clinical record deleted", "record_id", id)
	return nil
}

// CreateAppointment schedules an appointment.
func (s *ClinicalService) CreateAppointment(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error) {
	appointment.ID = newID()
	if err := s.repo.CreateAppointment(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil
}

// ListAppointments returns all appointments.
func (s *ClinicalService) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

// CreateOffice registers a consultation office.
func (s *ClinicalService) CreateOffice(ctx context.Context, office *model.Office) (*model.Office, error) {
	office.ID = newID()
	if err := s.repo.CreateOffice(ctx, office); err != nil {
		return nil, fmt.Errorf("create office: %w", err)
	}
	return office, nil
}

// ListOffices returns all offices.
func (s *ClinicalService) ListOffices(ctx context.Context) ([]*model.Office, error) {
	return s.repo.ListOffices(ctx)
}

// CreateDoctorOffice assigns a doctor to an office.
func (s *ClinicalService) CreateDoctorOffice(ctx context.Context, assignment *model.DoctorOffice) (*model.DoctorOffice, error) {
	assignment.ID = newID()
	if err := s.repo.CreateDoctorOffice(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("create doctor office: %w", err)
	}
	return assignment, nil
}

// ListDoctorOffices returns all doctor-office assignments.
func (s *ClinicalService) ListDoctorOffices(ctx context.Context) ([]*model.DoctorOffice, error) {
	return s.repo.ListDoctorOffices(ctx)
}

func (s *ClinicalService) publishAudit(kind, actor, entityID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.PublishAsync(audit.EventPayload{
		Kind:       kind,
		Actor:      actor,
		EntityID:   entityID,
		Detail:     audit.TruncateDetail(detail),
		OccurredAt: time.Now().UnixMilli(),
	})
}
