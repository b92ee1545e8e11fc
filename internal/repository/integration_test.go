//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/testutil"
)

func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func newTestUser(suffix string) *model.User {
	return &model.User{
		ID:           fmt.Sprintf("user-%s-%d", suffix, time.Now().UnixNano()),
		Name:         "Ana",
		Surname:      "García",
		Email:        fmt.Sprintf("ana-%s@example.com", suffix),
		Profession:   "Cardióloga",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
	}
}

func TestIntegrationUserRepository(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := newTestUser("a")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	loaded, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("get user by email: %v", err)
	}
	if loaded.ID != user.ID || loaded.Profession != user.Profession {
		t.Fatalf("loaded user mismatch: %+v", loaded)
	}
	if loaded.PasswordHash != user.PasswordHash {
		t.Fatal("password hash not round-tripped")
	}

	duplicate := newTestUser("b")
	duplicate.Email = user.Email
	if err := repo.CreateUser(ctx, duplicate); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	if _, err := repo.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestIntegrationDoctorEmailUniqueness(t *testing.T) {
	ctx, repo := newTestEnv(t)

	doctor := testutil.NewTestDoctor(t, "doc-1")
	if err := repo.CreateDoctor(ctx, doctor); err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	exists, err := repo.DoctorEmailExists(ctx, doctor.Email)
	if err != nil {
		t.Fatalf("doctor email exists: %v", err)
	}
	if !exists {
		t.Fatal("expected doctor email to exist")
	}

	duplicate := testutil.NewTestDoctor(t, "doc-2")
	duplicate.Email = doctor.Email
	if err := repo.CreateDoctor(ctx, duplicate); !errors.Is(err, ErrDoctorEmailExists) {
		t.Fatalf("expected ErrDoctorEmailExists, got %v", err)
	}

	// Doctors without an email are not constrained.
	for i := 0; i < 2; i++ {
		anonymous := testutil.NewTestDoctor(t, fmt.Sprintf("doc-anon-%d", i))
		anonymous.Email = ""
		if err := repo.CreateDoctor(ctx, anonymous); err != nil {
			t.Fatalf("create doctor without email: %v", err)
		}
	}
}

func TestIntegrationRecordLifecycle(t *testing.T) {
	ctx, repo := newTestEnv(t)

	patient := testutil.NewTestPatient(t, "pat-1")
	if err := repo.CreatePatient(ctx, patient); err != nil {
		t.Fatalf("create patient: %v", err)
	}

	doctor := testutil.NewTestDoctor(t, "doc-1")
	if err := repo.CreateDoctor(ctx, doctor); err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	record := &model.ClinicalRecord{
		ID:        "rec-1",
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Diagnosis: "hipertensión",
		Treatment: "dieta baja en sodio",
	}
	if err := repo.CreateRecord(ctx, record); err != nil {
		t.Fatalf("create record: %v", err)
	}

	loaded, err := repo.GetRecordByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if loaded.Diagnosis != record.Diagnosis || loaded.DoctorID != doctor.ID {
		t.Fatalf("loaded record mismatch: %+v", loaded)
	}

	loaded.Treatment = "losartán 50mg"
	if err := repo.UpdateRecord(ctx, loaded); err != nil {
		t.Fatalf("update record: %v", err)
	}

	reloaded, err := repo.GetRecordByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if reloaded.Treatment != "losartán 50mg" {
		t.Fatalf("treatment = %q", reloaded.Treatment)
	}
	if !reloaded.UpdatedAt.After(reloaded.CreatedAt) {
		t.Fatal("expected updated_at to advance")
	}

	if err := repo.DeleteRecord(ctx, record.ID); err != nil {
		t.Fatalf("delete record: %v", err)
	}
	if _, err := repo.GetRecordByID(ctx, record.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	// FK guards
	orphan := &model.ClinicalRecord{ID: "rec-2", PatientID: "no-such-patient"}
	if err := repo.CreateRecord(ctx, orphan); !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}

func TestIntegrationAppointmentAndOffices(t *testing.T) {
	ctx, repo := newTestEnv(t)

	patient := testutil.NewTestPatient(t, "pat-1")
	if err := repo.CreatePatient(ctx, patient); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	doctor := testutil.NewTestDoctor(t, "doc-1")
	if err := repo.CreateDoctor(ctx, doctor); err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	capacity := 3
	office := &model.Office{
		ID:             "off-1",
		Name:           "Consultorio 3",
		DoctorCapacity: &capacity,
		OpensAt:        "08:00",
	}
	if err := repo.CreateOffice(ctx, office); err != nil {
		t.Fatalf("create office: %v", err)
	}

	scheduled := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	appt := &model.Appointment{
		ID:          "appt-1",
		ScheduledAt: &scheduled,
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		OfficeID:    office.ID,
		Details:     "control de presión",
	}
	if err := repo.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	appointments, err := repo.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list appointments: %v", err)
	}
	if len(appointments) != 1 || !appointments[0].ScheduledAt.Equal(scheduled) {
		t.Fatalf("appointments = %+v", appointments)
	}

	assignment := &model.DoctorOffice{ID: "do-1", OfficeID: office.ID, DoctorID: doctor.ID}
	if err := repo.CreateDoctorOffice(ctx, assignment); err != nil {
		t.Fatalf("create doctor office: %v", err)
	}

	ghost := &model.DoctorOffice{ID: "do-2", OfficeID: office.ID, DoctorID: "no-such-doctor"}
	if err := repo.CreateDoctorOffice(ctx, ghost); !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}

func TestIntegrationAuditBulkInsertIdempotent(t *testing.T) {
	ctx, repo := newTestEnv(t)
	auditRepo := NewAuditRepository(repo)

	events := []*model.AuditEvent{
		testutil.NewTestAuditEvent(t, "evt-1", "1700000000000-0"),
		testutil.NewTestAuditEvent(t, "evt-2", "1700000000000-1"),
	}

	if err := auditRepo.BulkInsert(ctx, events); err != nil {
		t.Fatalf("bulk insert: %v", err)
	}

	// Redelivery of the same stream IDs must not duplicate rows.
	redelivered := []*model.AuditEvent{
		testutil.NewTestAuditEvent(t, "evt-3", "1700000000000-0"),
	}
	if err := auditRepo.BulkInsert(ctx, redelivered); err != nil {
		t.Fatalf("redelivered bulk insert: %v", err)
	}

	stored, err := auditRepo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 audit events, got %d", len(stored))
	}
}
