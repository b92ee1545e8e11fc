// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicore/clinicore/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates all application tables for tests.
// Migrations run down in reverse order, then up in order, so foreign
// keys resolve cleanly.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		"000001_users",
		"000002_clinical",
		"000003_audit",
	}

	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		if err := applyMigration(ctx, pool, root, migrations[i]+".down.sql"); err != nil {
			return err
		}
	}

	for _, name := range migrations {
		if err := applyMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, root, filename string) error {
	path := filepath.Join(root, "migrations", filename)

	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filename, err)
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestPatient creates a patient with sensible defaults.
func NewTestPatient(t testing.TB, id string) *model.Patient {
	t.Helper()
	age := 34
	return &model.Patient{
		ID:      id,
		Name:    "Luis",
		Surname: "Pérez",
		Gender:  "M",
		Age:     &age,
		Phone:   "5550001",
		Email:   fmt.Sprintf("%s@example.com", id),
	}
}

// NewTestDoctor creates a doctor with sensible defaults.
func NewTestDoctor(t testing.TB, id string) *model.Doctor {
	t.Helper()
	return &model.Doctor{
		ID:         id,
		Name:       "Ana",
		Surname:    "García",
		Profession: "Cardióloga",
		Email:      fmt.Sprintf("%s@example.com", id),
	}
}

// NewTestAuditEvent creates an audit event with sensible defaults.
func NewTestAuditEvent(t testing.TB, id, eventID string) *model.AuditEvent {
	t.Helper()
	return &model.AuditEvent{
		ID:         id,
		EventID:    eventID,
		Kind:       model.AuditUserRegistered,
		Actor:      "ana@example.com",
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}
