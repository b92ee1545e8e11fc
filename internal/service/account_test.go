package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

// fakeAccountRepo is an in-memory AccountRepository for tests.
type fakeAccountRepo struct {
	users   map[string]*model.User // keyed by email
	doctors map[string]*model.Doctor

	createUserErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		users:   make(map[string]*model.User),
		doctors: make(map[string]*model.Doctor),
	}
}

func (f *fakeAccountRepo) CreateUser(_ context.Context, user *model.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeAccountRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAccountRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeAccountRepo) CreateDoctor(_ context.Context, doctor *model.Doctor) error {
	if doctor.Email != "" {
		if _, ok := f.doctors[doctor.Email]; ok {
			return repository.ErrDoctorEmailExists
		}
	}
	doctor.CreatedAt = time.Now()
	f.doctors[doctor.Email] = doctor
	return nil
}

func (f *fakeAccountRepo) DoctorEmailExists(_ context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	_, ok := f.doctors[email]
	return ok, nil
}

func newTestAccountService(repo AccountRepository) *AccountService {
	tokens := auth.NewTokenManager("test-secret-key", 30*time.Minute)
	logger := slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAccountService(repo, tokens, logger, nil, nil)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRegisterDerivesDoctorProfile(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:       "Ana",
		Surname:    "García",
		Email:      "ana@example.com",
		Profession: "Cardióloga",
		Password:   "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if user.PasswordHash == "" {
		t.Error("expected hashed password")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}

	doctor, ok := repo.doctors["ana@example.com"]
	if !ok {
		t.Fatal("expected doctor profile to be derived for clinician")
	}
	if doctor.Name != "Ana" || doctor.Surname != "García" || doctor.Profession != "Cardióloga" {
		t.Errorf("doctor profile fields = %+v", doctor)
	}
}

func TestRegisterPatientNoDoctorProfile(t *testing.T) {
	professions := []string{"paciente", "Paciente", "PACIENTE", "  paciente  ", "patient", "Patient", ""}

	for _, profession := range professions {
		t.Run("profession="+profession, func(t *testing.T) {
			repo := newFakeAccountRepo()
			svc := newTestAccountService(repo)

			_, err := svc.Register(context.Background(), RegisterInput{
				Name:       "Luis",
				Surname:    "Pérez",
				Email:      "luis@example.com",
				Password:   "s3cret-pass",
				Profession: profession,
			})
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if len(repo.doctors) != 0 {
				t.Errorf("profession %q derived a doctor profile", profession)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	input := RegisterInput{
		Name:     "Ana",
		Surname:  "García",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterEmailCaseSensitive(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Surname: "García", Email: "A@x.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// The duplicate check is an exact match on the stored value, so a
	// case-variant email registers a separate account.
	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Surname: "García", Email: "a@x.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() with case-variant email error = %v", err)
	}

	if len(repo.users) != 2 {
		t.Fatalf("expected 2 distinct accounts, got %d", len(repo.users))
	}
	if _, ok := repo.users["A@x.com"]; !ok {
		t.Error("expected email stored verbatim, uppercase account missing")
	}

	if _, err := svc.Login(context.Background(), "A@x.com", "s3cret-pass"); err != nil {
		t.Errorf("Login() with stored email error = %v", err)
	}
	if _, err := svc.Login(context.Background(), "A@X.COM", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with unregistered case variant error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Surname: "García", Email: "ana@example.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(context.Background(), "ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("Authenticate() email = %q", user.Email)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Surname: "García", Email: "ana@example.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "ana@example.com", "wrong-pass")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmail)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	tests := []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
	}

	for _, token := range tests {
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Authenticate(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestAuthenticateRejectsDeletedUser(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ana", Surname: "García", Email: "ana@example.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(context.Background(), "ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	delete(repo.users, "ana@example.com")

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authenticate() after delete error = %v, want ErrUnauthorized", err)
	}
}
