// Package service contains the application business logic.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clinicore/clinicore/internal/audit"
	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/metrics"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

// Sentinel errors mapped to HTTP responses by the handler layer.
var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized indicates a missing, malformed, or expired token.
	ErrUnauthorized = errors.New("unauthorized")
)

// AccountRepository defines the persistence operations the account
// service needs.
type AccountRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	DoctorEmailExists(ctx context.Context, email string) (bool, error)
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name       string
	Surname    string
	Email      string
	Profession string
	Password   string
}

// AccountService handles registration, login, and token resolution.
type AccountService struct {
	repo      AccountRepository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	metrics   metrics.Recorder
	audit     *audit.Publisher
	dummyHash string
}

// NewAccountService creates an AccountService. The audit publisher may
// be nil when the pipeline is disabled.
func NewAccountService(repo AccountRepository, tokens *auth.TokenManager, logger *slog.Logger, recorder metrics.Recorder, publisher *audit.Publisher) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	// Precompute a hash so login attempts for unknown emails spend the
	// same time as attempts against a real account.
	dummyHash, err := auth.HashPassword("clinicore-timing-pad")
	if err != nil {
		// HashPassword only fails if the system RNG is broken.
		panic(fmt.Sprintf("precompute dummy hash: %v", err))
	}

	return &AccountService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger.With("component", "service.account"),
		metrics:   recorder,
		audit:     publisher,
		dummyHash: dummyHash,
	}
}

// Register creates a user account. When the profession marks the user
// as a clinician, a doctor profile is derived alongside the account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	// Emails are stored and compared verbatim: A@x.com and a@x.com are
	// distinct accounts.
	email := input.Email

	// Pre-check for a friendly error; the unique index is authoritative.
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           newID(),
		Name:         strings.TrimSpace(input.Name),
		Surname:      strings.TrimSpace(input.Surname),
		Email:        email,
		Profession:   strings.TrimSpace(input.Profession),
		PasswordHash: passwordHash,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	s.publishAudit(model.AuditUserRegistered, user.Email, user.ID, "")

	if user.IsClinician() {
		s.deriveDoctorProfile(ctx, user)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"clinician", user.IsClinician(),
	)

	return user, nil
}

// deriveDoctorProfile creates a doctor profile for a clinician account.
// Failures are logged, not returned: the account itself is already
// committed and must stay usable.
func (s *AccountService) deriveDoctorProfile(ctx context.Context, user *model.User) {
	exists, err := s.repo.DoctorEmailExists(ctx, user.Email)
	if err != nil {
		s.logger.Error("failed to check doctor profile",
			"user_id", user.ID,
			"error", err,
		)
		return
	}
	if exists {
		return
	}

	doctor := &model.Doctor{
		ID:         newID(),
		Name:       user.Name,
		Surname:    user.Surname,
		Profession: user.Profession,
		Email:      user.Email,
	}

	if err := s.repo.CreateDoctor(ctx, doctor); err != nil {
		// A concurrent registration may have won the race; the partial
		// unique index on doctors.email makes that benign.
		if errors.Is(err, repository.ErrDoctorEmailExists) {
			return
		}
		s.logger.Error("failed to derive doctor profile",
			"user_id", user.ID,
			"error", err,
		)
		return
	}

	s.metrics.IncDoctorProfileDerived()
	s.publishAudit(model.AuditDoctorDerived, user.Email, doctor.ID, user.Profession)
}

// Login verifies credentials and issues a signed access token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn comparable CPU so unknown emails are not
			// distinguishable from wrong passwords by timing.
			_, _ = auth.VerifyPassword(password, s.dummyHash)
			s.recordLoginFailure(email, "unknown email")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.recordLoginFailure(email, "wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, time.Now())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	s.publishAudit(model.AuditLoginSucceeded, user.Email, user.ID, "")
	s.logger.Info("login succeeded", "user_id", user.ID)

	return token, nil
}

func (s *AccountService) recordLoginFailure(email, reason string) {
	s.metrics.IncLoginFailure()
	s.publishAudit(model.AuditLoginFailed, email, "", reason)
	s.logger.Warn("login failed", "reason", reason)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.IncTokenRejected()
		s.publishAudit(model.AuditTokenRejected, "", "", "")
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Valid signature for an account that no longer exists.
			s.metrics.IncTokenRejected()
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

// ListUsers returns all registered users.
func (s *AccountService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// TokenTTL exposes the configured token lifetime for response metadata.
func (s *AccountService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AccountService) publishAudit(kind, actor, entityID, detail string) {
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

// newID generates a ULID for new entities.
func newID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
