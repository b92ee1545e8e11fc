package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type output struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Profession string `json:"profession,omitempty"`
	DoctorID   string `json:"doctor_id,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		name        = flag.String("name", "Admin", "User first name")
		surname     = flag.String("surname", "Clinicore", "User surname")
		email       = flag.String("email", "admin@clinicore.local", "User email")
		password    = flag.String("password", "", "Plaintext password (required)")
		profession  = flag.String("profession", "", "Profession; clinicians also get a doctor profile")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Emails are stored verbatim; only flag whitespace is stripped.
	userEmail := strings.TrimSpace(*email)

	if existing, err := repo.GetUserByEmail(ctx, userEmail); err == nil {
		fmt.Fprintf(os.Stderr, "user %s already exists (%s)\n", userEmail, existing.ID)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:           ulid.MustNew(ulid.Now(), rand.Reader).String(),
		Name:         *name,
		Surname:      *surname,
		Email:        userEmail,
		Profession:   strings.TrimSpace(*profession),
		PasswordHash: hash,
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	out := output{
		UserID:     user.ID,
		Email:      user.Email,
		Profession: user.Profession,
	}

	if user.IsClinician() {
		doctor := &model.Doctor{
			ID:         ulid.MustNew(ulid.Now(), rand.Reader).String(),
			Name:       user.Name,
			Surname:    user.Surname,
			Profession: user.Profession,
			Email:      user.Email,
		}
		if err := repo.CreateDoctor(ctx, doctor); err != nil {
			fmt.Fprintln(os.Stderr, "create doctor profile:", err)
			os.Exit(1)
		}
		out.DoctorID = doctor.ID
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
