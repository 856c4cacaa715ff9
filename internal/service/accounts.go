// Package service holds the business operations behind the HTTP
// handlers. Each operation is an explicit pipeline: validate, compute
// derived fields, assign sequence numbers, persist, then best-effort
// notification. No hidden hooks fire on save.
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
	"shopapi/internal/notify"
	"shopapi/internal/sequence"
	"shopapi/internal/validate"
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type Accounts struct {
	users    UserStore
	sequence sequence.Store
	notifier notify.Notifier

	adminEmail    string
	adminPassword string
}

func NewAccounts(users UserStore, seq sequence.Store, notifier notify.Notifier, adminEmail, adminPassword string) *Accounts {
	return &Accounts{
		users:         users,
		sequence:      seq,
		notifier:      notifier,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  models.Address
}

// Register creates a regular user account and fires the welcome email.
// The returned user carries only the hash, which is excluded from JSON.
func (s *Accounts) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.register(ctx, in, models.RoleUser, true)
}

func (s *Accounts) register(ctx context.Context, in RegisterInput, role string, welcome bool) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.User(in.Name, email, in.Password, in.Phone, role); err != nil {
		return nil, err
	}

	// Fast check for a clean error; the unique index on email catches
	// the race at insert time.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, &apperr.DuplicateError{Field: "email"}
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &apperr.StoreError{Op: "accounts.hash", Err: err}
	}

	number, err := s.sequence.NextSeq(ctx, sequence.UserSequence)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		UserNumber:   number,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      in.Address,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	log.Println("[AUTH] [INFO] user registered:", user.Email)

	if welcome {
		if err := s.notifier.SendWelcome(user.Email, user.Name); err != nil {
			log.Println("[MAIL] [ERROR] welcome email failed:", err)
		}
	}
	return user, nil
}

// Authenticate verifies the credentials. Lookup miss and hash mismatch
// produce the same error.
func (s *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Accounts) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// EnsureDefaultAdmin creates the configured admin account if it does
// not exist yet. Safe to call on every boot.
func (s *Accounts) EnsureDefaultAdmin(ctx context.Context) error {
	if s.adminEmail == "" || s.adminPassword == "" {
		log.Println("[AUTH] [INFO] default admin not configured, skipping bootstrap")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(s.adminEmail))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !apperr.IsNotFound(err) {
		return err
	}

	_, err := s.register(ctx, RegisterInput{
		Name:     "System Administrator",
		Email:    email,
		Password: s.adminPassword,
	}, models.RoleAdmin, false)

	// Another instance may have won the bootstrap race.
	var dup *apperr.DuplicateError
	if errors.As(err, &dup) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Println("[AUTH] [INFO] default admin created:", email)
	return nil
}
