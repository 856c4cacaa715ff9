package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

func newTestAccounts(users *memUsers, notifier *recordingNotifier) *Accounts {
	return NewAccounts(users, newMemSequence(), notifier, "admin@example.com", "admin-secret")
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret1",
		Phone:    "+1 555 123 4567",
	}
}

func TestRegisterAssignsSequenceAndHashesPassword(t *testing.T) {
	users := newMemUsers()
	notifier := &recordingNotifier{}
	accounts := newTestAccounts(users, notifier)

	user, err := accounts.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.UserNumber)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	assert.Equal(t, 1, notifier.welcomes)

	second, err := accounts.Register(context.Background(), RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "secret2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.UserNumber)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	accounts := newTestAccounts(newMemUsers(), &recordingNotifier{})

	in := validRegisterInput()
	in.Email = "  Jane@Example.COM "

	user, err := accounts.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newMemUsers()
	accounts := newTestAccounts(users, &recordingNotifier{})

	_, err := accounts.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = accounts.Register(context.Background(), validRegisterInput())
	var dup *apperr.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, users.count())

	// First registration stays retrievable.
	stored, err := users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.Name)
}

func TestRegisterValidationFailureAssignsNothing(t *testing.T) {
	users := newMemUsers()
	accounts := newTestAccounts(users, &recordingNotifier{})

	in := validRegisterInput()
	in.Password = "short"

	_, err := accounts.Register(context.Background(), in)
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "password", validation.Field)
	assert.Zero(t, users.count())
}

func TestRegisterNotifierFailureDoesNotFailRegistration(t *testing.T) {
	accounts := newTestAccounts(newMemUsers(), &recordingNotifier{fail: true})

	user, err := accounts.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	accounts := newTestAccounts(newMemUsers(), &recordingNotifier{})

	user, err := accounts.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	body, err := json.Marshal(user)
	require.NoError(t, err)

	payload := string(body)
	assert.False(t, strings.Contains(payload, "password"), "expected no password field in %s", payload)
	assert.False(t, strings.Contains(payload, user.PasswordHash))
}

func TestAuthenticate(t *testing.T) {
	accounts := newTestAccounts(newMemUsers(), &recordingNotifier{})

	_, err := accounts.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, err := accounts.Authenticate(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	// Wrong password and unknown account give the same answer.
	_, err = accounts.Authenticate(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = accounts.Authenticate(context.Background(), "nobody@example.com", "secret1")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	users := newMemUsers()
	accounts := newTestAccounts(users, &recordingNotifier{})

	require.NoError(t, accounts.EnsureDefaultAdmin(context.Background()))
	require.NoError(t, accounts.EnsureDefaultAdmin(context.Background()))

	assert.Equal(t, 1, users.count())

	admin, err := users.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestEnsureDefaultAdminSendsNoWelcome(t *testing.T) {
	notifier := &recordingNotifier{}
	accounts := newTestAccounts(newMemUsers(), notifier)

	require.NoError(t, accounts.EnsureDefaultAdmin(context.Background()))
	assert.Zero(t, notifier.welcomes)
}

func TestEnsureDefaultAdminUnconfigured(t *testing.T) {
	users := newMemUsers()
	accounts := NewAccounts(users, newMemSequence(), &recordingNotifier{}, "", "")

	require.NoError(t, accounts.EnsureDefaultAdmin(context.Background()))
	assert.Zero(t, users.count())
}
