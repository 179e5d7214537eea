package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emuats/recipely/backend/internal/model"
	"github.com/emuats/recipely/backend/internal/testhelpers"
)

// recordingEmailService captures welcome emails instead of sending them.
type recordingEmailService struct {
	welcomed []string
}

func (r *recordingEmailService) SendWelcomeEmail(user *model.User) error {
	r.welcomed = append(r.welcomed, user.Email)
	return nil
}

func (r *recordingEmailService) SendEmail(to, subject, body string) error { return nil }

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	emails := &recordingEmailService{}
	svc := NewAuthService(db, "test-secret", emails)

	token, user, err := svc.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Equal(t, []string{"alice@example.com"}, emails.welcomed)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Alice", claims.Name)

	loginToken, loginUser, err := svc.Login("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loginUser.ID)
}

func TestRegister_Validation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret", nil)

	_, _, err := svc.Register("Alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, _, err = svc.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Register("Alice Again", "alice@example.com", "secret456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret", nil)

	_, _, err := svc.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RejectsForgedToken(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret", nil)
	other := NewAuthService(db, "other-secret", nil)

	token, _, err := other.Register("Mallory", "mallory@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetProfileImageURL(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret", nil)

	_, user, err := svc.Register("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.SetProfileImageURL(user.ID, "https://img.example.com/a.png"))

	loaded, err := svc.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", loaded.ProfileImageURL)
}
