package services_test

import (
	"testing"

	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(username, email string) services.RegisterInput {
	return services.RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, pair, err := svc.Register(registerInput("kumar", "kumar@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := auth.ValidateToken(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	// Login works by email and by username.
	_, _, err = svc.Login("kumar@example.com", "secret123")
	assert.NoError(t, err)
	_, _, err = svc.Login("kumar", "secret123")
	assert.NoError(t, err)
}

func TestRegisterUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, _, err := svc.Register(registerInput("mala", "mala@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(registerInput("other", "mala@example.com"))
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, _, err = svc.Register(registerInput("mala", "new@example.com"))
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, _, err := svc.Register(registerInput("ravi", "ravi@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Login("ravi", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("active", false).Error)
	_, _, err = svc.Login("ravi", "secret123")
	assert.ErrorIs(t, err, services.ErrAccountDisabled)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, _, err := svc.Register(registerInput("devi", "devi@example.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "nope", "newsecret1"), services.ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(user.ID, "secret123", "newsecret1"))

	_, _, err = svc.Login("devi", "newsecret1")
	assert.NoError(t, err)
	_, _, err = svc.Login("devi", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
