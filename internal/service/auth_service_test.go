package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/repository"
	"wellspace/backend/internal/service"
)

func newAuthService() *service.AuthService {
	store := kv.NewMemoryStore()
	return service.NewAuthService(
		repository.NewUserRepository(store),
		repository.NewSessionRepository(store),
		"test-secret",
		time.Hour,
	)
}

func TestSignUpRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	result, apiErr := svc.SignUp(ctx, "Alice", "alice@example.com", "secret1")
	require.Nil(t, apiErr)
	assert.Equal(t, "Alice", result.User.Name)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)

	_, apiErr = svc.SignUp(ctx, "Other", "ALICE@EXAMPLE.com", "secret2")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email_exists", apiErr.Code)
}

func TestLoginMatchesEmailCaseInsensitivelyAndPasswordExactly(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, apiErr := svc.SignUp(ctx, "Alice", "alice@example.com", "secret1")
	require.Nil(t, apiErr)
	_, apiErr = svc.SignUp(ctx, "Bob", "bob@example.com", "hunter2")
	require.Nil(t, apiErr)

	result, apiErr := svc.Login(ctx, "ALICE@example.COM", "secret1")
	require.Nil(t, apiErr)
	assert.Equal(t, "alice@example.com", result.User.Email)

	// Wrong password and unknown email fail with the same shape.
	_, wrongPassword := svc.Login(ctx, "alice@example.com", "hunter2")
	require.NotNil(t, wrongPassword)
	_, unknownEmail := svc.Login(ctx, "carol@example.com", "secret1")
	require.NotNil(t, unknownEmail)
	assert.Equal(t, wrongPassword.Status, unknownEmail.Status)
	assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Status)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	result, apiErr := svc.SignUp(ctx, "Alice", "alice@example.com", "secret1")
	require.Nil(t, apiErr)

	email, apiErr := svc.ParseToken(result.Token)
	require.Nil(t, apiErr)
	assert.Equal(t, "alice@example.com", email)

	_, apiErr = svc.ParseToken("not-a-token")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestSessionHolderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, apiErr := svc.CurrentSession(ctx)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, apiErr = svc.SignUp(ctx, "Alice", "alice@example.com", "secret1")
	require.Nil(t, apiErr)

	current, apiErr := svc.CurrentSession(ctx)
	require.Nil(t, apiErr)
	assert.Equal(t, "alice@example.com", current.Email)

	require.Nil(t, svc.Logout(ctx))
	_, apiErr = svc.CurrentSession(ctx)
	require.NotNil(t, apiErr)
}
