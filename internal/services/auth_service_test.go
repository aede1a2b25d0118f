package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/models"
)

func TestAuthService_SignupCreatesPersonalWorkspace(t *testing.T) {
	env := newServiceEnv(t)

	user, err := env.auth.Signup(SignupInput{Name: " Alice ", Email: "Alice@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	workspace := env.personalWorkspace(t, user.ID)
	assert.Equal(t, "Aliceのワークスペース", workspace.Name)
	assert.Equal(t, user.ID, workspace.OwnerID)

	member, err := env.workspaceRepo.FindMember(workspace.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, member.Role)
}

func TestAuthService_SignupValidation(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.auth.Signup(SignupInput{Name: "", Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidInput))

	var de *apierrors.DomainError
	require.ErrorAs(t, err, &de)
	violations, ok := de.Details.([]FieldViolation)
	require.True(t, ok)
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	env := newServiceEnv(t)
	env.signup(t, "Alice", "alice@example.com")

	_, err := env.auth.Signup(SignupInput{Name: "Other", Email: "ALICE@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	env := newServiceEnv(t)
	created := env.signup(t, "Alice", "alice@example.com")

	user, err := env.auth.Login(LoginInput{Email: " ALICE@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = env.auth.Login(LoginInput{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.GetUser("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
