package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskflow-be/internal/auth"
	"github.com/isdelr/taskflow-be/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	a := auth.New("test-secret")
	user := models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}

	token, err := a.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "Ana", claims.Name)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := auth.New("secret-a")
	verifier := auth.New("secret-b")

	token, err := issuer.GenerateToken(models.User{ID: "u1", Name: "Ana"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := auth.New("test-secret")
	_, err := a.ValidateToken("not-a-token")
	require.Error(t, err)
}
