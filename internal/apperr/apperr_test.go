package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isdelr/taskflow-be/internal/apperr"
)

func TestKindOfThroughWrapping(t *testing.T) {
	base := apperr.New(apperr.Forbidden, "nope")
	wrapped := fmt.Errorf("handling request: %w", base)

	require.Equal(t, apperr.Forbidden, apperr.KindOf(wrapped))
	require.True(t, apperr.IsKind(wrapped, apperr.Forbidden))
	require.Equal(t, apperr.Kind(0), apperr.KindOf(errors.New("plain")))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := apperr.Wrap(apperr.Storage, "insert task", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "insert task")
	require.Contains(t, err.Error(), "disk on fire")
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.Validation:         http.StatusBadRequest,
		apperr.InvalidCredentials: http.StatusUnauthorized,
		apperr.Forbidden:          http.StatusForbidden,
		apperr.NotFound:           http.StatusNotFound,
		apperr.Storage:            http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, apperr.HTTPStatus(apperr.New(kind, "x")))
	}
	require.Equal(t, http.StatusInternalServerError, apperr.HTTPStatus(errors.New("untyped")))
}
