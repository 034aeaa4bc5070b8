package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindAuthorization:   http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindInfrastructure:  http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.HTTPStatus(), k.String())
	}
}

func TestInfraKeepsTypedErrors(t *testing.T) {
	v := Validation(CodeInvalidDate, "bad date")
	assert.Same(t, v, Infra(v))

	wrapped := fmt.Errorf("create: %w", v)
	assert.Equal(t, wrapped, Infra(wrapped))
	assert.True(t, Is(wrapped, KindValidation))

	assert.Nil(t, Infra(nil))
}

func TestInfraWrapsPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := Infra(cause)

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindInfrastructure, e.Kind)
	assert.Equal(t, CodeInternal, e.Code)
	assert.True(t, e.Retryable())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInfrastructure, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInfrastructure))
}
