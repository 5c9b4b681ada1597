package errx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NewWithCause(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeExternal, 500, "boom happened")

	cause := errors.New("socket closed")
	err := reg.NewWithCause(code, cause).WithDetail("host", "smtp.example.com")

	assert.Equal(t, "TEST_BOOM", err.Code)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, "smtp.example.com", err.Detail("host"))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[TEST_BOOM] boom happened: socket closed", err.Error())

	got, ok := reg.Get("BOOM")
	require.True(t, ok)
	assert.Same(t, code, got)
}

func TestError_IsMatchesCode(t *testing.T) {
	reg := NewRegistry("TEST")
	a := reg.Register("A", TypeValidation, 400, "a")
	b := reg.Register("B", TypeValidation, 400, "b")

	wrapped := fmt.Errorf("outer: %w", reg.New(a))
	assert.True(t, errors.Is(wrapped, reg.New(a)))
	assert.False(t, errors.Is(wrapped, reg.New(b)))
}

func TestWrap_PreservesRegisteredCode(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("GONE", TypeNotFound, 404, "gone")

	err := Wrap(reg.New(code), "lookup failed", TypeNotFound)
	assert.Equal(t, "TEST_GONE", err.Code)
	assert.Equal(t, 404, err.HTTPStatus)
	assert.Nil(t, Wrap(nil, "x", TypeInternal))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, 400, Status(Validation("bad")))
	assert.Equal(t, 403, Status(Forbidden("no")))
	assert.Equal(t, 500, Status(errors.New("plain")))
}
