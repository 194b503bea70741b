package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "conduit/internal/domain/errors"
	"conduit/internal/usecase"
)

func TestValidate_RegisterRequest_Valid(t *testing.T) {
	cv := New()

	err := cv.Validate(&usecase.RegisterRequest{
		User: usecase.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "12345",
		},
	})

	assert.NoError(t, err)
}

// Short numeric passwords are acceptable on registration; strength rules are
// not part of the contract.
func TestValidate_RegisterRequest_ShortPassword(t *testing.T) {
	cv := New()

	err := cv.Validate(&usecase.RegisterRequest{
		User: usecase.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "1",
		},
	})

	assert.NoError(t, err)
}

func TestValidate_RegisterRequest_MissingFields(t *testing.T) {
	cv := New()

	err := cv.Validate(&usecase.RegisterRequest{
		User: usecase.RegisterInput{Username: "alice"},
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "email: required")
	assert.Contains(t, appErr.Details(), "password: required")
	assert.NotContains(t, appErr.Details(), "username")
}

func TestValidate_RegisterRequest_BadEmail(t *testing.T) {
	cv := New()

	err := cv.Validate(&usecase.RegisterRequest{
		User: usecase.RegisterInput{
			Username: "alice",
			Email:    "not-an-email",
			Password: "12345",
		},
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "email: not a valid email")
}

func TestValidate_UpdateRequest_AllFieldsOptional(t *testing.T) {
	cv := New()

	err := cv.Validate(&usecase.UpdateRequest{})

	assert.NoError(t, err)
}

func TestValidate_UpdateRequest_PresentFieldsChecked(t *testing.T) {
	cv := New()

	badEmail := "nope"
	err := cv.Validate(&usecase.UpdateRequest{
		User: usecase.UpdateInput{Email: &badEmail},
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "email: not a valid email")
}

func TestValidate_UpdateRequest_BadImageURL(t *testing.T) {
	cv := New()

	badURL := "not a url"
	err := cv.Validate(&usecase.UpdateRequest{
		User: usecase.UpdateInput{Image: &badURL},
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "image: not a valid url")
}
