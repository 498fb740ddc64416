package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errMissing = errors.New("vehicle not found")

func TestWrap_UsesFirstMatchingMapping(t *testing.T) {
	err := fmt.Errorf("lookup c9: %w", errMissing)

	appErr := Wrap(err, Mapping{Target: errMissing, Status: http.StatusNotFound})

	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "vehicle not found", appErr.Message)
	assert.ErrorIs(t, appErr, errMissing)
}

func TestWrap_UnknownErrorIsInternal(t *testing.T) {
	appErr := Wrap(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, SystemErrorMessage, appErr.Message)
}

func TestWrap_KeepsExistingAppError(t *testing.T) {
	original := New(nil, http.StatusPreconditionRequired, "confirmation required")
	wrapped := Wrap(fmt.Errorf("delete: %w", original), Mapping{Target: errMissing, Status: http.StatusNotFound})

	assert.Same(t, original, wrapped)
	assert.Equal(t, "confirmation required", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
