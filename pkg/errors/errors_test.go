package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("enquiry", nil), http.StatusNotFound},
		{Validation("bad input", nil), http.StatusBadRequest},
		{Unauthorized("no token", nil), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Conflict("duplicate", nil), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode())
	}
}

func TestIsNotFoundThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading enquiry: %w", NotFound("enquiry", nil))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "enquiry not found", NotFound("enquiry", nil).Error())

	wrapped := Validation("bad mobile", errors.New("len != 10"))
	assert.Equal(t, "bad mobile: len != 10", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "len != 10")
}
