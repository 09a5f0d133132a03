package client

import (
	"errors"
	"testing"

	. "staffdir/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want func(t *testing.T, err error)
	}{
		{
			name: "validation failure carries the violations",
			code: fiber.StatusBadRequest,
			body: `{"errors":[{"field":"name","message":"Name is required"}]}`,
			want: func(t *testing.T, err error) {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Len(t, validationErr.Violations, 1)
				assert.Equal(t, "name", validationErr.Violations[0].Field)
				assert.Equal(t, "Name is required", validationErr.Violations[0].Message)
			},
		},
		{
			name: "bad request without violations",
			code: fiber.StatusBadRequest,
			body: `{"message":"expected multipart form data"}`,
			want: func(t *testing.T, err error) {
				var validationErr *ValidationError
				assert.False(t, errors.As(err, &validationErr))
				assert.Contains(t, err.Error(), "expected multipart form data")
			},
		},
		{
			name: "not found",
			code: fiber.StatusNotFound,
			body: `{"message":"employee not found"}`,
			want: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmployeeNotFound)
			},
		},
		{
			name: "server failure maps to store unavailable",
			code: fiber.StatusServiceUnavailable,
			body: `{"message":"database is down"}`,
			want: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrStoreUnavailable)
				assert.Contains(t, err.Error(), "database is down")
			},
		},
		{
			name: "unparseable body still maps by status",
			code: fiber.StatusInternalServerError,
			body: `not json`,
			want: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrStoreUnavailable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, decodeError(tt.code, []byte(tt.body)))
		})
	}
}

func TestSaveEmployee_EditWithoutInitialRecord(t *testing.T) {
	c := New("http://localhost:8280")

	_, err := c.SaveEmployee(FormParams{Mode: FormEdit}, EmployeePayload{}, nil, "")
	assert.Error(t, err)
}
