package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindMapping(t *testing.T) {
	tests := []struct {
		kind    Kind
		status  int
		code    string
		message string
	}{
		{KindBadRequest, http.StatusBadRequest, "BAD_REQUEST", "Bad Request"},
		{KindForbidden, http.StatusForbidden, "FORBIDDEN", "Permission denied"},
		{KindNotFound, http.StatusNotFound, "NOT_FOUND", "Not Found"},
		{KindServerFault, http.StatusInternalServerError, "SERVER_FAULT", "Internal Server Error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.kind.HTTPStatus())
		assert.Equal(t, tt.code, tt.kind.Code())
		assert.Equal(t, tt.message, tt.kind.defaultMessage())
	}
}

func TestConstructors(t *testing.T) {
	appErr := ToError(NewBadRequest("", nil))
	assert.Equal(t, KindBadRequest, appErr.Kind)
	assert.Equal(t, "Bad Request", appErr.Message)

	appErr = ToError(NewForbidden("admin access required"))
	assert.Equal(t, KindForbidden, appErr.Kind)
	assert.Equal(t, "admin access required", appErr.Message)

	appErr = ToError(NewNotFound("user"))
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "user not found", appErr.Message)

	cause := errors.New("boom")
	appErr = ToError(NewServerFault(cause))
	assert.Equal(t, KindServerFault, appErr.Kind)
	assert.ErrorIs(t, appErr, cause)
}

func TestToError_Passthrough(t *testing.T) {
	original := NewForbidden("")
	assert.Same(t, original, error(ToError(original)))
}

func TestToError_NoRowsIsNotFound(t *testing.T) {
	appErr := ToError(pgx.ErrNoRows)
	require.NotNil(t, appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
}

func TestToError_DatabaseErrorMasked(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	appErr := ToError(pgErr)
	require.NotNil(t, appErr)
	assert.Equal(t, KindServerFault, appErr.Kind)
	assert.Equal(t, "Database Error", appErr.Message, "driver details must never reach a client")
}

func TestToError_UnknownIsServerFault(t *testing.T) {
	appErr := ToError(errors.New("something unexpected"))
	require.NotNil(t, appErr)
	assert.Equal(t, KindServerFault, appErr.Kind)
	assert.Equal(t, "Internal Server Error", appErr.Message)
}

func TestToError_Nil(t *testing.T) {
	assert.Nil(t, ToError(nil))
}
