package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstructorsMapStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest, ErrorTypeValidation},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound, ErrorTypeNotFound},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden, ErrorTypeForbidden},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{"conflict", NewConflictError("dup"), http.StatusConflict, ErrorTypeConflict},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, ErrorTypeInternal},
		{"rate limited", NewRateLimitedError("slow"), http.StatusTooManyRequests, ErrorTypeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewValidationError("invalid status", "Blocked", "valid: To Do, Done")
	assert.Equal(t, "validation_error: invalid status (Blocked; valid: To Do, Done)", err.Error())
	assert.Equal(t, "not_found: ticket not found", NewNotFoundError("ticket not found").Error())
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("use case: %w", NewForbiddenError("not a member"))

	assert.True(t, IsForbiddenError(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql duplicate", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), true},
		{"mysql other", &mysql.MySQLError{Number: 1045}, false},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite unique", fmt.Errorf("UNIQUE constraint failed: projects.key"), true},
		{"unrelated", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
