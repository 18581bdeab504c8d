package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "domain error keeps its status and message",
			err:        NotFound("Bootcamp", "abc"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Bootcamp not found with id: abc",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("handler: %w", BadRequest("Please upload a file")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please upload a file",
		},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Duplicate field value entered",
		},
		{
			name:       "missing row",
			err:        pgx.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Resource not found",
		},
		{
			name:       "malformed id",
			err:        fmt.Errorf("%w: %q is not a valid id", ErrCast, "123"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Resource not found",
		},
		{
			name:       "empty request body",
			err:        io.EOF,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please send a valid JSON body",
		},
		{
			name:       "unclassified error never leaks",
			err:        errors.New("pq: connection refused at 10.0.0.3"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := Normalize(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	err := Unauthorized("User %s is not authorized to update bootcamp %s", "u1", "b1")
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "User u1 is not authorized to update bootcamp b1", err.Error())

	assert.Equal(t, http.StatusForbidden, Forbidden("nope").Status)
}
