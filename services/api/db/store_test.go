package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsMissingLocation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			"fk_violation",
			&pgconn.PgError{Code: "23503", Message: "insert or update on table \"location_comments\" violates foreign key constraint"},
			true,
		},
		{
			"raised_exception",
			&pgconn.PgError{Code: "P0001", Message: "Location with id 999999 does not exist"},
			true,
		},
		{
			"wrapped_pg_error",
			fmt.Errorf("insert comment: %w", &pgconn.PgError{Code: "P0001", Message: "Location with id 7 does not exist"}),
			true,
		},
		{
			"other_pg_error",
			&pgconn.PgError{Code: "23514", Message: "check constraint violated"},
			false,
		},
		{
			"plain_error",
			errors.New("connection refused"),
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isMissingLocation(tc.err))
		})
	}
}
