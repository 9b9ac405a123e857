package postgres

import (
	"bytes"
	"errors"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations were not met"

var logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

func TestTranslateDBError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "book_copies_barcode_key"}, apperrors.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrConflict},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "40P01"}, apperrors.ErrDatabase},
		{"generic", errors.New("broken pipe"), apperrors.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDBError(tt.in, logger), tt.want)
		})
	}

	assert.NoError(t, translateDBError(nil, logger))
}
