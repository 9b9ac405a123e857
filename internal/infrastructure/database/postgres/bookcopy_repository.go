package postgres

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const bookCopyColumns = `id, book_id, barcode, status, created_at, updated_at`

type BookCopyRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ bookcopy.Repository = (*BookCopyRepository)(nil)

func NewBookCopyRepository(db DBPool, logger *slog.Logger) *BookCopyRepository {
	if db == nil {
		panic("DBPool cannot be nil for BookCopyRepository")
	}
	return &BookCopyRepository{db: db, logger: logger.With("component", "BookCopyRepository")}
}

func scanBookCopy(row pgx.Row) (*bookcopy.BookCopy, error) {
	var c bookcopy.BookCopy
	err := row.Scan(&c.ID, &c.BookID, &c.Barcode, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BookCopyRepository) FindByID(ctx context.Context, copyID int64) (*bookcopy.BookCopy, error) {
	query := `SELECT ` + bookCopyColumns + ` FROM book_copies WHERE id = $1`

	start := time.Now()
	c, err := scanBookCopy(r.db.QueryRow(ctx, query, copyID))
	observe("FindCopyByID", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Book copy not found", "copy_id", copyID)
			return nil, fmt.Errorf("%w: book copy %d", apperrors.ErrNotFound, copyID)
		}
		r.logger.ErrorContext(ctx, "Failed to get book copy by ID", "copy_id", copyID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return c, nil
}

func (r *BookCopyRepository) FindByBarcode(ctx context.Context, barcode string) (*bookcopy.BookCopy, error) {
	query := `SELECT ` + bookCopyColumns + ` FROM book_copies WHERE barcode = $1`

	start := time.Now()
	c, err := scanBookCopy(r.db.QueryRow(ctx, query, barcode))
	observe("FindCopyByBarcode", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Book copy not found", "barcode", barcode)
			return nil, fmt.Errorf("%w: book copy with barcode %s", apperrors.ErrNotFound, barcode)
		}
		r.logger.ErrorContext(ctx, "Failed to get book copy by barcode", "barcode", barcode, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return c, nil
}

func (r *BookCopyRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, copyID int64) (*bookcopy.BookCopy, error) {
	query := `SELECT ` + bookCopyColumns + ` FROM book_copies WHERE id = $1 FOR UPDATE`

	c, err := scanBookCopy(tx.QueryRow(ctx, query, copyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.InfoContext(ctx, "No book copy to lock", "copy_id", copyID)
			return nil, fmt.Errorf("%w: book copy %d", apperrors.ErrNotFound, copyID)
		}
		r.logger.ErrorContext(ctx, "Failed to find/lock book copy", "copy_id", copyID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return c, nil
}

func (r *BookCopyRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, copyID int64, from []bookcopy.Status, to bookcopy.Status) (bool, error) {
	sql := `
        UPDATE book_copies
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = ANY($3)`

	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	cmdTag, err := tx.Exec(ctx, sql, string(to), copyID, sources)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update book copy status", "copy_id", copyID, "to", to, "error", err)
		return false, translateDBError(err, r.logger)
	}
	return cmdTag.RowsAffected() == 1, nil
}
