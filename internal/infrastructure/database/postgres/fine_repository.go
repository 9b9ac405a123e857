package postgres

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/domain/fine"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type FineRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ fine.Repository = (*FineRepository)(nil)

func NewFineRepository(db DBPool, logger *slog.Logger) *FineRepository {
	if db == nil {
		panic("DBPool cannot be nil for FineRepository")
	}
	return &FineRepository{db: db, logger: logger.With("component", "FineRepository")}
}

// amounts are read as text so that numeric precision survives the round trip.
func scanFine(row pgx.Row) (*fine.Fine, error) {
	var (
		f      fine.Fine
		amount string
	)
	err := row.Scan(
		&f.ID, &f.BorrowingID, &f.CustomerID, &f.CustomerEmail, &amount,
		&f.Reason, &f.Status, &f.PaidAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid fine amount %q: %w", amount, err)
	}
	return &f, nil
}

func (r *FineRepository) selectFines() *goqu.SelectDataset {
	return dialect.From(goqu.T("fines").As("f")).Prepared(true).
		Select(
			goqu.I("f.id"),
			goqu.I("f.borrowing_id"),
			goqu.I("b.customer_id"),
			goqu.I("c.email"),
			goqu.L(`"f"."amount"::text`).As("amount"),
			goqu.I("f.reason"),
			goqu.I("f.status"),
			goqu.I("f.paid_at"),
			goqu.I("f.created_at"),
			goqu.I("f.updated_at"),
		).
		Join(goqu.T("borrowings").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("f.borrowing_id")))).
		Join(goqu.T("customers").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.customer_id"))))
}

func (r *FineRepository) CreateInTx(ctx context.Context, tx pgx.Tx, f *fine.Fine) (*fine.Fine, error) {
	sql := `
        INSERT INTO fines (borrowing_id, amount, reason, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, amount::text, created_at, updated_at`

	created := *f
	var amount string
	err := tx.QueryRow(ctx, sql, f.BorrowingID, f.Amount, string(f.Reason), string(f.Status)).
		Scan(&created.ID, &amount, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert fine", "borrowing_id", f.BorrowingID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	if created.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &created, nil
}

func (r *FineRepository) HasOutstandingForCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	sql := `
        SELECT EXISTS (
            SELECT 1 FROM fines f
            JOIN borrowings b ON b.id = f.borrowing_id
            WHERE b.customer_id = $1 AND f.status = 'outstanding'
        )`

	var exists bool
	if err := tx.QueryRow(ctx, sql, customerID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check outstanding fines", "customer_id", customerID, "error", err)
		return false, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *FineRepository) MarkPaid(ctx context.Context, borrowingID int64) (*fine.Fine, error) {
	sql := `
        UPDATE fines
        SET status = 'paid', paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
        WHERE borrowing_id = $1
        RETURNING id`

	start := time.Now()
	var fineID int64
	err := r.db.QueryRow(ctx, sql, borrowingID).Scan(&fineID)
	observe("MarkFinePaid", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no fine for borrowing %d", apperrors.ErrNotFound, borrowingID)
		}
		r.logger.ErrorContext(ctx, "Failed to mark fine paid", "borrowing_id", borrowingID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return r.FindByID(ctx, fineID)
}

func (r *FineRepository) FindByID(ctx context.Context, fineID int64) (*fine.Fine, error) {
	return r.findOne(ctx, "FindFineByID", goqu.I("f.id").Eq(fineID))
}

func (r *FineRepository) FindByBorrowingID(ctx context.Context, borrowingID int64) (*fine.Fine, error) {
	return r.findOne(ctx, "FindFineByBorrowingID", goqu.I("f.borrowing_id").Eq(borrowingID))
}

func (r *FineRepository) findOne(ctx context.Context, name string, where goqu.Expression) (*fine.Fine, error) {
	query, args, err := r.selectFines().Where(where).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: building fine query: %w", apperrors.ErrInternalServer, err)
	}

	start := time.Now()
	f, err := scanFine(r.db.QueryRow(ctx, query, args...))
	observe(name, start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fine", apperrors.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to load fine", "query", name, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return f, nil
}

func (r *FineRepository) List(ctx context.Context, filter fine.Filter) ([]fine.Fine, error) {
	ds := r.selectFines()
	if filter.BorrowingID > 0 {
		ds = ds.Where(goqu.I("f.borrowing_id").Eq(filter.BorrowingID))
	}
	if filter.CustomerID > 0 {
		ds = ds.Where(goqu.I("b.customer_id").Eq(filter.CustomerID))
	}
	if email := strings.TrimSpace(filter.CustomerEmail); email != "" {
		ds = ds.Where(goqu.Func("lower", goqu.I("c.email")).Eq(strings.ToLower(email)))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.I("f.status").Eq(string(filter.Status)))
	}

	query, args, err := ds.Order(goqu.I("f.id").Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: building fine query: %w", apperrors.ErrInternalServer, err)
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe("ListFines", start, err)
		r.logger.ErrorContext(ctx, "Failed to list fines", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	fines := make([]fine.Fine, 0)
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan fine row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		fines = append(fines, *f)
	}
	err = rows.Err()
	observe("ListFines", start, err)
	if err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return fines, nil
}
