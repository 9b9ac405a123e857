package postgres

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/domain/borrowing"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

const borrowingColumns = `id, customer_id, copy_id, borrow_date, due_date, return_date, status, created_at, updated_at`

type BorrowingRepository struct {
	txManager
	db     DBPool
	logger *slog.Logger
}

var _ borrowing.Repository = (*BorrowingRepository)(nil)

func NewBorrowingRepository(db DBPool, logger *slog.Logger) *BorrowingRepository {
	if db == nil {
		panic("DBPool cannot be nil for BorrowingRepository")
	}
	repoLogger := logger.With("component", "BorrowingRepository")
	return &BorrowingRepository{
		txManager: txManager{db: db, logger: repoLogger},
		db:        db,
		logger:    repoLogger,
	}
}

func (r *BorrowingRepository) CreateInTx(ctx context.Context, tx pgx.Tx, b *borrowing.Borrowing) (*borrowing.Borrowing, error) {
	sql := `
        INSERT INTO borrowings (customer_id, copy_id, borrow_date, due_date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	created := *b
	err := tx.QueryRow(ctx, sql, b.CustomerID, b.CopyID, b.BorrowDate, b.DueDate, string(b.Status)).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert borrowing", "customer_id", b.CustomerID, "copy_id", b.CopyID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	r.logger.InfoContext(ctx, "Borrowing inserted", "borrowing_id", created.ID)
	return &created, nil
}

func (r *BorrowingRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, borrowingID int64) (*borrowing.Borrowing, error) {
	query := `SELECT ` + borrowingColumns + ` FROM borrowings WHERE id = $1 FOR UPDATE`

	var b borrowing.Borrowing
	err := tx.QueryRow(ctx, query, borrowingID).Scan(
		&b.ID, &b.CustomerID, &b.CopyID, &b.BorrowDate, &b.DueDate, &b.ReturnDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.InfoContext(ctx, "No borrowing to lock", "borrowing_id", borrowingID)
			return nil, fmt.Errorf("%w: borrowing %d", apperrors.ErrNotFound, borrowingID)
		}
		r.logger.ErrorContext(ctx, "Failed to find/lock borrowing", "borrowing_id", borrowingID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &b, nil
}

func (r *BorrowingRepository) CloseInTx(ctx context.Context, tx pgx.Tx, borrowingID int64, status borrowing.Status, returnDate time.Time) error {
	sql := `
        UPDATE borrowings
        SET status = $1, return_date = $2, updated_at = NOW()
        WHERE id = $3 AND status = 'borrowed'`

	cmdTag, err := tx.Exec(ctx, sql, string(status), borrowing.CivilDate(returnDate), borrowingID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to close borrowing", "borrowing_id", borrowingID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Borrowing not open for closing", "borrowing_id", borrowingID)
		return fmt.Errorf("%w: id %d", apperrors.ErrBorrowingNotFound, borrowingID)
	}
	return nil
}

func (r *BorrowingRepository) selectDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("borrowings").As("b")).Prepared(true).
		Select(
			goqu.I("b.id"),
			goqu.I("b.customer_id"),
			goqu.I("b.copy_id"),
			goqu.I("b.borrow_date"),
			goqu.I("b.due_date"),
			goqu.I("b.return_date"),
			goqu.I("b.status"),
			goqu.I("b.created_at"),
			goqu.I("b.updated_at"),
			goqu.I("c.email"),
			goqu.I("bk.title"),
			goqu.I("bc.barcode"),
		).
		Join(goqu.T("customers").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.customer_id")))).
		Join(goqu.T("book_copies").As("bc"), goqu.On(goqu.I("bc.id").Eq(goqu.I("b.copy_id")))).
		Join(goqu.T("books").As("bk"), goqu.On(goqu.I("bk.id").Eq(goqu.I("bc.book_id"))))
}

func applyBorrowingFilter(ds *goqu.SelectDataset, filter borrowing.Filter) *goqu.SelectDataset {
	if filter.BorrowingID > 0 {
		ds = ds.Where(goqu.I("b.id").Eq(filter.BorrowingID))
	}
	if filter.CopyID > 0 {
		ds = ds.Where(goqu.I("b.copy_id").Eq(filter.CopyID))
	}
	if filter.CustomerID > 0 {
		ds = ds.Where(goqu.I("b.customer_id").Eq(filter.CustomerID))
	}
	if filter.StartDate != nil {
		ds = ds.Where(goqu.I("b.borrow_date").Gt(*filter.StartDate))
	}
	if filter.EndDate != nil {
		ds = ds.Where(goqu.I("b.borrow_date").Lt(*filter.EndDate))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.I("b.status").Eq(string(filter.Status)))
	}
	return ds.Order(goqu.I("b.id").Asc())
}

func (r *BorrowingRepository) FindDetailsByID(ctx context.Context, borrowingID int64) (*borrowing.Details, error) {
	found, err := r.queryDetails(ctx, "FindBorrowingByID", borrowing.Filter{BorrowingID: borrowingID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: borrowing %d", apperrors.ErrNotFound, borrowingID)
	}
	return &found[0], nil
}

func (r *BorrowingRepository) List(ctx context.Context, filter borrowing.Filter) ([]borrowing.Details, error) {
	return r.queryDetails(ctx, "ListBorrowings", filter)
}

func (r *BorrowingRepository) ListOpen(ctx context.Context) ([]borrowing.Details, error) {
	return r.queryDetails(ctx, "ListOpenBorrowings", borrowing.Filter{Status: borrowing.StatusBorrowed})
}

func (r *BorrowingRepository) queryDetails(ctx context.Context, name string, filter borrowing.Filter) ([]borrowing.Details, error) {
	query, args, err := applyBorrowingFilter(r.selectDetails(), filter).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%w: building borrowing query: %w", apperrors.ErrInternalServer, err)
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe(name, start, err)
		r.logger.ErrorContext(ctx, "Failed to query borrowings", "query", name, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	result := make([]borrowing.Details, 0)
	for rows.Next() {
		var d borrowing.Details
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.CopyID, &d.BorrowDate, &d.DueDate, &d.ReturnDate, &d.Status,
			&d.CreatedAt, &d.UpdatedAt, &d.CustomerEmail, &d.BookTitle, &d.Barcode,
		); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan borrowing row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		result = append(result, d)
	}
	err = rows.Err()
	observe(name, start, err)
	if err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return result, nil
}
