package borrowing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, b *Borrowing) (*Borrowing, error)

	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, borrowingID int64) (*Borrowing, error)

	// CloseInTx only touches a borrowing that is still open.
	CloseInTx(ctx context.Context, tx pgx.Tx, borrowingID int64, status Status, returnDate time.Time) error

	FindDetailsByID(ctx context.Context, borrowingID int64) (*Details, error)

	List(ctx context.Context, filter Filter) ([]Details, error)

	ListOpen(ctx context.Context) ([]Details, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
