package bookcopy

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	FindByID(ctx context.Context, copyID int64) (*BookCopy, error)

	FindByBarcode(ctx context.Context, barcode string) (*BookCopy, error)

	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, copyID int64) (*BookCopy, error)

	// UpdateStatusInTx sets the status only while the current status is one of
	// from. It reports false when no row matched.
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, copyID int64, from []Status, to Status) (bool, error)
}
