package fine

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, f *Fine) (*Fine, error)

	HasOutstandingForCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error)

	MarkPaid(ctx context.Context, borrowingID int64) (*Fine, error)

	FindByID(ctx context.Context, fineID int64) (*Fine, error)

	FindByBorrowingID(ctx context.Context, borrowingID int64) (*Fine, error)

	List(ctx context.Context, filter Filter) ([]Fine, error)
}
