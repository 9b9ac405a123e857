package fine

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/event"
	"library-lending/internal/infrastructure/monitoring"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Engine decides whether a closed borrowing owes a fine and tracks payment.
type Engine interface {
	AssessOnLoss(ctx context.Context, tx pgx.Tx, borrowingID int64) (*Fine, error)

	// AssessOnLateReturn returns a nil fine when the copy came back on time.
	AssessOnLateReturn(ctx context.Context, tx pgx.Tx, borrowingID int64, dueDate, returnDate time.Time) (*Fine, error)

	HasOutstandingFine(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error)

	MarkPaid(ctx context.Context, borrowingID int64, status string) (*Fine, error)

	GetFine(ctx context.Context, fineID int64) (*Fine, error)

	GetFineByBorrowing(ctx context.Context, borrowingID int64) (*Fine, error)

	ListFines(ctx context.Context, filter Filter) ([]Fine, error)
}

type engineImpl struct {
	repo      Repository
	policy    Policy
	publisher event.EventPublisher
	logger    *slog.Logger
}

var _ Engine = (*engineImpl)(nil)

func NewEngine(repo Repository, policy Policy, publisher event.EventPublisher, logger *slog.Logger) Engine {
	if repo == nil || publisher == nil {
		panic("fine engine dependencies cannot be nil")
	}
	return &engineImpl{
		repo:      repo,
		policy:    policy,
		publisher: publisher,
		logger:    logger.With("component", "FineAssessmentEngine"),
	}
}

func (e *engineImpl) AssessOnLoss(ctx context.Context, tx pgx.Tx, borrowingID int64) (*Fine, error) {
	return e.assess(ctx, tx, borrowingID, ReasonLoss)
}

func (e *engineImpl) AssessOnLateReturn(ctx context.Context, tx pgx.Tx, borrowingID int64, dueDate, returnDate time.Time) (*Fine, error) {
	if !IsLate(dueDate, returnDate) {
		e.logger.DebugContext(ctx, "Returned on time, no fine", "borrowing_id", borrowingID)
		return nil, nil
	}
	return e.assess(ctx, tx, borrowingID, ReasonLateReturn)
}

func (e *engineImpl) assess(ctx context.Context, tx pgx.Tx, borrowingID int64, reason Reason) (*Fine, error) {
	created, err := e.repo.CreateInTx(ctx, tx, &Fine{
		BorrowingID: borrowingID,
		Amount:      e.policy.AmountFor(reason),
		Reason:      reason,
		Status:      StatusOutstanding,
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to create fine", "borrowing_id", borrowingID, "reason", reason, "error", err)
		return nil, err
	}
	e.logger.InfoContext(ctx, "Fine assessed", "fine_id", created.ID, "borrowing_id", borrowingID, "reason", reason, "amount", created.Amount.StringFixed(2))
	return created, nil
}

func (e *engineImpl) HasOutstandingFine(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	return e.repo.HasOutstandingForCustomerInTx(ctx, tx, customerID)
}

func (e *engineImpl) MarkPaid(ctx context.Context, borrowingID int64, status string) (*Fine, error) {
	if borrowingID <= 0 {
		return nil, apperrors.NewValidationError("borrowingId", "must be greater than zero")
	}
	if !strings.EqualFold(strings.TrimSpace(status), string(StatusPaid)) {
		return nil, apperrors.NewValidationError("status", "only 'paid' is accepted")
	}

	current, err := e.repo.FindByBorrowingID(ctx, borrowingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fine for borrowing %d", apperrors.ErrNotFound, borrowingID)
		}
		return nil, err
	}
	if current.Status == StatusPaid {
		e.logger.InfoContext(ctx, "Fine already paid", "fine_id", current.ID, "borrowing_id", borrowingID)
		return current, nil
	}

	paid, err := e.repo.MarkPaid(ctx, borrowingID)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to mark fine as paid", "borrowing_id", borrowingID, "error", err)
		return nil, err
	}
	monitoring.RecordFinePaid()
	e.logger.InfoContext(ctx, "Fine marked as paid", "fine_id", paid.ID, "borrowing_id", borrowingID)

	paidAt := time.Now()
	if paid.PaidAt != nil {
		paidAt = *paid.PaidAt
	}
	if pubErr := e.publisher.PublishFinePaid(ctx, event.FinePaidEvent{
		FineID:      paid.ID,
		BorrowingID: paid.BorrowingID,
		Amount:      paid.Amount.StringFixed(2),
		PaidAt:      paidAt,
	}); pubErr != nil {
		e.logger.ErrorContext(ctx, "Failed to publish fine paid event", slog.Any("error", pubErr))
	}
	return paid, nil
}

func (e *engineImpl) GetFine(ctx context.Context, fineID int64) (*Fine, error) {
	if fineID <= 0 {
		return nil, apperrors.NewValidationError("fineId", "must be greater than zero")
	}
	return e.repo.FindByID(ctx, fineID)
}

func (e *engineImpl) GetFineByBorrowing(ctx context.Context, borrowingID int64) (*Fine, error) {
	if borrowingID <= 0 {
		return nil, apperrors.NewValidationError("borrowingId", "must be greater than zero")
	}
	return e.repo.FindByBorrowingID(ctx, borrowingID)
}

func (e *engineImpl) ListFines(ctx context.Context, filter Filter) ([]Fine, error) {
	return e.repo.List(ctx, filter)
}
