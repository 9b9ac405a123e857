package borrowing

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/domain/customer"
	"library-lending/internal/domain/fine"
	"library-lending/internal/event"
	"library-lending/internal/infrastructure/monitoring"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// Manager orchestrates the borrowing lifecycle. Each open and close runs in a
// single transaction that locks the copy or borrowing row it mutates.
type Manager interface {
	OpenBorrowing(ctx context.Context, customerID, copyID int64, dueDate time.Time) (*Borrowing, error)

	CloseBorrowing(ctx context.Context, borrowingID int64, returnDate time.Time, outcome string) (*CloseResult, error)

	GetBorrowing(ctx context.Context, borrowingID int64) (*Details, error)

	ListBorrowings(ctx context.Context, filter Filter) ([]Details, error)

	ListOpenBorrowings(ctx context.Context) ([]Details, error)
}

type CloseResult struct {
	Borrowing *Borrowing
	Fine      *fine.Fine
}

type managerImpl struct {
	repo      Repository
	copies    bookcopy.Tracker
	fines     fine.Engine
	customers customer.CustomerService
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

var _ Manager = (*managerImpl)(nil)

func NewManager(
	repo Repository,
	copies bookcopy.Tracker,
	fines fine.Engine,
	customers customer.CustomerService,
	publisher event.EventPublisher,
	logger *slog.Logger,
) Manager {
	if repo == nil || copies == nil || fines == nil || customers == nil || publisher == nil || logger == nil {
		panic("borrowing manager dependencies cannot be nil")
	}
	return &managerImpl{
		repo:      repo,
		copies:    copies,
		fines:     fines,
		customers: customers,
		publisher: publisher,
		logger:    logger.With("component", "BorrowingLifecycleManager"),
		now:       time.Now,
	}
}

func (m *managerImpl) OpenBorrowing(ctx context.Context, customerID, copyID int64, dueDate time.Time) (opened *Borrowing, err error) {
	logCtx := m.logger.With(slog.Int64("customerID", customerID), slog.Int64("copyID", copyID))
	logCtx.InfoContext(ctx, "Opening borrowing", "dueDate", dueDate.Format(time.DateOnly))

	defer func() {
		monitoring.RecordBorrowingOpened(resultLabel(err))
	}()

	if customerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "must be greater than zero")
	}
	if copyID <= 0 {
		return nil, apperrors.NewValidationError("copyId", "must be greater than zero")
	}
	now := m.now()
	if err = ValidateDueDate(dueDate, now); err != nil {
		return nil, err
	}

	tx, err := m.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer m.rollbackOnError(ctx, tx, &err)

	bookCopy, err := m.copies.LockCopy(ctx, tx, copyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: copy %d does not exist", apperrors.ErrCopyUnavailable, copyID)
		}
		return nil, err
	}
	if bookCopy.Status != bookcopy.StatusAvailable {
		logCtx.WarnContext(ctx, "Copy is not available", "status", bookCopy.Status)
		return nil, fmt.Errorf("%w: copy %d is %s", apperrors.ErrCopyUnavailable, copyID, bookCopy.Status)
	}

	if _, err = m.customers.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	owes, err := m.fines.HasOutstandingFine(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}
	if owes {
		logCtx.WarnContext(ctx, "Customer blocked by outstanding fine")
		err = fmt.Errorf("%w: customer %d", apperrors.ErrOutstandingFine, customerID)
		return nil, err
	}

	opened, err = m.repo.CreateInTx(ctx, tx, &Borrowing{
		CustomerID: customerID,
		CopyID:     copyID,
		BorrowDate: now,
		DueDate:    CivilDate(dueDate),
		Status:     StatusBorrowed,
	})
	if err != nil {
		return nil, err
	}

	if err = m.copies.Transition(ctx, tx, copyID, bookcopy.StatusBorrowed); err != nil {
		return nil, err
	}

	if err = m.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}
	logCtx.InfoContext(ctx, "Borrowing opened", "borrowingID", opened.ID)

	if pubErr := m.publisher.PublishBorrowingOpened(ctx, event.BorrowingOpenedEvent{
		BorrowingID: opened.ID,
		CustomerID:  opened.CustomerID,
		CopyID:      opened.CopyID,
		BorrowDate:  opened.BorrowDate,
		DueDate:     opened.DueDate,
	}); pubErr != nil {
		logCtx.ErrorContext(ctx, "Failed to publish borrowing opened event", slog.Any("error", pubErr))
	}
	return opened, nil
}

func (m *managerImpl) CloseBorrowing(ctx context.Context, borrowingID int64, returnDate time.Time, outcome string) (result *CloseResult, err error) {
	logCtx := m.logger.With(slog.Int64("borrowingID", borrowingID))
	logCtx.InfoContext(ctx, "Closing borrowing", "outcome", outcome)

	status, parseErr := ParseOutcome(outcome)
	defer func() {
		monitoring.RecordBorrowingClosed(string(status), resultLabel(err))
	}()
	if parseErr != nil {
		return nil, parseErr
	}
	if borrowingID <= 0 {
		return nil, apperrors.NewValidationError("borrowingId", "must be greater than zero")
	}
	if returnDate.IsZero() {
		return nil, apperrors.NewValidationError("returnDate", "is required")
	}

	tx, err := m.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer m.rollbackOnError(ctx, tx, &err)

	current, err := m.repo.FindByIDForUpdate(ctx, tx, borrowingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", apperrors.ErrBorrowingNotFound, borrowingID)
		}
		return nil, err
	}
	if !current.IsOpen() {
		logCtx.WarnContext(ctx, "Borrowing already closed", "status", current.Status)
		err = fmt.Errorf("%w: id %d is already %s", apperrors.ErrBorrowingNotFound, borrowingID, current.Status)
		return nil, err
	}
	if CivilDate(returnDate).Before(CivilDate(current.BorrowDate)) {
		err = apperrors.NewValidationError("returnDate", "must not be before the borrow date")
		return nil, err
	}

	var assessed *fine.Fine
	switch status {
	case StatusLost:
		if assessed, err = m.fines.AssessOnLoss(ctx, tx, borrowingID); err != nil {
			return nil, err
		}
		if err = m.copies.Transition(ctx, tx, current.CopyID, bookcopy.StatusLost); err != nil {
			return nil, err
		}
	case StatusReturned:
		if assessed, err = m.fines.AssessOnLateReturn(ctx, tx, borrowingID, current.DueDate, returnDate); err != nil {
			return nil, err
		}
		if err = m.copies.Transition(ctx, tx, current.CopyID, bookcopy.StatusAvailable); err != nil {
			return nil, err
		}
	}

	if err = m.repo.CloseInTx(ctx, tx, borrowingID, status, returnDate); err != nil {
		return nil, err
	}
	if err = m.repo.CommitTx(ctx, tx); err != nil {
		return nil, err
	}

	current.Status = status
	current.ReturnDate = &returnDate
	result = &CloseResult{Borrowing: current, Fine: assessed}
	logCtx.InfoContext(ctx, "Borrowing closed", "status", status, "fined", assessed != nil)

	m.publishClosed(ctx, logCtx, result)
	return result, nil
}

func (m *managerImpl) publishClosed(ctx context.Context, logCtx *slog.Logger, result *CloseResult) {
	closed := event.BorrowingClosedEvent{
		BorrowingID: result.Borrowing.ID,
		CustomerID:  result.Borrowing.CustomerID,
		CopyID:      result.Borrowing.CopyID,
		Outcome:     string(result.Borrowing.Status),
		ReturnDate:  *result.Borrowing.ReturnDate,
	}

	if f := result.Fine; f != nil {
		monitoring.RecordFineAssessed(string(f.Reason))
		closed.FineID = &f.ID
		if pubErr := m.publisher.PublishFineAssessed(ctx, event.FineAssessedEvent{
			FineID:      f.ID,
			BorrowingID: f.BorrowingID,
			Reason:      string(f.Reason),
			Amount:      f.Amount.StringFixed(2),
		}); pubErr != nil {
			logCtx.ErrorContext(ctx, "Failed to publish fine assessed event", slog.Any("error", pubErr))
		}
	}

	if pubErr := m.publisher.PublishBorrowingClosed(ctx, closed); pubErr != nil {
		logCtx.ErrorContext(ctx, "Failed to publish borrowing closed event", slog.Any("error", pubErr))
	}
}

func (m *managerImpl) rollbackOnError(ctx context.Context, tx pgx.Tx, err *error) {
	if p := recover(); p != nil {
		m.logger.ErrorContext(ctx, "Panic during borrowing transaction", "error", p)
		_ = m.repo.RollbackTx(ctx, tx)
		panic(p)
	}
	if *err != nil {
		m.logger.WarnContext(ctx, "Rolling back borrowing transaction", "error", *err)
		_ = m.repo.RollbackTx(ctx, tx)
	}
}

func (m *managerImpl) GetBorrowing(ctx context.Context, borrowingID int64) (*Details, error) {
	if borrowingID <= 0 {
		return nil, apperrors.NewValidationError("borrowingId", "must be greater than zero")
	}
	details, err := m.repo.FindDetailsByID(ctx, borrowingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: borrowing %d not found", apperrors.ErrNotFound, borrowingID)
		}
		return nil, err
	}
	return details, nil
}

func (m *managerImpl) ListBorrowings(ctx context.Context, filter Filter) ([]Details, error) {
	if filter.StartDate != nil && filter.EndDate != nil && !filter.StartDate.Before(*filter.EndDate) {
		return nil, apperrors.NewValidationError("startDate", "must be before endDate")
	}
	return m.repo.List(ctx, filter)
}

func (m *managerImpl) ListOpenBorrowings(ctx context.Context) ([]Details, error) {
	return m.repo.ListOpen(ctx)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrValidation):
		return "failure_validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	case errors.Is(err, apperrors.ErrConflict):
		return "failure_conflict"
	default:
		return "failure_internal"
	}
}
