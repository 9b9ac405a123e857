package bookcopy

import (
	"context"
	"errors"
	"fmt"
	"library-lending/internal/infrastructure/monitoring"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Tracker owns the status field of book copies. All writes go through
// Transition so illegal moves are rejected before they reach storage.
type Tracker interface {
	Transition(ctx context.Context, tx pgx.Tx, copyID int64, to Status) error

	LockCopy(ctx context.Context, tx pgx.Tx, copyID int64) (*BookCopy, error)

	GetCopy(ctx context.Context, copyID int64) (*BookCopy, error)

	GetCopyByBarcode(ctx context.Context, barcode string) (*BookCopy, error)
}

type trackerImpl struct {
	repo   Repository
	logger *slog.Logger
}

var _ Tracker = (*trackerImpl)(nil)

func NewTracker(repo Repository, logger *slog.Logger) Tracker {
	if repo == nil {
		panic("book copy repository cannot be nil")
	}
	return &trackerImpl{repo: repo, logger: logger.With("component", "BookCopyTracker")}
}

func (t *trackerImpl) Transition(ctx context.Context, tx pgx.Tx, copyID int64, to Status) (err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		monitoring.RecordCopyTransition(string(to), status)
	}()

	if !to.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown book copy status %q", to))
	}
	sources := SourcesOf(to)
	if len(sources) == 0 {
		return fmt.Errorf("%w: nothing may transition to %s", apperrors.ErrInvalidTransition, to)
	}

	updated, err := t.repo.UpdateStatusInTx(ctx, tx, copyID, sources, to)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to update book copy status", "copy_id", copyID, "to", to, "error", err)
		return err
	}
	if updated {
		t.logger.InfoContext(ctx, "Book copy status changed", "copy_id", copyID, "to", to)
		return nil
	}

	current, err := t.repo.FindByIDForUpdate(ctx, tx, copyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: book copy %d not found", apperrors.ErrNotFound, copyID)
		}
		return err
	}
	if err := ValidateTransition(current.Status, to); err != nil {
		t.logger.WarnContext(ctx, "Rejected book copy transition", "copy_id", copyID, "from", current.Status, "to", to)
		return err
	}
	// The row matched a legal source status on re-read, which means it changed
	// between the two statements. Surface it as a conflict rather than retry.
	return fmt.Errorf("%w: book copy %d changed concurrently", apperrors.ErrInvalidTransition, copyID)
}

func (t *trackerImpl) LockCopy(ctx context.Context, tx pgx.Tx, copyID int64) (*BookCopy, error) {
	return t.repo.FindByIDForUpdate(ctx, tx, copyID)
}

func (t *trackerImpl) GetCopy(ctx context.Context, copyID int64) (*BookCopy, error) {
	if copyID <= 0 {
		return nil, apperrors.NewValidationError("copyId", "must be greater than zero")
	}
	return t.repo.FindByID(ctx, copyID)
}

func (t *trackerImpl) GetCopyByBarcode(ctx context.Context, barcode string) (*BookCopy, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, apperrors.NewValidationError("barcode", "must not be empty")
	}
	return t.repo.FindByBarcode(ctx, barcode)
}
