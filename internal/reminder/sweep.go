package reminder

import (
	"context"
	"fmt"
	"library-lending/internal/config"
	"library-lending/internal/domain/borrowing"
	"library-lending/internal/infrastructure/monitoring"
	"log/slog"
	"time"
)

const (
	defaultSubject  = "Due Date Reminder"
	defaultLeadDays = 1
)

// Notifier delivers a single message. Delivery is best-effort.
type Notifier interface {
	Send(ctx context.Context, address, subject, body string) error
}

type BorrowingSource interface {
	ListOpenBorrowings(ctx context.Context) ([]borrowing.Details, error)
}

// Sweep is one pass over the open borrowings.
type Sweep struct {
	source   BorrowingSource
	notifier Notifier
	leadDays int
	subject  string
	now      func() time.Time
	logger   *slog.Logger
}

func NewSweep(source BorrowingSource, notifier Notifier, cfg config.ReminderConfig, logger *slog.Logger) *Sweep {
	if source == nil || notifier == nil || logger == nil {
		panic("reminder sweep dependencies cannot be nil")
	}
	leadDays := cfg.LeadDays
	if leadDays <= 0 {
		leadDays = defaultLeadDays
	}
	subject := cfg.Subject
	if subject == "" {
		subject = defaultSubject
	}
	return &Sweep{
		source:   source,
		notifier: notifier,
		leadDays: leadDays,
		subject:  subject,
		now:      time.Now,
		logger:   logger.With("job", "DueDateReminder"),
	}
}

func (s *Sweep) Run(ctx context.Context) error {
	startTime := time.Now()
	defer func() { monitoring.RecordReminderSweep(time.Since(startTime)) }()

	s.logger.InfoContext(ctx, "Starting due date reminder sweep.", slog.Int("lead_days", s.leadDays))

	open, err := s.source.ListOpenBorrowings(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list open borrowings, aborting sweep.", slog.Any("error", err))
		return fmt.Errorf("cannot run sweep, failed to list open borrowings: %w", err)
	}

	today := s.now()
	var due, sent, failed int
	for _, b := range open {
		if borrowing.DaysUntil(b.DueDate, today) != s.leadDays {
			continue
		}
		due++

		logCtx := s.logger.With(slog.Int64("borrowingID", b.ID), slog.Int64("customerID", b.CustomerID))
		if b.CustomerEmail == "" {
			logCtx.WarnContext(ctx, "Customer has no email address, skipping reminder.")
			monitoring.RecordReminder("skipped")
			continue
		}

		if sendErr := s.notifier.Send(ctx, b.CustomerEmail, s.subject, s.body(b)); sendErr != nil {
			logCtx.ErrorContext(ctx, "Failed to send due date reminder", slog.Any("error", sendErr))
			monitoring.RecordReminder("error")
			failed++
			continue
		}
		logCtx.DebugContext(ctx, "Due date reminder sent.")
		monitoring.RecordReminder("sent")
		sent++
	}

	summary := s.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("open_borrowings", len(open)),
		slog.Int("due", due),
		slog.Int("sent", sent),
		slog.Int("errors_encountered", failed),
	)
	if failed > 0 {
		summary.WarnContext(ctx, "Due date reminder sweep finished with errors.")
		return fmt.Errorf("sweep completed with %d errors", failed)
	}
	summary.InfoContext(ctx, "Due date reminder sweep finished successfully.")
	return nil
}

func (s *Sweep) body(b borrowing.Details) string {
	when := "tomorrow"
	if s.leadDays != 1 {
		when = fmt.Sprintf("in %d days", s.leadDays)
	}
	return fmt.Sprintf(
		"This book: %s you borrowed on: %s is due %s, please do not bring it back later than %s or there will be a fine.",
		b.BookTitle, b.BorrowDate.Format(time.DateOnly), when, b.DueDate.Format(time.DateOnly),
	)
}
