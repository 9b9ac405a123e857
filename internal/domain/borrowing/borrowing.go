package borrowing

import (
	"fmt"
	"library-lending/internal/pkg/apperrors"
	"strings"
	"time"
)

type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusLost     Status = "lost"
)

type Borrowing struct {
	ID         int64
	CustomerID int64
	CopyID     int64
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Details is a borrowing joined with the customer, copy and book it refers to.
type Details struct {
	Borrowing
	CustomerEmail string
	BookTitle     string
	Barcode       string
}

// Filter narrows a borrowing listing. Zero values are ignored. StartDate and
// EndDate bound the borrow date exclusively.
type Filter struct {
	BorrowingID int64
	CopyID      int64
	CustomerID  int64
	StartDate   *time.Time
	EndDate     *time.Time
	Status      Status
}

func (b *Borrowing) IsOpen() bool {
	return b.Status == StatusBorrowed
}

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusBorrowed, StatusReturned, StatusLost:
		return s, nil
	default:
		return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown borrowing status %q", raw))
	}
}

// ParseOutcome accepts the two terminal statuses a borrowing may be closed with.
func ParseOutcome(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusReturned, StatusLost:
		return s, nil
	default:
		return "", apperrors.NewValidationError("status", "must be 'returned' or 'lost'")
	}
}

// ValidateDueDate requires the due date to fall on a later calendar day than now.
func ValidateDueDate(dueDate, now time.Time) error {
	if dueDate.IsZero() {
		return apperrors.NewValidationError("dueDate", "is required")
	}
	if !CivilDate(dueDate).After(CivilDate(now)) {
		return apperrors.NewValidationError("dueDate", "must be tomorrow or later")
	}
	return nil
}

// CivilDate drops the clock part of t, keeping the UTC calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil is floor(due - today) in whole calendar days.
func DaysUntil(dueDate, today time.Time) int {
	return int(CivilDate(dueDate).Sub(CivilDate(today)).Hours() / 24)
}
