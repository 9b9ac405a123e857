package fine

import (
	"fmt"
	"library-lending/internal/pkg/apperrors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOutstanding Status = "outstanding"
	StatusPaid        Status = "paid"
)

type Reason string

const (
	ReasonLoss       Reason = "lost"
	ReasonLateReturn Reason = "late_return"
)

const (
	DefaultLostAmount = "300"
	DefaultLateAmount = "100"
)

// Fine is created only when a borrowing is closed as lost or late. The
// customer fields are filled on reads through the borrowing join.
type Fine struct {
	ID            int64
	BorrowingID   int64
	CustomerID    int64
	CustomerEmail string
	Amount        decimal.Decimal
	Reason        Reason
	Status        Status
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	BorrowingID   int64
	CustomerID    int64
	CustomerEmail string
	Status        Status
}

// Policy holds the fixed amounts charged per reason.
type Policy struct {
	LostAmount decimal.Decimal
	LateAmount decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		LostAmount: decimal.RequireFromString(DefaultLostAmount),
		LateAmount: decimal.RequireFromString(DefaultLateAmount),
	}
}

func NewPolicy(lostAmount, lateAmount string) (Policy, error) {
	policy := DefaultPolicy()
	if strings.TrimSpace(lostAmount) != "" {
		amount, err := parseAmount("lostFineAmount", lostAmount)
		if err != nil {
			return Policy{}, err
		}
		policy.LostAmount = amount
	}
	if strings.TrimSpace(lateAmount) != "" {
		amount, err := parseAmount("lateFineAmount", lateAmount)
		if err != nil {
			return Policy{}, err
		}
		policy.LateAmount = amount
	}
	return policy, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field, fmt.Sprintf("invalid amount %q", raw))
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError(field, "amount must be greater than zero")
	}
	return amount.Round(2), nil
}

func (p Policy) AmountFor(reason Reason) decimal.Decimal {
	if reason == ReasonLoss {
		return p.LostAmount
	}
	return p.LateAmount
}

// IsLate compares calendar days, so a copy returned any time on its due day is on time.
func IsLate(dueDate, returnDate time.Time) bool {
	return civilDate(returnDate).After(civilDate(dueDate))
}

// civilDate mirrors borrowing.CivilDate; borrowing imports this package.
func civilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusOutstanding, StatusPaid:
		return s, nil
	default:
		return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown fine status %q", raw))
	}
}
