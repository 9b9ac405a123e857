package bookcopy

import (
	"fmt"
	"library-lending/internal/pkg/apperrors"
	"strings"
	"time"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
	StatusLost      Status = "lost"
)

// transitions lists, for each status, the statuses a copy may move to.
// Lost is terminal.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusBorrowed},
	StatusBorrowed:  {StatusAvailable, StatusLost},
	StatusLost:      {},
}

type BookCopy struct {
	ID        int64
	BookID    int64
	Barcode   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", apperrors.NewValidationError("status", fmt.Sprintf("unknown book copy status %q", raw))
	}
	return s, nil
}

func ValidateTransition(from, to Status) error {
	if !to.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown book copy status %q", to))
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, from, to)
	}
	return nil
}

// SourcesOf returns every status from which a copy may legally reach to.
func SourcesOf(to Status) []Status {
	sources := make([]Status, 0, 2)
	for _, from := range []Status{StatusAvailable, StatusBorrowed, StatusLost} {
		if from.CanTransitionTo(to) {
			sources = append(sources, from)
		}
	}
	return sources
}
