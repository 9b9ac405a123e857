package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoutingKeyBorrowingOpened = "borrowing.opened"
	RoutingKeyBorrowingClosed = "borrowing.closed"
	RoutingKeyFineAssessed    = "fine.assessed"
	RoutingKeyFinePaid        = "fine.paid"
	RoutingKeyEmailRequested  = "notification.email.requested"
)

// Envelope wraps every payload published to the exchange.
type Envelope struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(eventType string, payload any) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type BorrowingOpenedEvent struct {
	BorrowingID int64     `json:"borrowingId"`
	CustomerID  int64     `json:"customerId"`
	CopyID      int64     `json:"copyId"`
	BorrowDate  time.Time `json:"borrowDate"`
	DueDate     time.Time `json:"dueDate"`
}

type BorrowingClosedEvent struct {
	BorrowingID int64     `json:"borrowingId"`
	CustomerID  int64     `json:"customerId"`
	CopyID      int64     `json:"copyId"`
	Outcome     string    `json:"outcome"`
	ReturnDate  time.Time `json:"returnDate"`
	FineID      *int64    `json:"fineId,omitempty"`
}

type FineAssessedEvent struct {
	FineID      int64  `json:"fineId"`
	BorrowingID int64  `json:"borrowingId"`
	Reason      string `json:"reason"`
	Amount      string `json:"amount"`
}

type FinePaidEvent struct {
	FineID      int64     `json:"fineId"`
	BorrowingID int64     `json:"borrowingId"`
	Amount      string    `json:"amount"`
	PaidAt      time.Time `json:"paidAt"`
}

// EmailRequestedEvent asks the mail transport to deliver a message.
type EmailRequestedEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
