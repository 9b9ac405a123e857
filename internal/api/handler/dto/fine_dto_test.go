package dto

import (
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/domain/customer"
	"library-lending/internal/domain/fine"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFinePaidRequestValidate(t *testing.T) {
	assert.NoError(t, (&MarkFinePaidRequest{Status: "paid"}).Validate())
	assert.Error(t, (&MarkFinePaidRequest{Status: "  "}).Validate())
}

func TestNewFineResponse(t *testing.T) {
	paidAt := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	f := &fine.Fine{
		ID:            3,
		BorrowingID:   8,
		CustomerID:    2,
		CustomerEmail: "reader@example.com",
		Amount:        decimal.RequireFromString("100"),
		Reason:        fine.ReasonLateReturn,
		Status:        fine.StatusPaid,
		PaidAt:        &paidAt,
	}

	resp := NewFineResponse(f)

	assert.Equal(t, "3", resp.ID)
	assert.Equal(t, "8", resp.BorrowingID)
	assert.Equal(t, "2", resp.CustomerID)
	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "late_return", resp.Reason)
	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, &paidAt, resp.PaidAt)

	f.CustomerID = 0
	assert.Empty(t, NewFineResponse(f).CustomerID)
	assert.Equal(t, FineResponse{}, NewFineResponse(nil))
	assert.Len(t, NewFineListResponse([]fine.Fine{*f, *f}), 2)
}

func TestFineFilterFromQuery(t *testing.T) {
	filter, err := FineFilterFromQuery(url.Values{
		"borrowingId":   {"1"},
		"customerId":    {"2"},
		"customerEmail": {" reader@example.com "},
		"status":        {"OUTSTANDING"},
	})
	require.NoError(t, err)
	assert.Equal(t, fine.Filter{
		BorrowingID:   1,
		CustomerID:    2,
		CustomerEmail: "reader@example.com",
		Status:        fine.StatusOutstanding,
	}, filter)

	_, err = FineFilterFromQuery(url.Values{"customerId": {"-1"}})
	assert.Error(t, err)

	_, err = FineFilterFromQuery(url.Values{"status": {"waived"}})
	assert.Error(t, err)
}

func TestNewCopyResponse(t *testing.T) {
	resp := NewCopyResponse(&bookcopy.BookCopy{ID: 4, BookID: 1, Barcode: "LIB-0004", Status: bookcopy.StatusLost})
	assert.Equal(t, "4", resp.ID)
	assert.Equal(t, "1", resp.BookID)
	assert.Equal(t, "LIB-0004", resp.Barcode)
	assert.Equal(t, "lost", resp.Status)
	assert.Equal(t, CopyResponse{}, NewCopyResponse(nil))
}

func TestNewCustomerResponse(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := NewCustomerResponse(&customer.Customer{
		ID:        12,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: created,
	})
	assert.Equal(t, "12", resp.CustomerID)
	assert.Equal(t, "Ada Lovelace", resp.Name)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Empty(t, resp.Phone)
	assert.Equal(t, created, resp.CreateDate)
}
