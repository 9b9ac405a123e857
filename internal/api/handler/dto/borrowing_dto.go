package dto

import (
	"fmt"
	"library-lending/internal/domain/borrowing"
	"net/url"
	"strings"
	"time"
)

type OpenBorrowingRequest struct {
	CustomerID int64  `json:"customerId"`
	CopyID     int64  `json:"copyId"`
	DueDate    string `json:"dueDate"`
}

func (r *OpenBorrowingRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	if r.CopyID <= 0 {
		return fmt.Errorf("copyId must be a positive number")
	}
	if _, err := ParseDate(r.DueDate); err != nil {
		return fmt.Errorf("dueDate: %w", err)
	}
	return nil
}

func (r *OpenBorrowingRequest) ParsedDueDate() time.Time {
	t, _ := ParseDate(r.DueDate)
	return t
}

// CloseBorrowingRequest closes a borrowing with status "returned" or "lost".
type CloseBorrowingRequest struct {
	ReturnDate string `json:"returnDate"`
	Status     string `json:"status"`
}

func (r *CloseBorrowingRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return fmt.Errorf("status is required")
	}
	if _, err := ParseDate(r.ReturnDate); err != nil {
		return fmt.Errorf("returnDate: %w", err)
	}
	return nil
}

func (r *CloseBorrowingRequest) ParsedReturnDate() time.Time {
	t, _ := ParseDate(r.ReturnDate)
	return t
}

type BorrowingResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CopyID        string    `json:"copyId"`
	BorrowDate    time.Time `json:"borrowDate"`
	DueDate       string    `json:"dueDate"`
	ReturnDate    *string   `json:"returnDate,omitempty"`
	Status        string    `json:"status"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	BookTitle     string    `json:"bookTitle,omitempty"`
	Barcode       string    `json:"barcode,omitempty"`
}

type CloseBorrowingResponse struct {
	Borrowing BorrowingResponse `json:"borrowing"`
	Fine      *FineResponse     `json:"fine,omitempty"`
}

func NewBorrowingResponse(b *borrowing.Borrowing) BorrowingResponse {
	if b == nil {
		return BorrowingResponse{}
	}
	resp := BorrowingResponse{
		ID:         formatID(b.ID),
		CustomerID: formatID(b.CustomerID),
		CopyID:     formatID(b.CopyID),
		BorrowDate: b.BorrowDate,
		DueDate:    formatDate(b.DueDate),
		Status:     string(b.Status),
	}
	if b.ReturnDate != nil {
		s := formatDate(*b.ReturnDate)
		resp.ReturnDate = &s
	}
	return resp
}

func NewBorrowingDetailsResponse(d *borrowing.Details) BorrowingResponse {
	if d == nil {
		return BorrowingResponse{}
	}
	resp := NewBorrowingResponse(&d.Borrowing)
	resp.CustomerEmail = d.CustomerEmail
	resp.BookTitle = d.BookTitle
	resp.Barcode = d.Barcode
	return resp
}

func NewBorrowingListResponse(list []borrowing.Details) []BorrowingResponse {
	resp := make([]BorrowingResponse, len(list))
	for i := range list {
		resp[i] = NewBorrowingDetailsResponse(&list[i])
	}
	return resp
}

func NewCloseBorrowingResponse(result *borrowing.CloseResult) CloseBorrowingResponse {
	resp := CloseBorrowingResponse{Borrowing: NewBorrowingResponse(result.Borrowing)}
	if result.Fine != nil {
		f := NewFineResponse(result.Fine)
		resp.Fine = &f
	}
	return resp
}

// BorrowingFilterFromQuery reads borrowingId, copyId, customerId, startDate,
// endDate and status. Missing parameters leave the filter open.
func BorrowingFilterFromQuery(q url.Values) (borrowing.Filter, error) {
	var (
		filter borrowing.Filter
		err    error
	)
	if filter.BorrowingID, err = queryID(q, "borrowingId"); err != nil {
		return filter, err
	}
	if filter.CopyID, err = queryID(q, "copyId"); err != nil {
		return filter, err
	}
	if filter.CustomerID, err = queryID(q, "customerId"); err != nil {
		return filter, err
	}
	if filter.StartDate, err = queryDate(q, "startDate"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryDate(q, "endDate"); err != nil {
		return filter, err
	}
	if raw := q.Get("status"); strings.TrimSpace(raw) != "" {
		if filter.Status, err = borrowing.ParseStatus(raw); err != nil {
			return filter, err
		}
	}
	return filter, nil
}
