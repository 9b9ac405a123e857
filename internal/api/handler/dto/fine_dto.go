package dto

import (
	"fmt"
	"library-lending/internal/domain/fine"
	"net/url"
	"strings"
	"time"
)

type MarkFinePaidRequest struct {
	Status string `json:"status"`
}

func (r *MarkFinePaidRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

type FineResponse struct {
	ID            string     `json:"id"`
	BorrowingID   string     `json:"borrowingId"`
	CustomerID    string     `json:"customerId,omitempty"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	Amount        string     `json:"amount"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func NewFineResponse(f *fine.Fine) FineResponse {
	if f == nil {
		return FineResponse{}
	}
	resp := FineResponse{
		ID:            formatID(f.ID),
		BorrowingID:   formatID(f.BorrowingID),
		CustomerEmail: f.CustomerEmail,
		Amount:        f.Amount.StringFixed(2),
		Reason:        string(f.Reason),
		Status:        string(f.Status),
		PaidAt:        f.PaidAt,
		CreatedAt:     f.CreatedAt,
	}
	if f.CustomerID > 0 {
		resp.CustomerID = formatID(f.CustomerID)
	}
	return resp
}

func NewFineListResponse(fines []fine.Fine) []FineResponse {
	resp := make([]FineResponse, len(fines))
	for i := range fines {
		resp[i] = NewFineResponse(&fines[i])
	}
	return resp
}

func FineFilterFromQuery(q url.Values) (fine.Filter, error) {
	var (
		filter fine.Filter
		err    error
	)
	if filter.BorrowingID, err = queryID(q, "borrowingId"); err != nil {
		return filter, err
	}
	if filter.CustomerID, err = queryID(q, "customerId"); err != nil {
		return filter, err
	}
	filter.CustomerEmail = strings.TrimSpace(q.Get("customerEmail"))
	if raw := q.Get("status"); strings.TrimSpace(raw) != "" {
		if filter.Status, err = fine.ParseStatus(raw); err != nil {
			return filter, err
		}
	}
	return filter, nil
}
