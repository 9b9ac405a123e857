package handler

import (
	"bytes"
	"context"
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/domain/borrowing"
	"library-lending/internal/domain/customer"
	"library-lending/internal/domain/fine"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

type MockManager struct {
	mock.Mock
}

func (m *MockManager) OpenBorrowing(ctx context.Context, customerID, copyID int64, dueDate time.Time) (*borrowing.Borrowing, error) {
	args := m.Called(ctx, customerID, copyID, dueDate)
	if b, ok := args.Get(0).(*borrowing.Borrowing); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockManager) CloseBorrowing(ctx context.Context, borrowingID int64, returnDate time.Time, outcome string) (*borrowing.CloseResult, error) {
	args := m.Called(ctx, borrowingID, returnDate, outcome)
	if res, ok := args.Get(0).(*borrowing.CloseResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockManager) GetBorrowing(ctx context.Context, borrowingID int64) (*borrowing.Details, error) {
	args := m.Called(ctx, borrowingID)
	if d, ok := args.Get(0).(*borrowing.Details); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockManager) ListBorrowings(ctx context.Context, filter borrowing.Filter) ([]borrowing.Details, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]borrowing.Details); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockManager) ListOpenBorrowings(ctx context.Context) ([]borrowing.Details, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]borrowing.Details); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) AssessOnLoss(ctx context.Context, tx pgx.Tx, borrowingID int64) (*fine.Fine, error) {
	args := m.Called(ctx, tx, borrowingID)
	if f, ok := args.Get(0).(*fine.Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) AssessOnLateReturn(ctx context.Context, tx pgx.Tx, borrowingID int64, dueDate, returnDate time.Time) (*fine.Fine, error) {
	args := m.Called(ctx, tx, borrowingID, dueDate, returnDate)
	if f, ok := args.Get(0).(*fine.Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) HasOutstandingFine(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	args := m.Called(ctx, tx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngine) MarkPaid(ctx context.Context, borrowingID int64, status string) (*fine.Fine, error) {
	args := m.Called(ctx, borrowingID, status)
	if f, ok := args.Get(0).(*fine.Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) GetFine(ctx context.Context, fineID int64) (*fine.Fine, error) {
	args := m.Called(ctx, fineID)
	if f, ok := args.Get(0).(*fine.Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) GetFineByBorrowing(ctx context.Context, borrowingID int64) (*fine.Fine, error) {
	args := m.Called(ctx, borrowingID)
	if f, ok := args.Get(0).(*fine.Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEngine) ListFines(ctx context.Context, filter fine.Filter) ([]fine.Fine, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]fine.Fine); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Transition(ctx context.Context, tx pgx.Tx, copyID int64, to bookcopy.Status) error {
	return m.Called(ctx, tx, copyID, to).Error(0)
}

func (m *MockTracker) LockCopy(ctx context.Context, tx pgx.Tx, copyID int64) (*bookcopy.BookCopy, error) {
	args := m.Called(ctx, tx, copyID)
	if c, ok := args.Get(0).(*bookcopy.BookCopy); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTracker) GetCopy(ctx context.Context, copyID int64) (*bookcopy.BookCopy, error) {
	args := m.Called(ctx, copyID)
	if c, ok := args.Get(0).(*bookcopy.BookCopy); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTracker) GetCopyByBarcode(ctx context.Context, barcode string) (*bookcopy.BookCopy, error) {
	args := m.Called(ctx, barcode)
	if c, ok := args.Get(0).(*bookcopy.BookCopy); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// newRequest builds a request with the given chi URL params set as key/value pairs.
func newRequest(method, target, body string, params ...string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if len(params) == 0 {
		return req
	}
	rctx := &chi.Context{}
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
