package fine

import (
	"bytes"
	"context"
	"errors"
	"library-lending/internal/event"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

type TxMock struct {
	pgx.Tx
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateInTx(ctx context.Context, tx pgx.Tx, f *Fine) (*Fine, error) {
	args := m.Called(ctx, tx, f)
	if created, ok := args.Get(0).(*Fine); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) HasOutstandingForCustomerInTx(ctx context.Context, tx pgx.Tx, customerID int64) (bool, error) {
	args := m.Called(ctx, tx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MarkPaid(ctx context.Context, borrowingID int64) (*Fine, error) {
	args := m.Called(ctx, borrowingID)
	if f, ok := args.Get(0).(*Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, fineID int64) (*Fine, error) {
	args := m.Called(ctx, fineID)
	if f, ok := args.Get(0).(*Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindByBorrowingID(ctx context.Context, borrowingID int64) (*Fine, error) {
	args := m.Called(ctx, borrowingID)
	if f, ok := args.Get(0).(*Fine); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Fine, error) {
	args := m.Called(ctx, filter)
	if fines, ok := args.Get(0).([]Fine); ok {
		return fines, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBorrowingOpened(ctx context.Context, e event.BorrowingOpenedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishBorrowingClosed(ctx context.Context, e event.BorrowingClosedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishFineAssessed(ctx context.Context, e event.FineAssessedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishFinePaid(ctx context.Context, e event.FinePaidEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockPublisher) PublishEmailRequested(ctx context.Context, e event.EmailRequestedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func fineWith(reason Reason, amount string) any {
	return mock.MatchedBy(func(f *Fine) bool {
		return f.Reason == reason &&
			f.Status == StatusOutstanding &&
			f.Amount.Equal(decimal.RequireFromString(amount))
	})
}

func TestAssessOnLoss(t *testing.T) {
	ctx := context.Background()
	tx := &TxMock{}
	repo := new(MockRepository)
	engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)

	repo.On("CreateInTx", ctx, tx, fineWith(ReasonLoss, "300")).
		Return(&Fine{ID: 1, BorrowingID: 10, Amount: decimal.NewFromInt(300), Reason: ReasonLoss, Status: StatusOutstanding}, nil)

	f, err := engine.AssessOnLoss(ctx, tx, 10)

	require.NoError(t, err)
	assert.Equal(t, "300.00", f.Amount.StringFixed(2))
	assert.Equal(t, StatusOutstanding, f.Status)
	repo.AssertExpectations(t)
}

func TestAssessOnLateReturn(t *testing.T) {
	ctx := context.Background()
	tx := &TxMock{}
	due := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("late return creates a fine", func(t *testing.T) {
		repo := new(MockRepository)
		engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)
		repo.On("CreateInTx", ctx, tx, fineWith(ReasonLateReturn, "100")).
			Return(&Fine{ID: 2, BorrowingID: 11, Amount: decimal.NewFromInt(100), Reason: ReasonLateReturn, Status: StatusOutstanding}, nil)

		f, err := engine.AssessOnLateReturn(ctx, tx, 11, due, due.AddDate(0, 0, 1))

		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, ReasonLateReturn, f.Reason)
		repo.AssertExpectations(t)
	})

	t.Run("return later on the due day is on time", func(t *testing.T) {
		repo := new(MockRepository)
		engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)

		f, err := engine.AssessOnLateReturn(ctx, tx, 11, due, due.Add(23*time.Hour))

		assert.NoError(t, err)
		assert.Nil(t, f)
		repo.AssertNotCalled(t, "CreateInTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("early return is on time", func(t *testing.T) {
		repo := new(MockRepository)
		engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)

		f, err := engine.AssessOnLateReturn(ctx, tx, 11, due, due.AddDate(0, 0, -3))

		assert.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("configured policy amount is used", func(t *testing.T) {
		repo := new(MockRepository)
		policy, err := NewPolicy("", "42.5")
		require.NoError(t, err)
		engine := NewEngine(repo, policy, new(MockPublisher), logger)
		repo.On("CreateInTx", ctx, tx, fineWith(ReasonLateReturn, "42.50")).
			Return(&Fine{ID: 3, Amount: decimal.RequireFromString("42.50")}, nil)

		_, err = engine.AssessOnLateReturn(ctx, tx, 12, due, due.AddDate(0, 0, 2))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("marks an outstanding fine paid and publishes", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		engine := NewEngine(repo, DefaultPolicy(), pub, logger)
		paidAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

		repo.On("FindByBorrowingID", ctx, int64(10)).Return(&Fine{ID: 1, BorrowingID: 10, Status: StatusOutstanding}, nil)
		repo.On("MarkPaid", ctx, int64(10)).Return(&Fine{ID: 1, BorrowingID: 10, Amount: decimal.NewFromInt(300), Status: StatusPaid, PaidAt: &paidAt}, nil)
		pub.On("PublishFinePaid", ctx, event.FinePaidEvent{FineID: 1, BorrowingID: 10, Amount: "300.00", PaidAt: paidAt}).Return(nil)

		f, err := engine.MarkPaid(ctx, 10, "Paid")

		require.NoError(t, err)
		assert.Equal(t, StatusPaid, f.Status)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("already paid is a no-op", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		engine := NewEngine(repo, DefaultPolicy(), pub, logger)
		repo.On("FindByBorrowingID", ctx, int64(10)).Return(&Fine{ID: 1, BorrowingID: 10, Status: StatusPaid}, nil)

		f, err := engine.MarkPaid(ctx, 10, "paid")

		require.NoError(t, err)
		assert.Equal(t, StatusPaid, f.Status)
		repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "PublishFinePaid", mock.Anything, mock.Anything)
	})

	t.Run("any other status is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)

		_, err := engine.MarkPaid(ctx, 10, "outstanding")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "FindByBorrowingID", mock.Anything, mock.Anything)
	})

	t.Run("no fine for borrowing is not found", func(t *testing.T) {
		repo := new(MockRepository)
		engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)
		repo.On("FindByBorrowingID", ctx, int64(77)).Return(nil, apperrors.ErrNotFound)

		_, err := engine.MarkPaid(ctx, 77, "paid")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("publish failure does not fail the payment", func(t *testing.T) {
		repo := new(MockRepository)
		pub := new(MockPublisher)
		engine := NewEngine(repo, DefaultPolicy(), pub, logger)
		repo.On("FindByBorrowingID", ctx, int64(10)).Return(&Fine{ID: 1, BorrowingID: 10, Status: StatusOutstanding}, nil)
		repo.On("MarkPaid", ctx, int64(10)).Return(&Fine{ID: 1, BorrowingID: 10, Status: StatusPaid}, nil)
		pub.On("PublishFinePaid", ctx, mock.Anything).Return(errors.New("broker down"))

		_, err := engine.MarkPaid(ctx, 10, "paid")

		assert.NoError(t, err)
	})
}

func TestHasOutstandingFineDelegates(t *testing.T) {
	ctx := context.Background()
	tx := &TxMock{}
	repo := new(MockRepository)
	engine := NewEngine(repo, DefaultPolicy(), new(MockPublisher), logger)
	repo.On("HasOutstandingForCustomerInTx", ctx, tx, int64(5)).Return(true, nil)

	owes, err := engine.HasOutstandingFine(ctx, tx, 5)

	assert.NoError(t, err)
	assert.True(t, owes)
}

func TestLookupsValidateIDs(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(new(MockRepository), DefaultPolicy(), new(MockPublisher), logger)

	_, err := engine.GetFine(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = engine.GetFineByBorrowing(ctx, -4)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
