package monitoring

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBorrowingClosed(t *testing.T) {
	Lending.BorrowingsClosed.Reset()

	RecordBorrowingClosed("lost", "success")
	RecordBorrowingClosed("lost", "success")
	RecordBorrowingClosed("returned", "failure_not_found")

	expected := `
		# HELP library_lending_borrowings_closed_total Close requests by outcome and result.
		# TYPE library_lending_borrowings_closed_total counter
		library_lending_borrowings_closed_total{outcome="lost",status="success"} 2
		library_lending_borrowings_closed_total{outcome="returned",status="failure_not_found"} 1
	`
	err := testutil.CollectAndCompare(Lending.BorrowingsClosed, strings.NewReader(expected))
	assert.NoError(t, err)
}

func TestRecordFineAssessed(t *testing.T) {
	Lending.FinesAssessed.Reset()

	RecordFineAssessed("late_return")

	assert.Equal(t, 1.0, testutil.ToFloat64(Lending.FinesAssessed.WithLabelValues("late_return")))
	assert.Equal(t, 0.0, testutil.ToFloat64(Lending.FinesAssessed.WithLabelValues("lost")))
}

func TestRecordDBQuery(t *testing.T) {
	DB.QueryDuration.Reset()

	RecordDBQuery("FindCopyByID", "success", 3*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DB.QueryDuration))
}
