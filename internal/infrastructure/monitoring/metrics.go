package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LendingMetrics struct {
	BorrowingsOpened  *prometheus.CounterVec
	BorrowingsClosed  *prometheus.CounterVec
	FinesAssessed     *prometheus.CounterVec
	FinesPaid         prometheus.Counter
	CopyTransitions   *prometheus.CounterVec
	RemindersSent     *prometheus.CounterVec
	ReminderSweepTime prometheus.Histogram
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_lending_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Lending = LendingMetrics{
		BorrowingsOpened: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_borrowings_opened_total",
				Help: "Borrow requests by result.",
			},
			[]string{"status"},
		),
		BorrowingsClosed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_borrowings_closed_total",
				Help: "Close requests by outcome and result.",
			},
			[]string{"outcome", "status"},
		),
		FinesAssessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_fines_assessed_total",
				Help: "Fines created, by reason.",
			},
			[]string{"reason"},
		),
		FinesPaid: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_lending_fines_paid_total",
				Help: "Fines marked as paid.",
			},
		),
		CopyTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_copy_transitions_total",
				Help: "Book copy status transitions by target status and result.",
			},
			[]string{"to", "status"},
		),
		RemindersSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_reminders_total",
				Help: "Due date reminders by delivery result.",
			},
			[]string{"status"},
		),
		ReminderSweepTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "library_lending_reminder_sweep_duration_seconds",
				Help:    "Duration of a due date reminder sweep.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordBorrowingOpened(status string) {
	Lending.BorrowingsOpened.WithLabelValues(status).Inc()
}

func RecordBorrowingClosed(outcome, status string) {
	Lending.BorrowingsClosed.WithLabelValues(outcome, status).Inc()
}

func RecordFineAssessed(reason string) {
	Lending.FinesAssessed.WithLabelValues(reason).Inc()
}

func RecordFinePaid() {
	Lending.FinesPaid.Inc()
}

func RecordCopyTransition(to, status string) {
	Lending.CopyTransitions.WithLabelValues(to, status).Inc()
}

func RecordReminder(status string) {
	Lending.RemindersSent.WithLabelValues(status).Inc()
}

func RecordReminderSweep(duration time.Duration) {
	Lending.ReminderSweepTime.Observe(duration.Seconds())
}
