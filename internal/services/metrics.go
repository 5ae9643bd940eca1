package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "course_evaluation_submissions_total",
		Help: "Evaluation submissions by outcome",
	}, []string{"outcome"})

	aggregationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "course_evaluation_aggregation_duration_seconds",
		Help:    "Time spent building statistics for a period",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	periodTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "course_evaluation_period_transitions_total",
		Help: "Evaluation period status changes by target status",
	}, []string{"status"})
)

const (
	outcomeAccepted   = "accepted"
	outcomeDuplicate  = "duplicate"
	outcomeInvalid    = "invalid"
	outcomeOutOfRange = "out_of_range"
	outcomeClosed     = "period_closed"
	outcomeError      = "error"
)
