package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsroom_http_request_duration_seconds",
			Help:    "Time taken to handle HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ServiceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_service_errors_total",
			Help: "Total number of errors returned by use cases, by error code",
		},
		[]string{"code"},
	)

	MailsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_mails_published_total",
			Help: "Total number of mail messages published to the queue",
		},
		[]string{"type", "result"},
	)

	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_mails_sent_total",
			Help: "Total number of mails sent by the mail worker",
		},
		[]string{"type", "result"},
	)
)
