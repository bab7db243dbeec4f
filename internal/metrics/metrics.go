package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total successful signups",
		},
	)
	LoginsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total successful logins",
		},
	)
	TasksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total tasks created",
		},
	)
	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_total",
			Help: "Total notification emails by kind and outcome",
		},
		[]string{"kind", "status"}, // welcome|farewell, ok|error
	)
	MailQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_depth",
			Help: "Current mail worker queue depth",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(SignupsTotal)
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(TasksCreatedTotal)
	prometheus.MustRegister(EmailsTotal)
	prometheus.MustRegister(MailQueueDepth)
}
