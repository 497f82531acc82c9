package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exerciser_actions_total",
		Help: "Total number of scheduler actions taken, by action type",
	}, []string{"action"})

	MessagesPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exerciser_messages_published_total",
		Help: "Total number of identifiers published to the stream under test",
	})

	MessagesConsumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exerciser_messages_consumed_total",
		Help: "Total number of identifiers received and decoded by consumers",
	})

	ConsumeTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exerciser_consume_timeouts_total",
		Help: "Total number of bounded receives that elapsed without a message",
	})

	TransportErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exerciser_transport_errors_total",
		Help: "Total number of tolerated publish/consume transport errors",
	})

	OracleLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "exerciser_oracle_length",
		Help: "Length of the canonical ordered sequence agreed by all consumers",
	})

	PausedServers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "exerciser_paused_servers",
		Help: "Number of server processes currently suspended",
	})
)
