package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	prometheus.MustRegister(ActionsTotal, MessagesPublished, MessagesConsumed, ConsumeTimeouts, TransportErrors, OracleLength, PausedServers)
}

func StartMetricsServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", port)
		fmt.Println("[METRICS] Prometheus exporter listening on", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			fmt.Printf("[METRICS] Failed to start metrics server: %v\n", err)
		}
	}()
}

// CountAction updates the per-action counter after each scheduler step.
func CountAction(action string) {
	ActionsTotal.WithLabelValues(action).Inc()
}
