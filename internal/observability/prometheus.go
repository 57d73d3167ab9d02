package observability

import (
	"fmt"
	"net/http"
	"time"

	"hirescore/internal/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusConfig holds the scrape endpoint settings
type PrometheusConfig struct {
	Enabled  bool
	Endpoint string
	Port     string
}

// NewPrometheusReader creates the OTel metric reader backing the scrape
// endpoint. Returns nil when Prometheus is disabled.
func NewPrometheusReader(cfg PrometheusConfig) (metric.Reader, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	return exporter, nil
}

// StartPrometheusServer serves the scrape endpoint on its own port in the
// background. The exporter registers with the default registry, which
// promhttp.Handler reads.
func StartPrometheusServer(cfg PrometheusConfig) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(cfg.Endpoint, promhttp.Handler())

	addr := ":" + cfg.Port
	fmt.Printf("Starting Prometheus metrics server on http://localhost%s\n", addr)
	fmt.Printf("Metrics available at: http://localhost%s%s\n", addr, cfg.Endpoint)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Prometheus server error: %v\n", err)
		}
	}()

	return mux
}

// GetPrometheusConfig extracts the Prometheus section from the application
// config, falling back to defaults when no config is available
func GetPrometheusConfig(cfg *config.Config) PrometheusConfig {
	if cfg != nil {
		return PrometheusConfig{
			Enabled:  cfg.Observability.Prometheus.Enabled,
			Endpoint: cfg.Observability.Prometheus.Endpoint,
			Port:     cfg.Observability.Prometheus.Port,
		}
	}

	return PrometheusConfig{
		Enabled:  true,
		Endpoint: "/metrics",
		Port:     "9090",
	}
}
