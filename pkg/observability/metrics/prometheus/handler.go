/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the scrape endpoint is served.
const MetricsPath = "/metrics"

// Handler serves the Prometheus scrape endpoint.
type Handler struct {
	gatherer prometheus.Gatherer
	http     http.Handler
}

// HandlerOpt configures a Handler.
type HandlerOpt func(h *Handler)

// WithGatherer scrapes g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) HandlerOpt {
	return func(h *Handler) {
		h.gatherer = g
	}
}

// NewHandler returns the /metrics handler.
func NewHandler(opts ...HandlerOpt) *Handler {
	h := &Handler{gatherer: prometheus.DefaultGatherer}

	for _, opt := range opts {
		opt(h)
	}

	h.http = promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorLog:          &promErrorLog{},
		ErrorHandling:     promhttp.ContinueOnError,
	})

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.http.ServeHTTP(w, r)
}

// Mux returns a standalone mux serving only the scrape endpoint.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, h)

	return mux
}

// Register mounts the scrape endpoint on the echo router.
func (h *Handler) Register(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.GET(MetricsPath, echo.WrapHandler(h), m...)
}

type promErrorLog struct{}

func (l *promErrorLog) Println(v ...interface{}) {
	logger.Warn(fmt.Sprint(v...))
}
