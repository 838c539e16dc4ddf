package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes frame counters on a dedicated Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	respawns      prometheus.Counter
	paintedPixels prometheus.Gauge
	phaseSeconds  *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meadow_frames_total",
			Help: "Frames stepped since start.",
		}),
		respawns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meadow_particle_respawns_total",
			Help: "Airborne particles respawned after fading out.",
		}),
		paintedPixels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "meadow_painted_pixels",
			Help: "Velocity texture pixels painted by the player in the last frame.",
		}),
		phaseSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meadow_phase_seconds",
			Help:    "Time spent in each frame phase.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"phase"}),
	}
	m.registry.MustRegister(m.frames, m.respawns, m.paintedPixels, m.phaseSeconds)
	return m
}

// Observe records one frame. A nil receiver is a no-op.
func (m *Metrics) Observe(respawns, paintedPixels int, sample PerfSample) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.respawns.Add(float64(respawns))
	m.paintedPixels.Set(float64(paintedPixels))
	for _, ph := range Phases {
		if d := sample.Phases[ph]; d > 0 {
			m.phaseSeconds.WithLabelValues(ph.String()).Observe(d.Seconds())
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
