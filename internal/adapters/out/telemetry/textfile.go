package telemetry

import (
	"context"
	"fmt"

	"github.com/bnema/zerowrap"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bnema/zprune/internal/domain"
)

// TextfileRecorder writes run metrics to a .prom file after every run.
type TextfileRecorder struct {
	path    string
	metrics *Metrics
}

// NewTextfileRecorder creates a recorder writing to path.
func NewTextfileRecorder(path string) (*TextfileRecorder, error) {
	if path == "" {
		return nil, fmt.Errorf("metrics textfile path is required")
	}
	m, err := NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return &TextfileRecorder{path: path, metrics: m}, nil
}

// RecordRun implements out.RunRecorder. The file is replaced atomically.
func (r *TextfileRecorder) RecordRun(ctx context.Context, report *domain.RunReport) error {
	log := zerowrap.FromCtx(ctx)

	r.metrics.Observe(report)
	if err := prometheus.WriteToTextfile(r.path, r.metrics.Registry()); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", r.path, err)
	}

	log.Debug().Str(zerowrap.FieldPath, r.path).Msg("metrics textfile written")
	return nil
}
