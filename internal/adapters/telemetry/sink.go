package telemetry

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/zerr"
)

// Sink implements ports.Telemetry. Each event becomes a span and bumps the
// usage counters.
type Sink struct {
	tracer    ports.Tracer
	recorder  *PrometheusRecorder
	sessionID string

	gatherer prom.Gatherer
	textfile string
	logger   ports.Logger
}

// SinkOption configures a Sink.
type SinkOption func(*Sink)

// WithTextfile writes the gathered metrics to path after every event, in the
// node-exporter textfile format.
func WithTextfile(g prom.Gatherer, path string, logger ports.Logger) SinkOption {
	return func(s *Sink) {
		s.gatherer = g
		s.textfile = path
		s.logger = logger
	}
}

// NewSink creates a Sink with a fresh session id.
func NewSink(tracer ports.Tracer, recorder *PrometheusRecorder, opts ...SinkOption) *Sink {
	s := &Sink{
		tracer:    tracer,
		recorder:  recorder,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionID identifies the process that sent the events.
func (s *Sink) SessionID() string {
	return s.sessionID
}

// SendBuildEvent records a build-info event.
func (s *Sink) SendBuildEvent(ctx context.Context, event domain.BuildEvent) {
	_, span := s.tracer.Start(ctx, "build_info")
	span.SetAttribute("session.id", s.sessionID)
	span.SetAttribute("event.label", event.Label)
	span.SetAttribute("event.category", event.Category)
	span.SetAttribute("event.settings", event.Settings)
	span.End()

	s.recorder.IncBuildEvent(event.Label, event.Category)
	s.flush()
}

// SendTiming records a timing event.
func (s *Sink) SendTiming(ctx context.Context, event domain.TimingEvent) {
	_, span := s.tracer.Start(ctx, "timing")
	span.SetAttribute("session.id", s.sessionID)
	span.SetAttribute("timing.workflow", event.Workflow)
	span.SetAttribute("timing.variable", event.VariableName)
	span.SetAttribute("timing.elapsed_ms", event.Elapsed.Milliseconds())
	span.End()

	s.recorder.ObserveTiming(event.Workflow, event.VariableName, event.Elapsed)
	s.flush()
}

func (s *Sink) flush() {
	if s.textfile == "" || s.gatherer == nil {
		return
	}
	if err := prom.WriteToTextfile(s.textfile, s.gatherer); err != nil && s.logger != nil {
		s.logger.Trace(zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", s.textfile).Error())
	}
}
