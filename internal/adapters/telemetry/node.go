package telemetry

import (
	"context"
	"os"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/grindlemire/graft"
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.tracer"
	// SinkNodeID is the unique identifier for the telemetry sink Graft node.
	SinkNodeID graft.ID = "adapter.telemetry"
)

// MetricsTextfileEnv names the file the usage counters are written to, if set.
const MetricsTextfileEnv = "FLUTTERWEB_METRICS_TEXTFILE"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(NewTracerProvider(NewBridge(log))), nil
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        SinkNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{TracerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			reg := prom.NewRegistry()
			return NewSink(
				tracer,
				NewPrometheusRecorder(reg),
				WithTextfile(reg, os.Getenv(MetricsTextfileEnv), log),
			), nil
		},
	})
}
