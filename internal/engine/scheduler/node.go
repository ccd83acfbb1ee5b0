package scheduler

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/AlsoShantanuBorkar/flutter/internal/engine/webtargets"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[ports.TargetExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			webtargets.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.TargetExecutor, error) {
			builder, err := graft.Dep[ports.GraphBuilder](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.OutputVerifier](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(builder, store, hasher, verifier, tracer, log), nil
		},
	})
}
