package webtargets

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/shell"  //nolint:depguard // Wired in engine wiring
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the web target graph builder Graft node.
const NodeID graft.ID = "engine.webtargets"

func init() {
	graft.Register(graft.Node[ports.GraphBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphBuilder, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(runner, log), nil
		},
	})
}
