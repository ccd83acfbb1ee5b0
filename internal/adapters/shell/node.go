package shell

import (
	"context"
	"os"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/project"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the command runner Graft node.
const NodeID graft.ID = "adapter.command_runner"

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CommandRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, os.Getenv(project.FlutterRootEnv)), nil
		},
	})
}
