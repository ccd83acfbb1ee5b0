package project

import (
	"context"
	"os"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// LoaderNodeID is the unique identifier for the project loader Graft node.
	LoaderNodeID graft.ID = "adapter.project_loader"
	// DetectorNodeID is the unique identifier for the plugin detector Graft node.
	DetectorNodeID graft.ID = "adapter.plugin_detector"
	// ScrubberNodeID is the unique identifier for the registrant scrubber Graft node.
	ScrubberNodeID graft.ID = "adapter.plugin_scrubber"
	// SDKNodeID is the unique identifier for the SDK info Graft node.
	SDKNodeID graft.ID = "adapter.sdk"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.PluginDetector]{
		ID:        DetectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PluginDetector, error) {
			return NewDetector(), nil
		},
	})

	graft.Register(graft.Node[ports.PluginRegistryScrubber]{
		ID:        ScrubberNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PluginRegistryScrubber, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScrubber(log), nil
		},
	})

	graft.Register(graft.Node[ports.SDK]{
		ID:        SDKNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SDK, error) {
			return NewSDK(os.Getenv(FlutterRootEnv)), nil
		},
	})
}
