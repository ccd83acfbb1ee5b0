package app

import (
	"context"

	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/project"   //nolint:depguard // Wired in app layer
	"github.com/AlsoShantanuBorkar/flutter/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/AlsoShantanuBorkar/flutter/internal/engine/scheduler"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Loader ports.ProjectLoader
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			project.ScrubberNodeID,
			project.DetectorNodeID,
			project.SDKNodeID,
			scheduler.NodeID,
			telemetry.SinkNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			project.LoaderNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	scrubber, err := graft.Dep[ports.PluginRegistryScrubber](ctx)
	if err != nil {
		return nil, err
	}

	detector, err := graft.Dep[ports.PluginDetector](ctx)
	if err != nil {
		return nil, err
	}

	sdk, err := graft.Dep[ports.SDK](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.TargetExecutor](ctx)
	if err != nil {
		return nil, err
	}

	sink, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(scrubber, detector, sdk, executor, sink, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Loader: loader,
	}, nil
}
