package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conductor/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/adapters/console"            //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/adapters/git"                //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/conductor/internal/engine/services"
	"go.trai.ch/conductor/internal/engine/supervisor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			git.NodeID,
			shell.NodeID,
			services.NodeID,
			console.NodeID,
			progrock.NodeID,
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
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	cloner, err := graft.Dep[ports.RepoCloner](ctx)
	if err != nil {
		return nil, err
	}

	launcher, err := graft.Dep[ports.Launcher](ctx)
	if err != nil {
		return nil, err
	}

	manager, err := graft.Dep[*services.Manager](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, cloner, supervisor.Deps{
		Launcher:  launcher,
		Services:  manager,
		Renderer:  renderer,
		Telemetry: telemetry,
		Logger:    log,
	}), nil
}
