package services

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conductor/internal/adapters/docker" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conductor/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/conductor/internal/core/ports"
)

// NodeID is the unique identifier for the services manager Graft node.
const NodeID graft.ID = "engine.services"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{docker.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Manager, error) {
			runtime, err := graft.Dep[ports.ContainerRuntime](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewManager(runtime, log), nil
		},
	})
}
