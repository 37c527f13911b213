package docker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conductor/internal/adapters/logger"
	"go.trai.ch/conductor/internal/core/ports"
)

// NodeID is the unique identifier for the container runtime Graft node.
const NodeID graft.ID = "adapter.container_runtime"

func init() {
	graft.Register(graft.Node[ports.ContainerRuntime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ContainerRuntime, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Detect(ctx, log), nil
		},
	})
}
