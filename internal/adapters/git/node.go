package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/conductor/internal/core/ports"
)

// NodeID is the unique identifier for the repository cloner Graft node.
const NodeID graft.ID = "adapter.repo_cloner"

func init() {
	graft.Register(graft.Node[ports.RepoCloner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepoCloner, error) {
			return NewCloner(nil), nil
		},
	})
}
