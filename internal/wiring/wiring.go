// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/conductor/internal/adapters/config"
	_ "go.trai.ch/conductor/internal/adapters/console"
	_ "go.trai.ch/conductor/internal/adapters/docker"
	_ "go.trai.ch/conductor/internal/adapters/git"
	_ "go.trai.ch/conductor/internal/adapters/logger"
	_ "go.trai.ch/conductor/internal/adapters/shell"
	_ "go.trai.ch/conductor/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/conductor/internal/app"
	_ "go.trai.ch/conductor/internal/engine/services"
)
