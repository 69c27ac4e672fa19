package ports

import (
	"time"

	"boardsync/internal/core/domain"
)

// EngineStatus is what the health surface reports about the running engine.
type EngineStatus struct {
	ChannelConnected bool
	ActiveGroupID    string
	LastSyncAt       time.Time
}

// BoardReader is the read-only view the HTTP adapter consumes. All methods
// are safe to call from any goroutine; they read a published snapshot and
// never touch the engine loop.
type BoardReader interface {
	Board() domain.Board
	FindTodo(todoID string) (domain.Todo, error)
	Status() EngineStatus
}
