package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

// MoveCoordinator applies drag moves optimistically and rolls them back when
// persistence rejects them. A failed move is never fatal: the board returns
// to its prior state and the user may simply drag again.
type MoveCoordinator struct {
	gateway ports.Gateway
	boards  *BoardService
}

func NewMoveCoordinator(gateway ports.Gateway, boards *BoardService) *MoveCoordinator {
	return &MoveCoordinator{gateway: gateway, boards: boards}
}

// Move relocates a todo between columns. The local move and re-projection
// happen before the persistence call so the board reflects the drag with no
// latency; on failure the prior column and status are restored.
func (c *MoveCoordinator) Move(ctx context.Context, todoID string, source, target domain.ColumnKey) error {
	if source == target {
		return nil
	}

	store := c.boards.Store()
	prior, ok := store.Get(todoID)
	if !ok {
		return domain.ErrTodoNotFound
	}

	status := StatusForColumn(target)
	store.MoveLocal(todoID, target, status)
	c.boards.Project()

	patch := domain.TodoPatch{Column: &target, Status: &status}
	if _, err := c.gateway.UpdateTodo(ctx, prior.GroupID, todoID, patch); err != nil {
		store.MoveLocal(todoID, prior.Column, prior.Status)
		c.boards.Project()
		zap.L().Warn("move rejected, rolled back",
			zap.String("todo_id", todoID),
			zap.String("target", string(target)),
			zap.Error(err))
		return fmt.Errorf("move todo %s to %s: %w", todoID, target, err)
	}
	return nil
}
