package domain

import "errors"

var (
	ErrTodoNotFound   = errors.New("todo not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrGroupNotActive = errors.New("group not active")
	ErrStaleResponse  = errors.New("stale response for inactive group")
	ErrNotPermitted   = errors.New("action not permitted for member role")
	ErrBlankMessage   = errors.New("blank chat message")
	ErrChannelClosed  = errors.New("event channel closed")
	ErrInvalidTodo    = errors.New("invalid todo payload")
)
