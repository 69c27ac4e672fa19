package ports

import "context"

// EventChannel is the persistent bidirectional connection used for push
// notifications and room-scoped chat/typing traffic. Connect never blocks on
// retries; connection failures surface through the event handler as a
// Disconnected event, not as an error from Connect.
type EventChannel interface {
	Connect(ctx context.Context) error
	Close() error
	JoinGroupRoom(groupID string) error
	JoinTodoRoom(todoID, groupID string) error
	LeaveTodoRoom(todoID string) error
	EmitChatMessage(todoID, content, messageType string) error
	EmitTyping(todoID string, typing bool) error
}
