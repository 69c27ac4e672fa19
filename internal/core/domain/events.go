package domain

import "time"

type EventType string

const (
	EventTodoCreated       EventType = "todo-created"
	EventTodoUpdated       EventType = "todo-updated"
	EventTodoStatusChanged EventType = "todo-status-changed"
	EventTodoCompleted     EventType = "todoCompleted"
	EventChatMessage       EventType = "chat-message"
	EventUserTyping        EventType = "user-typing"
	EventFileUploaded      EventType = "file-uploaded"
	EventNotification      EventType = "notification"

	// Synthetic events raised by the channel client itself.
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
)

// Event is the closed set of inbound channel events. Every variant is merged
// into local state through a single dispatch path so the reconciliation rules
// live in one auditable place.
type Event interface {
	Type() EventType
	isEvent()
}

type TodoCreated struct {
	GroupID string
	Todo    Todo
}

type TodoUpdated struct {
	TodoID    string
	Patch     TodoPatch
	Timestamp time.Time
}

type TodoStatusChanged struct {
	TodoID    string
	NewStatus Status
	Timestamp time.Time
}

type TodoCompleted struct {
	TodoID string
}

type ChatMessageReceived struct {
	Message ChatMessage
}

type UserTyping struct {
	TodoID   string
	UserID   string
	IsTyping bool
}

type FileUploaded struct {
	TodoID   string
	FileName string
	Uploader string
}

type Notification struct {
	Kind    string
	Message string
}

type Connected struct{}

type Disconnected struct {
	Reason string
	// Terminal is set when the reconnect budget is exhausted and the client
	// will not retry on its own.
	Terminal bool
}

func (TodoCreated) Type() EventType         { return EventTodoCreated }
func (TodoUpdated) Type() EventType         { return EventTodoUpdated }
func (TodoStatusChanged) Type() EventType   { return EventTodoStatusChanged }
func (TodoCompleted) Type() EventType       { return EventTodoCompleted }
func (ChatMessageReceived) Type() EventType { return EventChatMessage }
func (UserTyping) Type() EventType          { return EventUserTyping }
func (FileUploaded) Type() EventType        { return EventFileUploaded }
func (Notification) Type() EventType        { return EventNotification }
func (Connected) Type() EventType           { return EventConnected }
func (Disconnected) Type() EventType        { return EventDisconnected }

func (TodoCreated) isEvent()         {}
func (TodoUpdated) isEvent()         {}
func (TodoStatusChanged) isEvent()   {}
func (TodoCompleted) isEvent()       {}
func (ChatMessageReceived) isEvent() {}
func (UserTyping) isEvent()          {}
func (FileUploaded) isEvent()        {}
func (Notification) isEvent()        {}
func (Connected) isEvent()           {}
func (Disconnected) isEvent()        {}
