package channel

import (
	"encoding/json"
	"fmt"
	"time"

	"boardsync/internal/core/domain"
)

// Outbound payload shapes.

type joinGroupPayload struct {
	GroupID string `json:"groupId"`
}

type joinTodoPayload struct {
	TodoID  string `json:"todoId"`
	GroupID string `json:"groupId"`
}

type leaveTodoPayload struct {
	TodoID string `json:"todoId"`
}

type chatMessagePayload struct {
	MessageID   string `json:"messageId"`
	TodoID      string `json:"todoId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

type typingPayload struct {
	TodoID string `json:"todoId"`
}

// Inbound payload shapes.

type todoCreatedPayload struct {
	GroupID string          `json:"groupId"`
	Todo    json.RawMessage `json:"todo"`
}

type todoWirePayload struct {
	ID              string `json:"id"`
	GroupID         string `json:"group_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	KanbanColumn    string `json:"kanban_column"`
	AttachmentCount int    `json:"attachment_count"`
	MessageCount    int    `json:"message_count"`
}

type todoUpdatedPayload struct {
	TodoID    string             `json:"todoId"`
	Updates   todoUpdatesPayload `json:"updates"`
	Timestamp string             `json:"timestamp"`
}

type todoUpdatesPayload struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
	KanbanColumn *string `json:"kanban_column"`
	Deadline     *string `json:"deadline"`
}

type statusChangedPayload struct {
	TodoID    string `json:"todoId"`
	NewStatus string `json:"newStatus"`
	Timestamp string `json:"timestamp"`
}

type todoCompletedPayload struct {
	TodoID string `json:"todoId"`
}

type chatInboundPayload struct {
	MessageID string `json:"messageId"`
	TodoID    string `json:"todoId"`
	User      struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type typingInboundPayload struct {
	TodoID   string `json:"todoId"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type fileUploadedPayload struct {
	TodoID   string `json:"todoId"`
	FileName string `json:"fileName"`
	Uploader string `json:"uploadedBy"`
}

type notificationPayload struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

// decodeEvent turns a named wire frame into one variant of the domain event
// union. Unknown event names are an error so the caller can drop them with a
// log line instead of guessing.
func decodeEvent(name string, data json.RawMessage) (domain.Event, error) {
	switch domain.EventType(name) {
	case domain.EventTodoCreated:
		var p todoCreatedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		var wire todoWirePayload
		if len(p.Todo) > 0 {
			if err := json.Unmarshal(p.Todo, &wire); err != nil {
				return nil, err
			}
		}
		return domain.TodoCreated{GroupID: p.GroupID, Todo: wireTodo(wire)}, nil

	case domain.EventTodoUpdated:
		var p todoUpdatedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.TodoUpdated{
			TodoID:    p.TodoID,
			Patch:     wirePatch(p.Updates),
			Timestamp: parseTimestamp(p.Timestamp),
		}, nil

	case domain.EventTodoStatusChanged:
		var p statusChangedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.TodoStatusChanged{
			TodoID:    p.TodoID,
			NewStatus: domain.Status(p.NewStatus),
			Timestamp: parseTimestamp(p.Timestamp),
		}, nil

	case domain.EventTodoCompleted:
		var p todoCompletedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.TodoCompleted{TodoID: p.TodoID}, nil

	case domain.EventChatMessage:
		var p chatInboundPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.ChatMessageReceived{Message: domain.ChatMessage{
			ID:     p.MessageID,
			TodoID: p.TodoID,
			Sender: domain.User{
				ID:    p.User.ID,
				Name:  p.User.Name,
				Email: p.User.Email,
			},
			Content:   p.Content,
			CreatedAt: parseTimestamp(p.CreatedAt),
		}}, nil

	case domain.EventUserTyping:
		var p typingInboundPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.UserTyping{TodoID: p.TodoID, UserID: p.UserID, IsTyping: p.IsTyping}, nil

	case domain.EventFileUploaded:
		var p fileUploadedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.FileUploaded{TodoID: p.TodoID, FileName: p.FileName, Uploader: p.Uploader}, nil

	case domain.EventNotification:
		var p notificationPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return domain.Notification{Kind: p.Kind, Message: p.Message}, nil

	default:
		return nil, fmt.Errorf("unknown event %q", name)
	}
}

func wireTodo(wire todoWirePayload) domain.Todo {
	return domain.Normalize(domain.Todo{
		ID:              wire.ID,
		GroupID:         wire.GroupID,
		Title:           wire.Title,
		Description:     wire.Description,
		Category:        wire.Category,
		Priority:        domain.Priority(wire.Priority),
		Status:          domain.Status(wire.Status),
		Column:          domain.ColumnKey(wire.KanbanColumn),
		AttachmentCount: wire.AttachmentCount,
		MessageCount:    wire.MessageCount,
	})
}

func wirePatch(updates todoUpdatesPayload) domain.TodoPatch {
	patch := domain.TodoPatch{
		Title:       updates.Title,
		Description: updates.Description,
		Category:    updates.Category,
	}
	if updates.Priority != nil {
		value := domain.Priority(*updates.Priority)
		patch.Priority = &value
	}
	if updates.Status != nil {
		value := domain.Status(*updates.Status)
		patch.Status = &value
	}
	if updates.KanbanColumn != nil {
		value := domain.ColumnKey(*updates.KanbanColumn)
		patch.Column = &value
	}
	if updates.Deadline != nil {
		if ts, err := time.Parse(time.RFC3339, *updates.Deadline); err == nil {
			patch.Deadline = &ts
		}
	}
	return patch
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
