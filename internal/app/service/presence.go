package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

// ChatSession is the per-todo presence state: the joined room, the message
// log, and who is currently typing. One session exists per engine; joining a
// new todo leaves the previous room first.
type ChatSession struct {
	channel ports.EventChannel
	selfID  string

	debounce  time.Duration
	typingTTL time.Duration

	todoID  string
	groupID string
	log     []domain.ChatMessage
	typing  map[string]time.Time

	typingActive bool
	stopTimer    *time.Timer

	// post routes timer callbacks back onto the engine loop.
	post func(func())
	now  func() time.Time
}

func NewChatSession(channel ports.EventChannel, selfID string, debounce, typingTTL time.Duration) *ChatSession {
	return &ChatSession{
		channel:   channel,
		selfID:    selfID,
		debounce:  debounce,
		typingTTL: typingTTL,
		typing:    map[string]time.Time{},
		post:      func(f func()) { f() },
		now:       time.Now,
	}
}

// SetPoster routes deferred callbacks (the typing-stop debounce) onto the
// engine loop.
func (c *ChatSession) SetPoster(f func(func())) {
	if f != nil {
		c.post = f
	}
}

func (c *ChatSession) ActiveTodo() string {
	return c.todoID
}

// Join opens the chat room for a todo. Any previously joined room is left
// and its local state dropped.
func (c *ChatSession) Join(todoID, groupID string) error {
	if c.todoID == todoID {
		return nil
	}
	if c.todoID != "" {
		c.Leave()
	}
	c.todoID = todoID
	c.groupID = groupID
	c.log = nil
	c.typing = map[string]time.Time{}
	return c.channel.JoinTodoRoom(todoID, groupID)
}

// Leave closes the current room and clears local state.
func (c *ChatSession) Leave() {
	if c.todoID == "" {
		return
	}
	c.flushTyping()
	if err := c.channel.LeaveTodoRoom(c.todoID); err != nil {
		zap.L().Warn("failed to leave todo room", zap.String("todo_id", c.todoID), zap.Error(err))
	}
	c.todoID = ""
	c.groupID = ""
	c.log = nil
	c.typing = map[string]time.Time{}
}

// SendMessage emits a chat event. The message is not appended locally; it
// echoes back through the inbound chat-message event, which keeps the log
// free of duplicate entries.
func (c *ChatSession) SendMessage(content string) error {
	if c.todoID == "" {
		return domain.ErrGroupNotActive
	}
	if strings.TrimSpace(content) == "" {
		return domain.ErrBlankMessage
	}
	return c.channel.EmitChatMessage(c.todoID, content, "text")
}

// StartTyping is called per keystroke. The first keystroke emits
// typing-start; each subsequent one resets the single outstanding stop
// timer rather than stacking a new one.
func (c *ChatSession) StartTyping() {
	if c.todoID == "" {
		return
	}
	if !c.typingActive {
		c.typingActive = true
		if err := c.channel.EmitTyping(c.todoID, true); err != nil {
			zap.L().Debug("typing-start emit failed", zap.Error(err))
		}
	}
	if c.stopTimer != nil {
		c.stopTimer.Stop()
	}
	todoID := c.todoID
	c.stopTimer = time.AfterFunc(c.debounce, func() {
		c.post(func() { c.emitStop(todoID) })
	})
}

// StopTyping emits an immediate typing-stop, cancelling the debounce timer.
func (c *ChatSession) StopTyping() {
	c.flushTyping()
}

func (c *ChatSession) flushTyping() {
	if c.stopTimer != nil {
		c.stopTimer.Stop()
		c.stopTimer = nil
	}
	if c.typingActive {
		c.emitStop(c.todoID)
	}
}

func (c *ChatSession) emitStop(todoID string) {
	if !c.typingActive {
		return
	}
	c.typingActive = false
	if todoID == "" {
		return
	}
	if err := c.channel.EmitTyping(todoID, false); err != nil {
		zap.L().Debug("typing-stop emit failed", zap.Error(err))
	}
}

// ApplyChat appends an inbound message if it belongs to the joined room.
func (c *ChatSession) ApplyChat(msg domain.ChatMessage) bool {
	if c.todoID == "" || msg.TodoID != c.todoID {
		return false
	}
	c.log = append(c.log, msg)
	return true
}

// ApplyTyping records an inbound typing indicator. The sender's own echo is
// filtered out. Entries also age out after the receiver-side TTL, so a peer
// that disconnects mid-type does not stay in the set forever.
func (c *ChatSession) ApplyTyping(evt domain.UserTyping) {
	if c.todoID == "" || evt.TodoID != c.todoID || evt.UserID == c.selfID {
		return
	}
	if evt.IsTyping {
		c.typing[evt.UserID] = c.now()
		return
	}
	delete(c.typing, evt.UserID)
}

// TypingUsers returns the ids of peers typing right now, dropping entries
// older than the TTL.
func (c *ChatSession) TypingUsers() []string {
	cutoff := c.now().Add(-c.typingTTL)
	users := make([]string, 0, len(c.typing))
	for id, seen := range c.typing {
		if seen.Before(cutoff) {
			delete(c.typing, id)
			continue
		}
		users = append(users, id)
	}
	return users
}

// Messages returns a copy of the ordered message log.
func (c *ChatSession) Messages() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(c.log))
	copy(out, c.log)
	return out
}
