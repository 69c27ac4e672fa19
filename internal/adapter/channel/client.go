package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed between pongs from the peer.
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024 * 1024

	sendBuffer     = 64
	initialBackoff = 250 * time.Millisecond
)

// frame is the wire envelope: a named event with a JSON payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Options tunes connection behavior. The zero value of each field falls back
// to the suggested defaults.
type Options struct {
	// ConnectDelay postpones the first dial relative to process start so a
	// server that is still booting is not hammered. A tunable, not a
	// correctness requirement.
	ConnectDelay time.Duration
	MaxAttempts  int
	BackoffCap   time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 5
	}
	if o.BackoffCap == 0 {
		o.BackoffCap = 5 * time.Second
	}
	return o
}

// Client maintains one persistent websocket connection per session. Inbound
// frames are decoded into the domain event union and handed to the sink; the
// engine applies them on its own loop, so handlers here never mutate state.
type Client struct {
	url     string
	token   string
	opts    Options
	handler func(domain.Event)

	mu     sync.Mutex
	conn   *websocket.Conn
	send   chan []byte
	closed bool
}

var _ ports.EventChannel = (*Client)(nil)

func NewClient(url, token string, opts Options, handler func(domain.Event)) *Client {
	if handler == nil {
		handler = func(domain.Event) {}
	}
	return &Client{
		url:     url,
		token:   token,
		opts:    opts.withDefaults(),
		handler: handler,
	}
}

// Connect starts the connection manager. It returns immediately; dial
// failures and disconnects are reported through Disconnected events, never
// as panics or errors from here.
func (c *Client) Connect(ctx context.Context) error {
	go c.manage(ctx)
	return nil
}

func (c *Client) manage(ctx context.Context) {
	if c.opts.ConnectDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.opts.ConnectDelay):
		}
	}

	backoff := initialBackoff
	attempts := 0
	for {
		if ctx.Err() != nil || c.isClosed() {
			return
		}

		conn, err := c.dial(ctx)
		if err != nil {
			attempts++
			zap.L().Warn("channel dial failed",
				zap.String("url", c.url),
				zap.Int("attempt", attempts),
				zap.Error(err))
			if attempts >= c.opts.MaxAttempts {
				c.handler(domain.Disconnected{Reason: err.Error(), Terminal: true})
				return
			}
			c.handler(domain.Disconnected{Reason: err.Error()})
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > c.opts.BackoffCap {
				backoff = c.opts.BackoffCap
			}
			continue
		}

		attempts = 0
		backoff = initialBackoff
		c.attach(conn)
		c.handler(domain.Connected{})

		done := make(chan struct{})
		go c.writePump(conn, done)
		reason := c.readPump(conn)
		close(done)
		c.detach(conn)

		if ctx.Err() != nil || c.isClosed() {
			return
		}
		c.handler(domain.Disconnected{Reason: reason})
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.send = make(chan []byte, sendBuffer)
	c.mu.Unlock()
}

func (c *Client) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.send = nil
	}
	c.mu.Unlock()
	_ = conn.Close()
}

func (c *Client) readPump(conn *websocket.Conn) string {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("channel read error", zap.Error(err))
			}
			return err.Error()
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			zap.L().Debug("dropping malformed frame", zap.Error(err))
			continue
		}
		event, err := decodeEvent(f.Event, f.Data)
		if err != nil {
			zap.L().Debug("dropping frame", zap.String("event", f.Event), zap.Error(err))
			continue
		}
		c.handler(event)
	}
}

func (c *Client) writePump(conn *websocket.Conn, done <-chan struct{}) {
	c.mu.Lock()
	send := c.send
	c.mu.Unlock()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case message := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				zap.L().Debug("channel write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close tears the connection down for good; the manager will not redial.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.send = nil
	c.mu.Unlock()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	message, err := json.Marshal(frame{Event: event, Data: data})
	if err != nil {
		return err
	}

	c.mu.Lock()
	send := c.send
	c.mu.Unlock()
	if send == nil {
		return domain.ErrChannelClosed
	}
	select {
	case send <- message:
		return nil
	default:
		return domain.ErrChannelClosed
	}
}

func (c *Client) JoinGroupRoom(groupID string) error {
	return c.emit("joinGroup", joinGroupPayload{GroupID: groupID})
}

func (c *Client) JoinTodoRoom(todoID, groupID string) error {
	return c.emit("join-todo-chat", joinTodoPayload{TodoID: todoID, GroupID: groupID})
}

func (c *Client) LeaveTodoRoom(todoID string) error {
	return c.emit("leave-todo-chat", leaveTodoPayload{TodoID: todoID})
}

func (c *Client) EmitChatMessage(todoID, content, messageType string) error {
	return c.emit("chat-message", chatMessagePayload{
		MessageID:   uuid.NewString(),
		TodoID:      todoID,
		Content:     content,
		MessageType: messageType,
	})
}

func (c *Client) EmitTyping(todoID string, typing bool) error {
	event := "typing-stop"
	if typing {
		event = "typing-start"
	}
	return c.emit(event, typingPayload{TodoID: todoID})
}
