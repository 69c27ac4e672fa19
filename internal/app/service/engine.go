package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

// NoticeLevel classifies transient user-visible notices.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a short-lived user-visible message, carried as a translation key
// so the presentation edge can localize it.
type Notice struct {
	Level  NoticeLevel
	Key    string
	Detail string
}

const noticeBuffer = 32

// Engine serializes every store mutation on one goroutine. Gateway
// responses, channel events, user-initiated moves, and timer callbacks all
// execute as tasks on the loop, so the store needs no locking and no two
// mutations ever interleave. Reads from other goroutines (the HTTP adapter)
// see an atomically published board snapshot instead of touching the loop.
type Engine struct {
	gateway ports.Gateway
	channel ports.EventChannel
	boards  *BoardService
	moves   *MoveCoordinator
	chat    *ChatSession

	tasks   chan func()
	notices chan Notice

	board  atomic.Pointer[domain.Board]
	status atomic.Pointer[ports.EngineStatus]

	connected bool
	ctx       context.Context
}

func NewEngine(gateway ports.Gateway, channel ports.EventChannel, boards *BoardService, moves *MoveCoordinator, chat *ChatSession) *Engine {
	e := &Engine{
		gateway: gateway,
		channel: channel,
		boards:  boards,
		moves:   moves,
		chat:    chat,
		tasks:   make(chan func(), 256),
		notices: make(chan Notice, noticeBuffer),
		ctx:     context.Background(),
	}
	e.board.Store(&domain.Board{Columns: Project(nil, DefaultSchema())})
	e.status.Store(&ports.EngineStatus{})

	boards.SetOnProject(e.publish)
	boards.SetScheduler(func(d time.Duration, f func()) {
		time.AfterFunc(d, func() { e.post(f) })
	})
	chat.SetPoster(e.post)
	return e
}

// Run drains the task queue until the context is cancelled. Every public
// mutating method requires Run to be active.
func (e *Engine) Run(ctx context.Context) {
	e.ctx = ctx
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-e.tasks:
			task()
		}
	}
}

// post enqueues a task; blocks if the queue is full, trading backpressure
// for never losing a mutation.
func (e *Engine) post(f func()) {
	e.tasks <- f
}

// do runs f on the loop and waits for its result.
func (e *Engine) do(f func() error) error {
	errc := make(chan error, 1)
	e.post(func() { errc <- f() })
	return <-errc
}

func (e *Engine) publish(board domain.Board) {
	copied := board
	e.board.Store(&copied)
	e.refreshStatus()
}

func (e *Engine) refreshStatus() {
	e.status.Store(&ports.EngineStatus{
		ChannelConnected: e.connected,
		ActiveGroupID:    e.boards.ActiveGroup(),
		LastSyncAt:       e.boards.LastSyncAt(),
	})
}

// Notices exposes the transient notice stream. When the consumer lags, the
// oldest notice is dropped first; these are UI hints, not an audit log.
func (e *Engine) Notices() <-chan Notice {
	return e.notices
}

func (e *Engine) notify(level NoticeLevel, key, detail string) {
	n := Notice{Level: level, Key: key, Detail: detail}
	for {
		select {
		case e.notices <- n:
			return
		default:
		}
		select {
		case <-e.notices:
		default:
		}
	}
}

// HandleEvent is the sink handed to the channel adapter; events are applied
// asynchronously on the engine loop.
func (e *Engine) HandleEvent(evt domain.Event) {
	e.post(func() { e.dispatch(evt) })
}

// dispatch is the single merge point for inbound channel events.
func (e *Engine) dispatch(evt domain.Event) {
	switch ev := evt.(type) {
	case domain.TodoCreated:
		if ev.GroupID != e.boards.ActiveGroup() {
			return
		}
		e.notify(NoticeInfo, "newTodoArrived", ev.Todo.Title)
		if err := e.boards.LoadGroup(e.ctx, ev.GroupID); err != nil {
			zap.L().Warn("reload after todo-created failed", zap.Error(err))
			e.notify(NoticeError, "failLoadBoard", "")
		}

	case domain.TodoUpdated:
		if e.boards.Store().ApplyUpdate(ev.TodoID, ev.Patch, ev.Timestamp) {
			e.boards.Project()
		}

	case domain.TodoStatusChanged:
		if e.boards.Store().ApplyStatusChange(ev.TodoID, ev.NewStatus, ev.Timestamp) {
			e.boards.Project()
		}

	case domain.TodoCompleted:
		if e.boards.Store().ApplyCompleted(ev.TodoID) {
			e.boards.Project()
			e.notify(NoticeInfo, "todoCompleted", ev.TodoID)
		}

	case domain.ChatMessageReceived:
		e.chat.ApplyChat(ev.Message)
		if e.boards.Store().BumpMessageCount(ev.Message.TodoID) {
			e.boards.Project()
		}

	case domain.UserTyping:
		e.chat.ApplyTyping(ev)

	case domain.FileUploaded:
		if e.boards.Store().BumpAttachmentCount(ev.TodoID) {
			e.boards.Project()
		}

	case domain.Notification:
		e.notify(NoticeInfo, "serverNotification", ev.Message)

	case domain.Connected:
		e.connected = true
		e.refreshStatus()
		if active := e.boards.ActiveGroup(); active != "" {
			if err := e.channel.JoinGroupRoom(active); err != nil {
				zap.L().Warn("rejoin group room failed", zap.String("group_id", active), zap.Error(err))
			}
			// Resync after the gap: anything pushed while offline was missed.
			if err := e.boards.LoadGroup(e.ctx, active); err != nil {
				zap.L().Warn("resync after reconnect failed", zap.Error(err))
			}
		}
		e.notify(NoticeInfo, "channelRestored", "")

	case domain.Disconnected:
		e.connected = false
		e.refreshStatus()
		zap.L().Warn("event channel disconnected", zap.String("reason", ev.Reason), zap.Bool("terminal", ev.Terminal))
		e.notify(NoticeError, "channelDown", ev.Reason)

	default:
		zap.L().Debug("unhandled event", zap.String("type", string(evt.Type())))
	}
}

// --- user-facing operations, serialized on the loop ---

func (e *Engine) RefreshGroups(ctx context.Context) (groups []domain.Group, err error) {
	err = e.do(func() error {
		groups, err = e.boards.RefreshGroups(ctx)
		return err
	})
	return groups, err
}

func (e *Engine) RefreshInvitations(ctx context.Context) (invitations []domain.Invitation, err error) {
	err = e.do(func() error {
		invitations, err = e.boards.RefreshInvitations(ctx)
		return err
	})
	return invitations, err
}

func (e *Engine) SwitchGroup(ctx context.Context, groupID string) error {
	return e.do(func() error {
		if err := e.boards.SwitchGroup(ctx, groupID); err != nil {
			e.notify(NoticeError, "failLoadBoard", "")
			return err
		}
		return nil
	})
}

// Reload resyncs the active group from the gateway.
func (e *Engine) Reload(ctx context.Context) error {
	return e.do(func() error {
		active := e.boards.ActiveGroup()
		if active == "" {
			return domain.ErrGroupNotActive
		}
		if err := e.boards.LoadGroup(ctx, active); err != nil {
			e.notify(NoticeError, "failLoadBoard", "")
			return err
		}
		return nil
	})
}

func (e *Engine) CreateTodo(ctx context.Context, input domain.CreateTodoInput) (created domain.Todo, err error) {
	err = e.do(func() error {
		created, err = e.boards.CreateTodo(ctx, input)
		if err != nil {
			e.notify(NoticeError, "failCreateTodo", "")
		}
		return err
	})
	return created, err
}

func (e *Engine) Move(ctx context.Context, todoID string, source, target domain.ColumnKey) error {
	return e.do(func() error {
		if err := e.moves.Move(ctx, todoID, source, target); err != nil {
			e.notify(NoticeError, "failMoveTodo", todoID)
			return err
		}
		return nil
	})
}

func (e *Engine) RespondToInvitation(ctx context.Context, invitationID string, action domain.InvitationAction) (outcome domain.InvitationOutcome, err error) {
	err = e.do(func() error {
		outcome, err = e.boards.RespondToInvitation(ctx, invitationID, action)
		if err != nil {
			e.notify(NoticeError, "failInvitation", "")
		}
		return err
	})
	return outcome, err
}

func (e *Engine) DeleteGroup(ctx context.Context, groupID string) error {
	return e.do(func() error {
		if err := e.boards.DeleteGroup(ctx, groupID); err != nil {
			if !errors.Is(err, domain.ErrNotPermitted) {
				e.notify(NoticeError, "failDeleteGroup", "")
			}
			return err
		}
		return nil
	})
}

func (e *Engine) SearchMembers(ctx context.Context, prefix string) (users []domain.User, err error) {
	err = e.do(func() error {
		users, err = e.boards.SearchMembers(ctx, prefix)
		return err
	})
	return users, err
}

func (e *Engine) OpenChat(todoID string) error {
	return e.do(func() error {
		return e.chat.Join(todoID, e.boards.ActiveGroup())
	})
}

func (e *Engine) CloseChat() {
	_ = e.do(func() error {
		e.chat.Leave()
		return nil
	})
}

func (e *Engine) SendChatMessage(content string) error {
	return e.do(func() error {
		return e.chat.SendMessage(content)
	})
}

// Keystroke feeds the typing debounce; call it on every input change.
func (e *Engine) Keystroke() {
	e.post(func() { e.chat.StartTyping() })
}

func (e *Engine) StopTyping() {
	e.post(func() { e.chat.StopTyping() })
}

// --- ports.BoardReader, lock-free reads for other goroutines ---

func (e *Engine) Board() domain.Board {
	return *e.board.Load()
}

func (e *Engine) FindTodo(todoID string) (domain.Todo, error) {
	board := e.board.Load()
	for _, column := range board.Columns {
		for _, todo := range column.Todos {
			if todo.ID == todoID {
				return todo, nil
			}
		}
	}
	return domain.Todo{}, domain.ErrTodoNotFound
}

func (e *Engine) Status() ports.EngineStatus {
	return *e.status.Load()
}

var _ ports.BoardReader = (*Engine)(nil)
