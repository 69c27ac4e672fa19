package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boardsync/internal/app/service"
	"boardsync/internal/core/domain"
)

type engineFixture struct {
	gateway *gatewayMock
	channel *channelFake
	engine  *service.Engine
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	gateway := new(gatewayMock)
	channel := &channelFake{}
	boards := service.NewBoardService(gateway, channel, 15*time.Second)
	moves := service.NewMoveCoordinator(gateway, boards)
	chat := service.NewChatSession(channel, "self", testDebounce, 5*time.Second)
	engine := service.NewEngine(gateway, channel, boards, moves, chat)

	ctx, cancel := context.WithCancel(context.Background())
	go engine.Run(ctx)
	t.Cleanup(cancel)

	return &engineFixture{gateway: gateway, channel: channel, engine: engine}
}

func (f *engineFixture) seed(t *testing.T, todos []domain.Todo) {
	t.Helper()
	f.gateway.On("ListTodos", mock.Anything, "g1").Return(todos, nil).Once()
	require.NoError(t, f.engine.SwitchGroup(context.Background(), "g1"))
}

// drain runs a serialized no-op on the loop, guaranteeing every event posted
// before it has been applied.
func (f *engineFixture) drain() {
	f.engine.CloseChat()
}

func TestEngine_TodoUpdatedEventReprojects(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	column := domain.ColumnReview
	f.engine.HandleEvent(domain.TodoUpdated{
		TodoID:    "t1",
		Patch:     domain.TodoPatch{Column: &column},
		Timestamp: time.Now(),
	})
	f.drain()

	board := f.engine.Board()
	require.Equal(t, []string{"t1"}, columnIDs(board.Columns, domain.ColumnReview))
}

func TestEngine_StaleEventImmunity(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	title := "ghost"
	f.engine.HandleEvent(domain.TodoUpdated{TodoID: "unknown", Patch: domain.TodoPatch{Title: &title}})
	f.drain()

	board := f.engine.Board()
	total := 0
	for _, column := range board.Columns {
		total += len(column.Todos)
	}
	require.Equal(t, 1, total)
	_, err := f.engine.FindTodo("unknown")
	require.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestEngine_TodoCreatedForActiveGroupTriggersReload(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	f.gateway.On("ListTodos", mock.Anything, "g1").Return([]domain.Todo{
		{ID: "t1", GroupID: "g1"},
		{ID: "t2", GroupID: "g1"},
	}, nil).Once()

	f.engine.HandleEvent(domain.TodoCreated{GroupID: "g1", Todo: domain.Todo{ID: "t2", GroupID: "g1"}})
	f.drain()

	_, err := f.engine.FindTodo("t2")
	require.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestEngine_TodoCreatedForOtherGroupIgnored(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	f.engine.HandleEvent(domain.TodoCreated{GroupID: "g9", Todo: domain.Todo{ID: "x", GroupID: "g9"}})
	f.drain()

	// No reload was mocked for this path; reaching here without a mock
	// panic means the event was dropped.
	_, err := f.engine.FindTodo("x")
	require.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestEngine_TodoCompletedSetsDone(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1", Status: domain.StatusInProgress, Column: domain.ColumnInProgress}})

	f.engine.HandleEvent(domain.TodoCompleted{TodoID: "t1"})
	f.drain()

	got, err := f.engine.FindTodo("t1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDone, got.Status)
}

func TestEngine_ChatMessageBumpsCountAndLog(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})
	require.NoError(t, f.engine.OpenChat("t1"))

	f.engine.HandleEvent(domain.ChatMessageReceived{Message: domain.ChatMessage{
		ID: "m1", TodoID: "t1", Content: "hello", Sender: domain.User{ID: "peer"},
	}})
	f.drain()

	got, err := f.engine.FindTodo("t1")
	require.NoError(t, err)
	require.Equal(t, 1, got.MessageCount)
}

func TestEngine_FileUploadedBumpsAttachments(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	f.engine.HandleEvent(domain.FileUploaded{TodoID: "t1", FileName: "mockups.pdf"})
	f.drain()

	got, err := f.engine.FindTodo("t1")
	require.NoError(t, err)
	require.Equal(t, 1, got.AttachmentCount)
}

func TestEngine_ConnectedResyncsActiveGroup(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	// Events missed while offline surface through the reconnect resync.
	f.gateway.On("ListTodos", mock.Anything, "g1").Return([]domain.Todo{
		{ID: "t1", GroupID: "g1"},
		{ID: "t2", GroupID: "g1"},
	}, nil).Once()

	f.engine.HandleEvent(domain.Disconnected{Reason: "read timeout"})
	f.engine.HandleEvent(domain.Connected{})
	f.drain()

	require.True(t, f.engine.Status().ChannelConnected)
	_, err := f.engine.FindTodo("t2")
	require.NoError(t, err)
	// Rejoined the room on reconnect: once at seed time, once now.
	require.Equal(t, []string{"g1", "g1"}, f.channel.joinedGroups)
}

func TestEngine_DisconnectedMarksDegraded(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, nil)

	f.engine.HandleEvent(domain.Disconnected{Reason: "gone"})
	f.drain()

	require.False(t, f.engine.Status().ChannelConnected)
}

func TestEngine_MoveFailureEmitsNotice(t *testing.T) {
	f := newEngineFixture(t)
	f.seed(t, []domain.Todo{{ID: "t1", GroupID: "g1"}})

	f.gateway.On("UpdateTodo", mock.Anything, "g1", "t1", mock.Anything).
		Return(domain.Todo{}, context.DeadlineExceeded).Once()

	err := f.engine.Move(context.Background(), "t1", domain.ColumnTodo, domain.ColumnCompleted)
	require.Error(t, err)

	select {
	case notice := <-f.engine.Notices():
		require.Equal(t, service.NoticeError, notice.Level)
		require.Equal(t, "failMoveTodo", notice.Key)
	default:
		t.Fatal("expected a notice")
	}

	got, findErr := f.engine.FindTodo("t1")
	require.NoError(t, findErr)
	require.Equal(t, domain.ColumnTodo, got.Column)
}
