package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"boardsync/internal/core/domain"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) ListGroups(ctx context.Context, includeStats bool) ([]domain.Group, error) {
	args := m.Called(ctx, includeStats)

	var groups []domain.Group
	if value := args.Get(0); value != nil {
		groups = value.([]domain.Group)
	}
	return groups, args.Error(1)
}

func (m *gatewayMock) ListPendingInvitations(ctx context.Context) ([]domain.Invitation, error) {
	args := m.Called(ctx)

	var invitations []domain.Invitation
	if value := args.Get(0); value != nil {
		invitations = value.([]domain.Invitation)
	}
	return invitations, args.Error(1)
}

func (m *gatewayMock) RespondToInvitation(ctx context.Context, invitationID string, action domain.InvitationAction) (domain.InvitationOutcome, error) {
	args := m.Called(ctx, invitationID, action)

	var outcome domain.InvitationOutcome
	if value := args.Get(0); value != nil {
		outcome = value.(domain.InvitationOutcome)
	}
	return outcome, args.Error(1)
}

func (m *gatewayMock) ListTodos(ctx context.Context, groupID string) ([]domain.Todo, error) {
	args := m.Called(ctx, groupID)

	var todos []domain.Todo
	if value := args.Get(0); value != nil {
		todos = value.([]domain.Todo)
	}
	return todos, args.Error(1)
}

func (m *gatewayMock) CreateTodo(ctx context.Context, groupID string, input domain.CreateTodoInput) (domain.Todo, error) {
	args := m.Called(ctx, groupID, input)

	var todo domain.Todo
	if value := args.Get(0); value != nil {
		todo = value.(domain.Todo)
	}
	return todo, args.Error(1)
}

func (m *gatewayMock) UpdateTodo(ctx context.Context, groupID, todoID string, patch domain.TodoPatch) (domain.Todo, error) {
	args := m.Called(ctx, groupID, todoID, patch)

	var todo domain.Todo
	if value := args.Get(0); value != nil {
		todo = value.(domain.Todo)
	}
	return todo, args.Error(1)
}

func (m *gatewayMock) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *gatewayMock) SearchUsersByEmailPrefix(ctx context.Context, prefix string) ([]domain.User, error) {
	args := m.Called(ctx, prefix)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

// channelFake records emitted events instead of talking to a socket.
type channelFake struct {
	mu sync.Mutex

	joinedGroups []string
	joinedTodos  []string
	leftTodos    []string
	chatEmits    []string
	typingEmits  []bool
}

func (f *channelFake) Connect(ctx context.Context) error { return nil }
func (f *channelFake) Close() error                      { return nil }

func (f *channelFake) JoinGroupRoom(groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinedGroups = append(f.joinedGroups, groupID)
	return nil
}

func (f *channelFake) JoinTodoRoom(todoID, groupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinedTodos = append(f.joinedTodos, todoID)
	return nil
}

func (f *channelFake) LeaveTodoRoom(todoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leftTodos = append(f.leftTodos, todoID)
	return nil
}

func (f *channelFake) EmitChatMessage(todoID, content, messageType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatEmits = append(f.chatEmits, content)
	return nil
}

func (f *channelFake) EmitTyping(todoID string, typing bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typingEmits = append(f.typingEmits, typing)
	return nil
}

func (f *channelFake) typingEvents() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.typingEmits))
	copy(out, f.typingEmits)
	return out
}

func (f *channelFake) chatMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.chatEmits))
	copy(out, f.chatEmits)
	return out
}
