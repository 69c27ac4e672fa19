package ports

import (
	"context"

	"boardsync/internal/core/domain"
)

// Gateway wraps the request/response surface of the remote persistence
// service. All durable state lives behind it; the engine only caches.
type Gateway interface {
	ListGroups(ctx context.Context, includeStats bool) ([]domain.Group, error)
	ListPendingInvitations(ctx context.Context) ([]domain.Invitation, error)
	RespondToInvitation(ctx context.Context, invitationID string, action domain.InvitationAction) (domain.InvitationOutcome, error)
	ListTodos(ctx context.Context, groupID string) ([]domain.Todo, error)
	CreateTodo(ctx context.Context, groupID string, input domain.CreateTodoInput) (domain.Todo, error)
	UpdateTodo(ctx context.Context, groupID, todoID string, patch domain.TodoPatch) (domain.Todo, error)
	DeleteGroup(ctx context.Context, groupID string) error
	SearchUsersByEmailPrefix(ctx context.Context, prefix string) ([]domain.User, error)
}
