package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

// BoardService owns the active group's store and the reconciliation between
// gateway responses and channel events. Its methods must run on the engine
// loop (or in tests, on a single goroutine).
type BoardService struct {
	gateway ports.Gateway
	channel ports.EventChannel

	schema     []domain.ColumnKey
	welcomeTTL time.Duration

	activeGroup string
	store       *Store
	groups      map[string]domain.Group
	invitations []domain.Invitation
	welcome     map[string]bool

	// onProject is invoked with a fresh board after every store change.
	onProject func(domain.Board)
	// schedule runs a deferred func back on the owning loop. Defaults to
	// inline execution for tests.
	schedule func(d time.Duration, f func())

	lastSync time.Time
}

func NewBoardService(gateway ports.Gateway, channel ports.EventChannel, welcomeTTL time.Duration) *BoardService {
	return &BoardService{
		gateway:    gateway,
		channel:    channel,
		schema:     DefaultSchema(),
		welcomeTTL: welcomeTTL,
		store:      NewStore(""),
		groups:     map[string]domain.Group{},
		welcome:    map[string]bool{},
		onProject:  func(domain.Board) {},
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// SetOnProject registers the board publication hook.
func (s *BoardService) SetOnProject(f func(domain.Board)) {
	if f != nil {
		s.onProject = f
	}
}

// SetScheduler overrides deferred execution, used by the engine to route
// timer callbacks back onto its loop and by tests to run them inline.
func (s *BoardService) SetScheduler(f func(d time.Duration, fn func())) {
	if f != nil {
		s.schedule = f
	}
}

func (s *BoardService) ActiveGroup() string {
	return s.activeGroup
}

func (s *BoardService) Store() *Store {
	return s.store
}

func (s *BoardService) LastSyncAt() time.Time {
	return s.lastSync
}

// WelcomeActive reports whether the short-lived post-acceptance banner flag
// is still set for the group.
func (s *BoardService) WelcomeActive(groupID string) bool {
	return s.welcome[groupID]
}

// Project recomputes the board from the current store and publishes it.
func (s *BoardService) Project() domain.Board {
	board := domain.Board{
		GroupID: s.activeGroup,
		Columns: Project(s.store.Snapshot(), s.schema),
	}
	s.onProject(board)
	return board
}

// RefreshGroups refreshes the cached group list.
func (s *BoardService) RefreshGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.gateway.ListGroups(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	s.groups = make(map[string]domain.Group, len(groups))
	for _, g := range groups {
		s.groups[g.ID] = g
	}
	return groups, nil
}

// RefreshInvitations refreshes the pending invitation list.
func (s *BoardService) RefreshInvitations(ctx context.Context) ([]domain.Invitation, error) {
	invitations, err := s.gateway.ListPendingInvitations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	s.invitations = invitations
	return invitations, nil
}

func (s *BoardService) PendingInvitations() []domain.Invitation {
	out := make([]domain.Invitation, len(s.invitations))
	copy(out, s.invitations)
	return out
}

// SwitchGroup makes groupID the active group: leave interest in the old
// room, reset the store, join the new room, reload. The previous group's
// cached todos are discarded; the store is rebuilt from the authoritative
// response.
func (s *BoardService) SwitchGroup(ctx context.Context, groupID string) error {
	if s.activeGroup == groupID {
		return nil
	}
	s.activeGroup = groupID
	s.store = NewStore(groupID)
	if s.channel != nil {
		if err := s.channel.JoinGroupRoom(groupID); err != nil {
			zap.L().Warn("failed to join group room", zap.String("group_id", groupID), zap.Error(err))
		}
	}
	return s.LoadGroup(ctx, groupID)
}

// LoadGroup is the authoritative resync path: fetch, guard against a group
// switch that happened while the request was in flight, normalize, replace,
// re-project. Safe to call at any time; the last completion wins.
func (s *BoardService) LoadGroup(ctx context.Context, groupID string) error {
	todos, err := s.gateway.ListTodos(ctx, groupID)
	if err != nil {
		// Prior data stays visible; the caller surfaces a notice.
		return fmt.Errorf("load group %s: %w", groupID, err)
	}
	return s.ApplyLoaded(groupID, todos)
}

// ApplyLoaded installs a fetched collection, enforcing the stale-response
// guard: a response for a group that is no longer active is discarded.
func (s *BoardService) ApplyLoaded(groupID string, todos []domain.Todo) error {
	if groupID != s.activeGroup {
		zap.L().Debug("discarding stale load response",
			zap.String("response_group", groupID),
			zap.String("active_group", s.activeGroup))
		return domain.ErrStaleResponse
	}
	normalized := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		normalized = append(normalized, domain.Normalize(t))
	}
	s.store.Replace(normalized)
	s.lastSync = time.Now()
	s.Project()
	return nil
}

// RespondToInvitation resolves a pending invitation. Acceptance seeds the
// store for the new group directly from the response payload, bypassing a
// full reload, and raises a welcome flag that expires on its own.
func (s *BoardService) RespondToInvitation(ctx context.Context, invitationID string, action domain.InvitationAction) (domain.InvitationOutcome, error) {
	outcome, err := s.gateway.RespondToInvitation(ctx, invitationID, action)
	if err != nil {
		return domain.InvitationOutcome{}, fmt.Errorf("respond to invitation %s: %w", invitationID, err)
	}
	s.removeInvitation(invitationID)
	if action != domain.InvitationActionAccept || outcome.Group == nil {
		return outcome, nil
	}

	group := *outcome.Group
	s.groups[group.ID] = group
	s.activeGroup = group.ID
	s.store = NewStore(group.ID)
	if s.channel != nil {
		if err := s.channel.JoinGroupRoom(group.ID); err != nil {
			zap.L().Warn("failed to join group room", zap.String("group_id", group.ID), zap.Error(err))
		}
	}
	if err := s.ApplyLoaded(group.ID, outcome.Todos); err != nil {
		return outcome, err
	}

	s.welcome[group.ID] = true
	groupID := group.ID
	s.schedule(s.welcomeTTL, func() {
		delete(s.welcome, groupID)
	})
	return outcome, nil
}

func (s *BoardService) removeInvitation(invitationID string) {
	kept := s.invitations[:0]
	for _, inv := range s.invitations {
		if inv.ID != invitationID {
			kept = append(kept, inv)
		}
	}
	s.invitations = kept
}

// CreateTodo validates the input, persists it, and reloads the active group.
// Creation payloads are not guaranteed complete enough to splice in, so the
// reload is the splice.
func (s *BoardService) CreateTodo(ctx context.Context, input domain.CreateTodoInput) (domain.Todo, error) {
	if s.activeGroup == "" {
		return domain.Todo{}, domain.ErrGroupNotActive
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return domain.Todo{}, domain.ErrInvalidTodo
	}
	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if input.Column == "" {
		input.Column = domain.ColumnTodo
	}

	created, err := s.gateway.CreateTodo(ctx, s.activeGroup, input)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	if err := s.LoadGroup(ctx, s.activeGroup); err != nil {
		zap.L().Warn("reload after create failed", zap.Error(err))
	}
	return domain.Normalize(created), nil
}

// DeleteGroup is gated on the cached member role before anything is
// attempted; a non-admin never reaches the gateway.
func (s *BoardService) DeleteGroup(ctx context.Context, groupID string) error {
	group, ok := s.groups[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	if !group.Role.CanDeleteGroup() {
		return domain.ErrNotPermitted
	}
	if err := s.gateway.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group %s: %w", groupID, err)
	}
	delete(s.groups, groupID)
	delete(s.welcome, groupID)
	if s.activeGroup == groupID {
		s.activeGroup = ""
		s.store = NewStore("")
		s.Project()
	}
	return nil
}

// SearchMembers backs the assignment picker.
func (s *BoardService) SearchMembers(ctx context.Context, prefix string) ([]domain.User, error) {
	users, err := s.gateway.SearchUsersByEmailPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
