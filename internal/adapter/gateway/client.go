package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"boardsync/internal/core/domain"
	"boardsync/internal/core/ports"
)

// Client is the HTTP implementation of the remote data gateway port. Every
// call carries the caller's context plus the client-level timeout, so a
// stalled backend surfaces as an error instead of a hang.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ ports.Gateway = (*Client)(nil)

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListGroups(ctx context.Context, includeStats bool) ([]domain.Group, error) {
	path := "/api/groups"
	if includeStats {
		path += "?include_stats=true"
	}
	var dtos []groupDTO
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	return toDomainGroups(dtos), nil
}

func (c *Client) ListPendingInvitations(ctx context.Context) ([]domain.Invitation, error) {
	var dtos []invitationDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/invitations/pending", nil, &dtos); err != nil {
		return nil, err
	}
	invitations := make([]domain.Invitation, 0, len(dtos))
	for _, dto := range dtos {
		invitations = append(invitations, toDomainInvitation(dto))
	}
	return invitations, nil
}

func (c *Client) RespondToInvitation(ctx context.Context, invitationID string, action domain.InvitationAction) (domain.InvitationOutcome, error) {
	body := respondInvitationRequest{Action: string(action)}
	var resp respondInvitationResponse
	path := "/api/invitations/" + url.PathEscape(invitationID) + "/respond"
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return domain.InvitationOutcome{}, err
	}
	outcome := domain.InvitationOutcome{Todos: toDomainTodos(resp.Todos)}
	if resp.Group != nil {
		group := toDomainGroup(*resp.Group)
		outcome.Group = &group
	}
	return outcome, nil
}

func (c *Client) ListTodos(ctx context.Context, groupID string) ([]domain.Todo, error) {
	var dtos []todoDTO
	path := "/api/groups/" + url.PathEscape(groupID) + "/todos"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	return toDomainTodos(dtos), nil
}

func (c *Client) CreateTodo(ctx context.Context, groupID string, input domain.CreateTodoInput) (domain.Todo, error) {
	var dto todoDTO
	path := "/api/groups/" + url.PathEscape(groupID) + "/todos"
	if err := c.doJSON(ctx, http.MethodPost, path, toCreateTodoRequest(input), &dto); err != nil {
		return domain.Todo{}, err
	}
	return toDomainTodo(dto), nil
}

func (c *Client) UpdateTodo(ctx context.Context, groupID, todoID string, patch domain.TodoPatch) (domain.Todo, error) {
	var dto todoDTO
	path := "/api/groups/" + url.PathEscape(groupID) + "/todos/" + url.PathEscape(todoID)
	if err := c.doJSON(ctx, http.MethodPatch, path, toUpdateTodoRequest(patch), &dto); err != nil {
		return domain.Todo{}, err
	}
	return toDomainTodo(dto), nil
}

func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	var resp deleteGroupResponse
	path := "/api/groups/" + url.PathEscape(groupID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	zap.L().Info("group deleted", zap.String("group_id", groupID), zap.String("message", resp.Message))
	return nil
}

func (c *Client) SearchUsersByEmailPrefix(ctx context.Context, prefix string) ([]domain.User, error) {
	var dtos []userDTO
	path := "/api/users/search?email_prefix=" + url.QueryEscape(prefix)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		user := dto
		users = append(users, toDomainUser(&user))
	}
	return users, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Debug("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) statusError(method, path string, resp *http.Response) error {
	var envelope errorResponse
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s %s: %s: %w", method, path, message, domain.ErrNotPermitted)
	default:
		return fmt.Errorf("%s %s: gateway returned %d: %s", method, path, resp.StatusCode, message)
	}
}
