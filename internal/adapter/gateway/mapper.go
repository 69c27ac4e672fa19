package gateway

import (
	"time"

	"boardsync/internal/core/domain"
)

func toDomainUser(dto *userDTO) domain.User {
	if dto == nil {
		return domain.User{}
	}
	return domain.User{ID: dto.ID, Name: dto.Name, Email: dto.Email}
}

func toDomainGroup(dto groupDTO) domain.Group {
	role := domain.Role(dto.Role)
	if role == "" {
		role = domain.RoleMember
	}
	return domain.Group{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Role:        role,
		MemberCount: dto.MemberCount,
	}
}

func toDomainGroups(dtos []groupDTO) []domain.Group {
	groups := make([]domain.Group, 0, len(dtos))
	for _, dto := range dtos {
		groups = append(groups, toDomainGroup(dto))
	}
	return groups
}

// toDomainTodo normalizes at the boundary: every record entering the engine
// carries a fully populated shape.
func toDomainTodo(dto todoDTO) domain.Todo {
	todo := domain.Todo{
		ID:              dto.ID,
		GroupID:         dto.GroupID,
		Title:           dto.Title,
		Description:     dto.Description,
		Category:        dto.Category,
		Priority:        domain.Priority(dto.Priority),
		Status:          domain.Status(dto.Status),
		Column:          domain.ColumnKey(dto.KanbanColumn),
		Creator:         toDomainUser(dto.Creator),
		AttachmentCount: dto.AttachmentCount,
		MessageCount:    dto.MessageCount,
	}
	if dto.Deadline != nil {
		if ts, err := time.Parse(time.RFC3339, *dto.Deadline); err == nil {
			todo.Deadline = &ts
		}
	}
	if dto.UpdatedAt != nil {
		if ts, err := time.Parse(time.RFC3339, *dto.UpdatedAt); err == nil {
			todo.UpdatedAt = ts
		}
	}
	if len(dto.Assignments) > 0 {
		todo.Assignments = make([]domain.Assignment, 0, len(dto.Assignments))
		for _, a := range dto.Assignments {
			todo.Assignments = append(todo.Assignments, toDomainAssignment(a))
		}
	}
	return domain.Normalize(todo)
}

func toDomainTodos(dtos []todoDTO) []domain.Todo {
	todos := make([]domain.Todo, 0, len(dtos))
	for _, dto := range dtos {
		todos = append(todos, toDomainTodo(dto))
	}
	return todos
}

func toDomainAssignment(dto assignmentDTO) domain.Assignment {
	status := domain.AssignmentStatus(dto.Status)
	if status == "" {
		status = domain.AssignmentPending
	}
	assignment := domain.Assignment{
		TodoID:      dto.TodoID,
		UserID:      dto.UserID,
		DisplayName: dto.DisplayName,
		Role:        dto.Role,
		Status:      status,
	}
	if dto.EstimatedMinutes != nil {
		value := *dto.EstimatedMinutes
		assignment.EstimatedMinutes = &value
	}
	return assignment
}

func toDomainInvitation(dto invitationDTO) domain.Invitation {
	status := domain.InvitationStatus(dto.Status)
	if status == "" {
		status = domain.InvitationPending
	}
	role := domain.Role(dto.Role)
	if role == "" {
		role = domain.RoleMember
	}
	return domain.Invitation{
		ID:        dto.ID,
		GroupID:   dto.GroupID,
		GroupName: dto.GroupName,
		Inviter:   toDomainUser(dto.Inviter),
		Role:      role,
		Message:   dto.Message,
		Status:    status,
	}
}

func toCreateTodoRequest(input domain.CreateTodoInput) createTodoRequest {
	req := createTodoRequest{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Priority:     string(input.Priority),
		Status:       string(input.Status),
		KanbanColumn: string(input.Column),
		AssigneeIDs:  input.AssigneeIDs,
	}
	if input.Deadline != nil {
		value := input.Deadline.Format(time.RFC3339)
		req.Deadline = &value
	}
	return req
}

func toUpdateTodoRequest(patch domain.TodoPatch) updateTodoRequest {
	req := updateTodoRequest{
		Title:       patch.Title,
		Description: patch.Description,
		Category:    patch.Category,
	}
	if patch.Priority != nil {
		value := string(*patch.Priority)
		req.Priority = &value
	}
	if patch.Status != nil {
		value := string(*patch.Status)
		req.Status = &value
	}
	if patch.Column != nil {
		value := string(*patch.Column)
		req.KanbanColumn = &value
	}
	if patch.Deadline != nil {
		value := patch.Deadline.Format(time.RFC3339)
		req.Deadline = &value
	}
	return req
}
