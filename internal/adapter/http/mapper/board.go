package mapper

import (
	"time"

	"boardsync/internal/adapter/http/dto"
	"boardsync/internal/core/domain"
)

func ToBoardResponse(board domain.Board) dto.BoardResponse {
	columns := make([]dto.ColumnItem, 0, len(board.Columns))
	for _, column := range board.Columns {
		columns = append(columns, dto.ColumnItem{
			Key:   string(column.Key),
			Todos: ToTodoItems(column.Todos),
		})
	}
	return dto.BoardResponse{GroupID: board.GroupID, Columns: columns}
}

func ToTodoItems(todos []domain.Todo) []dto.TodoItem {
	items := make([]dto.TodoItem, 0, len(todos))
	for _, todo := range todos {
		items = append(items, ToTodoItem(todo))
	}
	return items
}

func ToTodoItem(todo domain.Todo) dto.TodoItem {
	item := dto.TodoItem{
		ID:              todo.ID,
		GroupID:         todo.GroupID,
		Title:           todo.Title,
		Description:     todo.Description,
		Category:        todo.Category,
		Priority:        string(todo.Priority),
		Status:          string(todo.Status),
		KanbanColumn:    string(todo.Column),
		Assignments:     toAssignmentItems(todo.Assignments),
		AttachmentCount: todo.AttachmentCount,
		MessageCount:    todo.MessageCount,
	}

	if todo.Deadline != nil {
		value := todo.Deadline.Format(time.RFC3339)
		item.Deadline = &value
	}

	if !todo.UpdatedAt.IsZero() {
		item.UpdatedAt = todo.UpdatedAt.Format(time.RFC3339)
	}

	if todo.Creator.ID != "" {
		item.Creator = &dto.UserItem{
			ID:    todo.Creator.ID,
			Name:  todo.Creator.Name,
			Email: todo.Creator.Email,
		}
	}

	return item
}

func toAssignmentItems(assignments []domain.Assignment) []dto.AssignmentItem {
	items := make([]dto.AssignmentItem, 0, len(assignments))
	for _, assignment := range assignments {
		item := dto.AssignmentItem{
			UserID:      assignment.UserID,
			DisplayName: assignment.DisplayName,
			Role:        assignment.Role,
			Status:      string(assignment.Status),
		}
		if assignment.EstimatedMinutes != nil {
			value := *assignment.EstimatedMinutes
			item.EstimatedMinutes = &value
		}
		items = append(items, item)
	}
	return items
}
