package service

import "boardsync/internal/core/domain"

// DefaultSchema is the fixed ordered column layout of the board.
func DefaultSchema() []domain.ColumnKey {
	return []domain.ColumnKey{
		domain.ColumnBacklog,
		domain.ColumnTodo,
		domain.ColumnInProgress,
		domain.ColumnReview,
		domain.ColumnCompleted,
	}
}

// statusFallback maps a todo's status onto a column when the record carries
// no usable column of its own. Legacy status spellings from older imports
// are accepted here so no card ever falls off the board.
var statusFallback = map[domain.Status]domain.ColumnKey{
	domain.StatusDone:       domain.ColumnCompleted,
	"completed":             domain.ColumnCompleted,
	domain.StatusPending:    domain.ColumnTodo,
	"todo":                  domain.ColumnTodo,
	domain.StatusInProgress: domain.ColumnInProgress,
	"working":               domain.ColumnInProgress,
	domain.StatusOverdue:    domain.ColumnReview,
	domain.StatusReview:     domain.ColumnReview,
	domain.StatusCancelled:  domain.ColumnBacklog,
	"backlog":               domain.ColumnBacklog,
}

// Project builds the board from the todos. Pure and linear; it runs
// unconditionally on every store change rather than incrementally.
//
// Column resolution, in priority order: exact match on the todo's own
// column, then the status fallback table, then the todo column. Every todo
// lands in exactly one column even when upstream data is inconsistent.
func Project(todos []domain.Todo, schema []domain.ColumnKey) []domain.BoardColumn {
	valid := make(map[domain.ColumnKey]bool, len(schema))
	for _, key := range schema {
		valid[key] = true
	}

	buckets := make(map[domain.ColumnKey][]domain.Todo, len(schema))
	for _, todo := range todos {
		key := resolveColumn(todo, valid)
		buckets[key] = append(buckets[key], todo)
	}

	columns := make([]domain.BoardColumn, 0, len(schema))
	for _, key := range schema {
		todos := buckets[key]
		if todos == nil {
			todos = []domain.Todo{}
		}
		columns = append(columns, domain.BoardColumn{Key: key, Todos: todos})
	}
	return columns
}

func resolveColumn(todo domain.Todo, valid map[domain.ColumnKey]bool) domain.ColumnKey {
	if valid[todo.Column] {
		return todo.Column
	}
	if key, ok := statusFallback[todo.Status]; ok && valid[key] {
		return key
	}
	return domain.ColumnTodo
}

// StatusForColumn derives the status a drag into the given column implies.
func StatusForColumn(key domain.ColumnKey) domain.Status {
	switch key {
	case domain.ColumnCompleted:
		return domain.StatusDone
	case domain.ColumnInProgress:
		return domain.StatusInProgress
	default:
		return domain.StatusPending
	}
}
