package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusOverdue    Status = "overdue"
	StatusCancelled  Status = "cancelled"
)

// ColumnKey is the workflow bucket a todo is displayed in. It is stored
// independently of Status: imported data may carry one without the other.
type ColumnKey string

const (
	ColumnBacklog    ColumnKey = "backlog"
	ColumnTodo       ColumnKey = "todo"
	ColumnInProgress ColumnKey = "in_progress"
	ColumnReview     ColumnKey = "review"
	ColumnCompleted  ColumnKey = "completed"
)

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

type Todo struct {
	ID              string
	GroupID         string
	Title           string
	Description     string
	Category        string
	Priority        Priority
	Status          Status
	Column          ColumnKey
	Deadline        *time.Time
	Creator         User
	Assignments     []Assignment
	AttachmentCount int
	MessageCount    int
	UpdatedAt       time.Time
}

// Assignment ties one member to a todo. Aggregate completion (all
// assignments completed) is decided by the server and arrives as a
// todoCompleted event; it is never inferred locally.
type Assignment struct {
	TodoID           string
	UserID           string
	DisplayName      string
	Role             string
	Status           AssignmentStatus
	EstimatedMinutes *int
}

type CreateTodoInput struct {
	Title       string
	Description string
	Category    string
	Priority    Priority
	Status      Status
	Column      ColumnKey
	Deadline    *time.Time
	AssigneeIDs []string
}

// TodoPatch is a shallow field-level update. Nil pointers leave the stored
// value untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *Priority
	Status      *Status
	Column      *ColumnKey
	Deadline    *time.Time
}

// Normalize fills the defaults every record must carry before it enters the
// store, so merge logic can assume a fully populated shape. Applied at the
// gateway boundary and on invitation seeding.
func Normalize(t Todo) Todo {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Column == "" {
		t.Column = ColumnTodo
	}
	if t.Assignments == nil {
		t.Assignments = []Assignment{}
	}
	return t
}

// Apply merges the patch into the todo and returns the result.
func (t Todo) Apply(p TodoPatch) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Column != nil {
		t.Column = *p.Column
	}
	if p.Deadline != nil {
		value := *p.Deadline
		t.Deadline = &value
	}
	return t
}
