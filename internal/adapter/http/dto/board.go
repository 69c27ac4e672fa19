package dto

type BoardResponse struct {
	GroupID string       `json:"group_id"`
	Columns []ColumnItem `json:"columns"`
}

type ColumnItem struct {
	Key   string     `json:"key"`
	Todos []TodoItem `json:"todos"`
}

type TodoItem struct {
	ID              string           `json:"id"`
	GroupID         string           `json:"group_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	Priority        string           `json:"priority"`
	Status          string           `json:"status"`
	KanbanColumn    string           `json:"kanban_column"`
	Deadline        *string          `json:"deadline,omitempty"`
	Creator         *UserItem        `json:"creator,omitempty"`
	Assignments     []AssignmentItem `json:"assignments"`
	AttachmentCount int              `json:"attachment_count"`
	MessageCount    int              `json:"message_count"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

type UserItem struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type AssignmentItem struct {
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name,omitempty"`
	Role             string `json:"role,omitempty"`
	Status           string `json:"status"`
	EstimatedMinutes *int   `json:"estimated_minutes,omitempty"`
}
