package gateway

// Wire shapes of the remote data gateway. Optional fields are pointers or
// omitted slices; the mapper defaults them before anything reaches the
// store.

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type groupDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
}

type assignmentDTO struct {
	TodoID           string `json:"todo_id"`
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name,omitempty"`
	Role             string `json:"role,omitempty"`
	Status           string `json:"status,omitempty"`
	EstimatedMinutes *int   `json:"estimated_minutes,omitempty"`
}

type todoDTO struct {
	ID              string          `json:"id"`
	GroupID         string          `json:"group_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Priority        string          `json:"priority,omitempty"`
	Status          string          `json:"status,omitempty"`
	KanbanColumn    string          `json:"kanban_column,omitempty"`
	Deadline        *string         `json:"deadline,omitempty"`
	Creator         *userDTO        `json:"creator,omitempty"`
	Assignments     []assignmentDTO `json:"assignments,omitempty"`
	AttachmentCount int             `json:"attachment_count,omitempty"`
	MessageCount    int             `json:"message_count,omitempty"`
	UpdatedAt       *string         `json:"updated_at,omitempty"`
}

type invitationDTO struct {
	ID        string   `json:"id"`
	GroupID   string   `json:"group_id"`
	GroupName string   `json:"group_name,omitempty"`
	Inviter   *userDTO `json:"inviter,omitempty"`
	Role      string   `json:"role,omitempty"`
	Message   string   `json:"message,omitempty"`
	Status    string   `json:"status,omitempty"`
}

type respondInvitationRequest struct {
	Action string `json:"action"`
}

type respondInvitationResponse struct {
	Group *groupDTO `json:"group,omitempty"`
	Todos []todoDTO `json:"todos,omitempty"`
}

type createTodoRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Priority     string   `json:"priority"`
	Status       string   `json:"status"`
	KanbanColumn string   `json:"kanban_column"`
	Deadline     *string  `json:"deadline,omitempty"`
	AssigneeIDs  []string `json:"assignee_ids,omitempty"`
}

type updateTodoRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Status       *string `json:"status,omitempty"`
	KanbanColumn *string `json:"kanban_column,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
}

type deleteGroupResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
