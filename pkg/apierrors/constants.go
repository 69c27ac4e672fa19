package apierrors

// Message keys for user-visible notices and API error envelopes. The
// translations live in pkg/translator/translation.
const (
	MsgFailLoadBoard   = "failLoadBoard"
	MsgFailMoveTodo    = "failMoveTodo"
	MsgFailCreateTodo  = "failCreateTodo"
	MsgFailDeleteGroup = "failDeleteGroup"
	MsgFailInvitation  = "failInvitation"
	MsgInvalidTodoID   = "invalidTodoID"
	MsgTodoNotFound    = "todoNotFound"
	MsgNotPermitted    = "notPermitted"
	MsgChannelDown     = "channelDown"
	MsgChannelRestored = "channelRestored"
	MsgNewTodoArrived  = "newTodoArrived"
	MsgTodoCompleted   = "todoCompleted"
)
