package domain

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

type InvitationAction string

const (
	InvitationActionAccept  InvitationAction = "accept"
	InvitationActionDecline InvitationAction = "decline"
)

type Invitation struct {
	ID        string
	GroupID   string
	GroupName string
	Inviter   User
	Role      Role
	Message   string
	Status    InvitationStatus
}

// InvitationOutcome is the response payload of an invitation resolution. On
// acceptance the server returns the group and its todos so the client can
// seed its store without a separate reload.
type InvitationOutcome struct {
	Group *Group
	Todos []Todo
}
