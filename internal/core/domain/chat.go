package domain

import "time"

type ChatMessage struct {
	ID        string
	TodoID    string
	Sender    User
	Content   string
	CreatedAt time.Time
}
