package domain

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMessage is a chat line inside a group. NewsID is set when the message
// shares an article into the group.
type GroupMessage struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	NewsID    string    `json:"news_id,omitempty"`
	Article   *Article  `json:"article,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
