// internal/domain/conversation/entity.go
package conversation

import (
	"database/sql"
	"time"
)

// Conversation is a thread between a buyer and a realtor, optionally
// anchored to a listing. Only the two participants may read or post.
type Conversation struct {
	ID            int64         `json:"id" db:"id"`
	BuyerID       int64         `json:"buyer_id" db:"buyer_id"`
	RealtorID     int64         `json:"realtor_id" db:"realtor_id"`
	PropertyID    sql.NullInt64 `json:"property_id,omitempty" db:"property_id"`
	LastMessage   string        `json:"last_message" db:"last_message"`
	LastMessageAt sql.NullTime  `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// Involves reports whether the user is one of the two participants.
func (c *Conversation) Involves(userID int64) bool {
	return c.BuyerID == userID || c.RealtorID == userID
}

// Counterpart returns the other participant's ID.
func (c *Conversation) Counterpart(userID int64) int64 {
	if c.BuyerID == userID {
		return c.RealtorID
	}
	return c.BuyerID
}

type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversation_id" db:"conversation_id"`
	SenderID       int64     `json:"sender_id" db:"sender_id"`
	Body           string    `json:"body" db:"body"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
