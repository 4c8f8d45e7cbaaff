package dbmysql

import "time"

// Message is the single append-only chat entity. RecipientID is always
// the end-user party of the conversation, even when support authored the
// message. Rows are immutable after creation.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RecipientID   string    `gorm:"index;size:36;column:recipient_id" json:"userId"`
	Text          string    `gorm:"type:text" json:"text"`
	IsFromSupport bool      `gorm:"column:is_from_support" json:"isFromSupport"`
	SenderID      uint64    `gorm:"index;column:sender_id" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`

	// Sender is the resolved identity view of SenderID; populated on
	// reads, never stored.
	Sender *UserView `gorm:"-" json:"user,omitempty"`
}

// UserView is the projection of a user embedded in message payloads and
// conversation summaries.
type UserView struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LastMessage is the trailing-message projection inside a conversation
// summary.
type LastMessage struct {
	Text          string    `json:"text"`
	IsFromSupport bool      `json:"isFromSupport"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ConversationSummary is the derived support-inbox entry for one
// recipient. Never persisted; computed at query time.
type ConversationSummary struct {
	RecipientID     string       `json:"userId"`
	User            *UserView    `json:"user"`
	LastMessageTime time.Time    `json:"lastMessageTime"`
	LastMessage     *LastMessage `json:"lastMessage"`
}
