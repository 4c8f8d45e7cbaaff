package repository

import (
	"context"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

type messageRepo struct {
	db    *gorm.DB
	users UserRepository
}

// NewMessageRepository returns the MySQL-backed message store.
func NewMessageRepository(db *gorm.DB, users UserRepository) MessageRepository {
	return &messageRepo{db: db, users: users}
}

func (r *messageRepo) Append(ctx context.Context, recipientID, text string, fromSupport bool, senderID uint64) (*dbmysql.Message, error) {
	text, err := common.ValidateMessageText(text)
	if err != nil {
		return nil, err
	}

	msg := &dbmysql.Message{
		RecipientID:   recipientID,
		Text:          text,
		IsFromSupport: fromSupport,
		SenderID:      senderID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}

	r.populateSenders(ctx, []*dbmysql.Message{msg})
	return msg, nil
}

func (r *messageRepo) ListByRecipient(ctx context.Context, recipientID string) ([]*dbmysql.Message, error) {
	messages := []*dbmysql.Message{}
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	r.populateSenders(ctx, messages)
	return messages, nil
}

func (r *messageRepo) ListConversationSummaries(ctx context.Context) ([]*dbmysql.ConversationSummary, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Messages arrive newest first, so the first hit per recipient is the
	// conversation's last message and the resulting slice is already
	// sorted by last-message time descending.
	summaries := []*dbmysql.ConversationSummary{}
	seen := map[string]bool{}
	for _, msg := range messages {
		if seen[msg.RecipientID] {
			continue
		}
		seen[msg.RecipientID] = true

		view, err := r.resolveRecipient(ctx, msg.RecipientID)
		if err != nil {
			// One broken reference must not blank the whole inbox; skip
			// the entry and keep going.
			log.Printf("skipping conversation summary for recipient %s: %v", msg.RecipientID, err)
			continue
		}

		summaries = append(summaries, &dbmysql.ConversationSummary{
			RecipientID:     msg.RecipientID,
			User:            view,
			LastMessageTime: msg.CreatedAt,
			LastMessage: &dbmysql.LastMessage{
				Text:          msg.Text,
				IsFromSupport: msg.IsFromSupport,
				CreatedAt:     msg.CreatedAt,
			},
		})
	}
	return summaries, nil
}

func (r *messageRepo) resolveRecipient(ctx context.Context, recipientID string) (*dbmysql.UserView, error) {
	id, err := strconv.ParseUint(recipientID, 10, 64)
	if err != nil {
		return nil, err
	}
	user, err := r.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// populateSenders fills the embedded sender view on each message. Sender
// resolution is best effort: a missing sender leaves the view nil rather
// than failing the read.
func (r *messageRepo) populateSenders(ctx context.Context, messages []*dbmysql.Message) {
	cache := map[uint64]*dbmysql.UserView{}
	for _, msg := range messages {
		if msg.SenderID == 0 {
			continue
		}
		if view, ok := cache[msg.SenderID]; ok {
			msg.Sender = view
			continue
		}
		user, err := r.users.ByID(ctx, msg.SenderID)
		if err != nil {
			cache[msg.SenderID] = nil
			continue
		}
		cache[msg.SenderID] = user.View()
		msg.Sender = cache[msg.SenderID]
	}
}
