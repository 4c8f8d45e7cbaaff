package dbmongo

import (
	"context"
	"log"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"supportchat/internal/chat/repository"
	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

// messageStore is the MongoDB driver of the message store adapter,
// selected with STORE_DRIVER=mongo. Identifiers come from a counters
// collection so that the id tie-break stays monotonic with insertion
// order, matching the MySQL driver's autoincrement.
type messageStore struct {
	messages *mongo.Collection
	counters *mongo.Collection
	users    repository.UserRepository
}

type messageDoc struct {
	ID            uint64    `bson:"_id"`
	RecipientID   string    `bson:"recipientId"`
	Text          string    `bson:"text"`
	IsFromSupport bool      `bson:"isFromSupport"`
	SenderID      uint64    `bson:"senderId"`
	CreatedAt     time.Time `bson:"createdAt"`
}

// NewMessageStore returns the mongo-backed MessageRepository. Identity
// data stays in the external identity store, so user lookups go through
// the injected UserRepository either way.
func NewMessageStore(db *mongo.Database, users repository.UserRepository) repository.MessageRepository {
	return &messageStore{
		messages: db.Collection("messages"),
		counters: db.Collection("counters"),
		users:    users,
	}
}

func (s *messageStore) nextID(ctx context.Context) (uint64, error) {
	var counter struct {
		Seq uint64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "messages"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (s *messageStore) Append(ctx context.Context, recipientID, text string, fromSupport bool, senderID uint64) (*dbmysql.Message, error) {
	text, err := common.ValidateMessageText(text)
	if err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := &messageDoc{
		ID:            id,
		RecipientID:   recipientID,
		Text:          text,
		IsFromSupport: fromSupport,
		SenderID:      senderID,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.messages.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	msg := doc.toMessage()
	s.populateSender(ctx, msg)
	return msg, nil
}

func (s *messageStore) ListByRecipient(ctx context.Context, recipientID string) ([]*dbmysql.Message, error) {
	cursor, err := s.messages.Find(ctx,
		bson.M{"recipientId": recipientID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*dbmysql.Message{}
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		msg := doc.toMessage()
		s.populateSender(ctx, msg)
		messages = append(messages, msg)
	}
	return messages, cursor.Err()
}

func (s *messageStore) ListConversationSummaries(ctx context.Context) ([]*dbmysql.ConversationSummary, error) {
	cursor, err := s.messages.Find(ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []*dbmysql.ConversationSummary{}
	seen := map[string]bool{}
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if seen[doc.RecipientID] {
			continue
		}
		seen[doc.RecipientID] = true

		id, err := strconv.ParseUint(doc.RecipientID, 10, 64)
		if err != nil {
			log.Printf("skipping conversation summary for recipient %s: %v", doc.RecipientID, err)
			continue
		}
		user, err := s.users.ByID(ctx, id)
		if err != nil {
			log.Printf("skipping conversation summary for recipient %s: %v", doc.RecipientID, err)
			continue
		}

		summaries = append(summaries, &dbmysql.ConversationSummary{
			RecipientID:     doc.RecipientID,
			User:            user.View(),
			LastMessageTime: doc.CreatedAt,
			LastMessage: &dbmysql.LastMessage{
				Text:          doc.Text,
				IsFromSupport: doc.IsFromSupport,
				CreatedAt:     doc.CreatedAt,
			},
		})
	}
	return summaries, cursor.Err()
}

func (d *messageDoc) toMessage() *dbmysql.Message {
	return &dbmysql.Message{
		ID:            uint(d.ID),
		RecipientID:   d.RecipientID,
		Text:          d.Text,
		IsFromSupport: d.IsFromSupport,
		SenderID:      d.SenderID,
		CreatedAt:     d.CreatedAt,
	}
}

func (s *messageStore) populateSender(ctx context.Context, msg *dbmysql.Message) {
	if msg.SenderID == 0 {
		return
	}
	user, err := s.users.ByID(ctx, msg.SenderID)
	if err != nil {
		return
	}
	msg.Sender = user.View()
}
