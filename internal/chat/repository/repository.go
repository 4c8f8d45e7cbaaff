package repository

import (
	"context"

	"supportchat/internal/dbmysql"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// MessageRepository is the interface to durable message storage. The
// store assigns identifiers and creation timestamps; rows are immutable
// after Append.
type MessageRepository interface {
	Append(ctx context.Context, recipientID, text string, fromSupport bool, senderID uint64) (*dbmysql.Message, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*dbmysql.Message, error)
	ListConversationSummaries(ctx context.Context) ([]*dbmysql.ConversationSummary, error)
}

// UserRepository is the read-mostly interface to the identity store.
type UserRepository interface {
	ByID(ctx context.Context, id uint64) (*dbmysql.User, error)
	// ByIdentifier matches the login identifier against username or email.
	ByIdentifier(ctx context.Context, identifier string) (*dbmysql.User, error)
	Create(ctx context.Context, user *dbmysql.User) error
}
