package service

import (
	"context"
	"fmt"
	"strconv"

	"supportchat/internal/chat/repository"
	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

//go:generate mockgen -source=chat_service.go -destination=mocks/mock_chat_service.go -package=mocks

// Broadcaster fans a persisted message out to every live connection in
// the recipient's room. The connection gateway implements it; the service
// invokes it strictly after the store append completes, which is what
// makes room delivery order equal append order.
type Broadcaster interface {
	Publish(recipientID string, msg *dbmysql.Message)
}

// ChatService is the single append+publish core behind both transports.
// The REST handlers and the gateway's protocol handlers are thin adapters
// over these methods; neither duplicates persistence or fan-out logic.
type ChatService interface {
	// Submit creates a message on behalf of sender. The recipient is the
	// sender's own conversation unless the sender holds the support role
	// and names a target. A support-origin claim from a non-support
	// sender is overridden to false, never trusted.
	Submit(ctx context.Context, sender *common.Identity, text string, claimSupport bool, targetUserID string) (*dbmysql.Message, error)

	// SubmitSupport creates a support-origin message for the target
	// recipient. Callers without the support role get ErrForbidden and
	// nothing is persisted.
	SubmitSupport(ctx context.Context, sender *common.Identity, targetUserID, text string) (*dbmysql.Message, error)

	// History returns the full ordered conversation for userID. The
	// caller must be userID itself or hold the support role.
	History(ctx context.Context, caller *common.Identity, userID string) ([]*dbmysql.Message, error)

	// ResolveRecipient maps an optional target onto the conversation the
	// caller may act on: the caller's own unless it is support naming a
	// target. Non-support targets are ignored, not rejected.
	ResolveRecipient(caller *common.Identity, targetUserID string) string

	// Summaries returns the support inbox listing, newest first.
	Summaries(ctx context.Context, caller *common.Identity) ([]*dbmysql.ConversationSummary, error)
}

type chatService struct {
	repo        repository.MessageRepository
	broadcaster Broadcaster
}

// Constructor used in DI/wire
func NewChatService(repo repository.MessageRepository, broadcaster Broadcaster) ChatService {
	return &chatService{repo: repo, broadcaster: broadcaster}
}

func (s *chatService) Submit(ctx context.Context, sender *common.Identity, text string, claimSupport bool, targetUserID string) (*dbmysql.Message, error) {
	recipientID := s.ResolveRecipient(sender, targetUserID)

	// Origin is server-derived: the claim only counts when the role
	// backs it.
	fromSupport := claimSupport && sender.IsSupport()

	return s.submit(ctx, recipientID, text, fromSupport, sender.ID)
}

func (s *chatService) SubmitSupport(ctx context.Context, sender *common.Identity, targetUserID, text string) (*dbmysql.Message, error) {
	if !sender.IsSupport() {
		return nil, fmt.Errorf("%w: only support users can send support messages", common.ErrForbidden)
	}
	if targetUserID == "" {
		return nil, fmt.Errorf("%w: targetUserId is required", common.ErrValidation)
	}
	return s.submit(ctx, targetUserID, text, true, sender.ID)
}

// submit is the one durability-then-fan-out operation. Persist first;
// only a successful append is broadcast.
func (s *chatService) submit(ctx context.Context, recipientID, text string, fromSupport bool, senderID uint64) (*dbmysql.Message, error) {
	msg, err := s.repo.Append(ctx, recipientID, text, fromSupport, senderID)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.Publish(recipientID, msg)
	}
	return msg, nil
}

func (s *chatService) History(ctx context.Context, caller *common.Identity, userID string) ([]*dbmysql.Message, error) {
	if OwnRoom(caller) != userID && !caller.IsSupport() {
		return nil, fmt.Errorf("%w: you can only access your own messages", common.ErrForbidden)
	}
	return s.repo.ListByRecipient(ctx, userID)
}

func (s *chatService) ResolveRecipient(caller *common.Identity, targetUserID string) string {
	if caller.IsSupport() && targetUserID != "" {
		return targetUserID
	}
	return OwnRoom(caller)
}

func (s *chatService) Summaries(ctx context.Context, caller *common.Identity) ([]*dbmysql.ConversationSummary, error) {
	if !caller.IsSupport() {
		return nil, fmt.Errorf("%w: only support users can access all chats", common.ErrForbidden)
	}
	return s.repo.ListConversationSummaries(ctx)
}

// OwnRoom is the room key of an identity's own conversation.
func OwnRoom(id *common.Identity) string {
	return strconv.FormatUint(id.ID, 10)
}
