package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"supportchat/internal/auth"
	"supportchat/internal/chat/service"
)

// MessageHandler is the synchronous HTTP surface of the chat core. Every
// write lands in the same service submit the gateway uses, so REST
// clients reach live connections without holding one themselves.
type MessageHandler struct {
	chat service.ChatService
}

func NewMessageHandler(chat service.ChatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

type createMessageRequest struct {
	Text          string `json:"text"`
	IsFromSupport bool   `json:"isFromSupport,omitempty"`
}

type supportSendRequest struct {
	TargetUserID string `json:"targetUserId"`
	Text         string `json:"text"`
}

// Create handles POST /api/messages: the caller is both sender and
// recipient. The isFromSupport flag in the body is advisory at most; for
// non-support callers it is overridden server-side.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be authenticated to send messages")
		return
	}

	var req createMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chat.Submit(r.Context(), identity, req.Text, req.IsFromSupport, "")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, msg)
}

// FindByUser handles GET /api/messages/user/{userId}: full conversation
// for userId, ascending. Only userId itself or support may read it.
func (h *MessageHandler) FindByUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be authenticated to access messages")
		return
	}

	userID := mux.Vars(r)["userId"]
	messages, err := h.chat.History(r.Context(), identity, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, messages, len(messages))
}

// AllChats handles GET /api/messages/chats/all: the support inbox view,
// one summary per recipient, newest conversation first.
func (h *MessageHandler) AllChats(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be authenticated")
		return
	}

	summaries, err := h.chat.Summaries(r.Context(), identity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, summaries, len(summaries))
}

// SupportSend handles POST /api/messages/support/send: a support-origin
// message into the target recipient's conversation.
func (h *MessageHandler) SupportSend(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "you must be authenticated")
		return
	}

	var req supportSendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chat.SubmitSupport(r.Context(), identity, req.TargetUserID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, msg)
}
