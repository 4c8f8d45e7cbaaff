package gateway

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/coder/websocket"

	"supportchat/internal/auth"
	"supportchat/internal/chat/service"
	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

// Hub owns the population of live connections and the room membership
// map. Rooms are keyed by recipient identity, so delivering a message is
// a pure multicast-group lookup: support agents are just members of more
// than one room.
//
// The map is guarded by mu and only mutated through join/leaveAll;
// Publish takes a read-lock snapshot. History replay on connect is
// unbounded — a long conversation replays in full, which is a known
// scaling limit of the current protocol.
type Hub struct {
	verifier auth.Verifier

	mu    sync.RWMutex
	rooms map[string]map[*session]struct{}

	chat service.ChatService
}

func NewHub(verifier auth.Verifier) *Hub {
	return &Hub{
		verifier: verifier,
		rooms:    make(map[string]map[*session]struct{}),
	}
}

// Attach binds the chat service after construction. The hub and the
// service reference each other (the service publishes through the hub),
// so the hub is built first and bound once at startup.
func (h *Hub) Attach(chat service.ChatService) {
	h.chat = chat
}

// ServeHTTP is the handshake: verify the credential, upgrade, admit.
// A connection that fails verification is rejected before upgrade and
// never holds any session state.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "authentication error: no token provided", http.StatusUnauthorized)
		return
	}

	identity, err := h.verifier.Resolve(r.Context(), token)
	if err != nil {
		http.Error(w, "authentication error", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("websocket upgrade failed for user %d: %v", identity.ID, err)
		return
	}

	sess := newSession(identity, conn)
	ctx := r.Context()

	ownRoom := service.OwnRoom(identity)
	h.join(sess, ownRoom)
	defer func() {
		h.leaveAll(sess)
		conn.Close(websocket.StatusNormalClosure, "connection ended")
	}()

	log.Printf("user %d connected", identity.ID)

	// Entering Open replays the session's own conversation, even when it
	// is empty. A reconnecting client redoes the handshake and gets a
	// fresh replay; no reconnection state is kept here.
	h.replayHistory(ctx, sess, ownRoom)

	h.readLoop(ctx, sess)
	log.Printf("user %d disconnected", identity.ID)
}

func (h *Hub) readLoop(ctx context.Context, sess *session) {
	for {
		_, data, err := sess.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				log.Printf("read error for user %d: %v", sess.identity.ID, err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			sess.sendError(ctx, "invalid message format")
			continue
		}

		switch frame.Event {
		case EventJoin:
			h.handleJoin(sess, frame.Data)
		case EventMessage, EventSendMessage:
			h.handleMessage(ctx, sess, frame.Data)
		case EventGetMessages:
			h.handleGetMessages(ctx, sess, frame.Data)
		default:
			sess.sendError(ctx, "unknown event: "+frame.Event)
		}
	}
}

// handleJoin adds a support session to another user's room. For anyone
// else it is a silent no-op: not an error, so room existence never leaks.
func (h *Hub) handleJoin(sess *session, data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.UserID == "" || !sess.identity.IsSupport() {
		return
	}
	h.join(sess, payload.UserID)
	log.Printf("support %d joined room for user %s", sess.identity.ID, payload.UserID)
}

func (h *Hub) handleMessage(ctx context.Context, sess *session, data json.RawMessage) {
	var payload messagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		sess.sendError(ctx, "invalid message payload")
		return
	}

	// Submit persists and then publishes to the recipient's room; the
	// broadcast is the acknowledgment, there is no separate ack frame.
	_, err := h.chat.Submit(ctx, sess.identity, payload.Text, payload.IsFromSupport, payload.TargetUserID)
	if err != nil {
		if common.IsValidation(err) {
			sess.sendError(ctx, err.Error())
		} else {
			sess.sendError(ctx, "failed to send message")
		}
		return
	}
}

func (h *Hub) handleGetMessages(ctx context.Context, sess *session, data json.RawMessage) {
	var payload getMessagesPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			sess.sendError(ctx, "invalid getMessages payload")
			return
		}
	}

	recipientID := h.chat.ResolveRecipient(sess.identity, payload.UserID)
	h.replayHistory(ctx, sess, recipientID)
}

func (h *Hub) replayHistory(ctx context.Context, sess *session, recipientID string) {
	messages, err := h.chat.History(ctx, sess.identity, recipientID)
	if err != nil {
		log.Printf("history replay failed for user %d: %v", sess.identity.ID, err)
		sess.sendError(ctx, "failed to get messages")
		return
	}
	if err := sess.sendHistory(ctx, messages); err != nil {
		log.Printf("failed to push history to user %d: %v", sess.identity.ID, err)
	}
}

// Publish implements service.Broadcaster: it fans msg out to every
// session currently in the recipient's room, including any of the
// sender's own connections that happen to be members.
func (h *Hub) Publish(recipientID string, msg *dbmysql.Message) {
	h.mu.RLock()
	members := make([]*session, 0, len(h.rooms[recipientID]))
	for sess := range h.rooms[recipientID] {
		members = append(members, sess)
	}
	h.mu.RUnlock()

	for _, sess := range members {
		if err := sess.sendNewMessage(context.Background(), msg); err != nil {
			// A dead connection only loses its own delivery; the message
			// is durable and resurfaces on its next history replay.
			log.Printf("dropping undeliverable session for user %d: %v", sess.identity.ID, err)
			h.leaveAll(sess)
		}
	}
}

func (h *Hub) join(sess *session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*session]struct{})
	}
	h.rooms[room][sess] = struct{}{}
}

func (h *Hub) leaveAll(sess *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, sess)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// RoomSize reports current membership of a room; used by tests and
// diagnostics.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
