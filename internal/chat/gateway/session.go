package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

const writeTimeout = 10 * time.Second

// session is one live authenticated connection. The identity is fixed at
// handshake time and never re-resolved; room membership lives in the hub.
type session struct {
	identity *common.Identity
	conn     *websocket.Conn

	// serializes writes; websocket allows only one writer at a time
	writeMu sync.Mutex
}

func newSession(identity *common.Identity, conn *websocket.Conn) *session {
	return &session{identity: identity, conn: conn}
}

func (s *session) write(ctx context.Context, frame *Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, s.conn, frame)
}

func (s *session) sendNewMessage(ctx context.Context, msg *dbmysql.Message) error {
	frame, err := newFrame(EventNewMessage, msg)
	if err != nil {
		return err
	}
	return s.write(ctx, frame)
}

func (s *session) sendHistory(ctx context.Context, messages []*dbmysql.Message) error {
	if messages == nil {
		messages = []*dbmysql.Message{}
	}
	frame, err := newFrame(EventMessageHistory, &historyPayload{Messages: messages})
	if err != nil {
		return err
	}
	return s.write(ctx, frame)
}

// sendError emits a local error frame to this connection only. Errors
// never disconnect the session and never reach the room.
func (s *session) sendError(ctx context.Context, message string) {
	frame, err := newFrame(EventError, &errorPayload{Message: message})
	if err != nil {
		return
	}
	_ = s.write(ctx, frame)
}
