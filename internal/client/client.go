package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"supportchat/internal/dbmysql"
)

// ErrDisconnected is returned by Send while the live connection is down.
// Submission is gated on connectivity so messages are never silently
// queued and lost.
var ErrDisconnected = errors.New("chat: not connected")

const maxBackoff = 30 * time.Second

// Config configures a ChatClient for one authenticated user.
type Config struct {
	// BaseURL is the server origin, e.g. "http://localhost:1337".
	BaseURL string
	// Token is the bearer credential reused for both transports.
	Token string
	// UserID is the recipient identifier of the user's own conversation.
	UserID string
	// Store holds the offline history snapshot. Defaults to an
	// in-memory store.
	Store Store
	// OnUpdate, if set, is invoked with the full ordered view after
	// every state change.
	OnUpdate func(messages []*dbmysql.Message)

	HTTPClient *http.Client
}

// ChatClient merges three independent message sources — REST fetches,
// push frames, and the local snapshot — into one ordered, de-duplicated
// conversation view, and keeps a live connection up across failures.
type ChatClient struct {
	cfg  Config
	http *http.Client

	mu        sync.Mutex
	state     *messageState
	conn      *websocket.Conn
	connected bool
	degraded  bool
}

func New(cfg Config) *ChatClient {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ChatClient{
		cfg:   cfg,
		http:  cfg.HTTPClient,
		state: newMessageState(),
	}
}

// Start renders the cached snapshot immediately, refreshes from the REST
// API, and brings up the live connection. It returns once the initial
// fetch attempt finished; the connection loop runs until ctx is done.
func (c *ChatClient) Start(ctx context.Context) {
	if cached, err := c.cfg.Store.Load(c.cfg.UserID); err == nil {
		c.mu.Lock()
		c.state.replace(cached)
		c.mu.Unlock()
		c.notify()
	}

	c.Refresh(ctx)

	go c.runConnection(ctx)
}

// Refresh re-fetches authoritative history over REST. Success replaces
// state wholesale and rewrites the snapshot; failure keeps whatever is
// already rendered (typically the cache) and flips the degraded flag —
// a cache-backed view is not an error state.
func (c *ChatClient) Refresh(ctx context.Context) {
	messages, err := c.fetchHistory(ctx)
	if err != nil {
		log.Printf("chat: history fetch failed, serving cached snapshot: %v", err)
		c.mu.Lock()
		c.degraded = true
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.state.replace(messages)
	c.degraded = false
	c.saveSnapshot(c.state.snapshot())
	c.mu.Unlock()

	c.notify()
}

func (c *ChatClient) fetchHistory(ctx context.Context) ([]*dbmysql.Message, error) {
	endpoint := fmt.Sprintf("%s/api/messages/user/%s", c.cfg.BaseURL, c.cfg.UserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history fetch: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Data []*dbmysql.Message `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Send submits a message. The REST write is the durability path and
// already fans out to live connections server-side; the response and the
// push broadcast race, and the id-dedup rule collapses whichever arrives
// second. Refused while disconnected.
func (c *ChatClient) Send(ctx context.Context, text string) (*dbmysql.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("chat: empty message")
	}
	if !c.Connected() {
		return nil, ErrDisconnected
	}

	payload, err := json.Marshal(map[string]interface{}{
		"data": map[string]interface{}{"text": text, "isFromSupport": false},
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.cfg.BaseURL + "/api/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("send: unexpected status %d: %s", resp.StatusCode, body)
	}

	var body struct {
		Data *dbmysql.Message `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	c.mergeAndPersist(body.Data)
	return body.Data, nil
}

// SendViaSocket submits over the protocol instead of REST: lower latency,
// used when the REST surface is unreachable but the socket is up.
func (c *ChatClient) SendViaSocket(ctx context.Context, text string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrDisconnected
	}

	data, err := json.Marshal(map[string]interface{}{"text": text, "isFromSupport": false})
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, conn, map[string]interface{}{
		"event": "message",
		"data":  json.RawMessage(data),
	})
}

// Connected gates the submission controls: while false the UI disables
// sending rather than queueing messages that could be lost.
func (c *ChatClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Degraded reports that the last REST fetch failed and the rendered view
// came from the offline snapshot.
func (c *ChatClient) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Messages returns the current ordered, de-duplicated view.
func (c *ChatClient) Messages() []*dbmysql.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// runConnection keeps the duplex leg alive: dial, read until failure,
// back off, redo the handshake. Every reconnect gets a fresh history
// replay from the server; no client-side resume state exists.
func (c *ChatClient) runConnection(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		if err := c.runOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("chat: connection lost: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

func (c *ChatClient) runOnce(ctx context.Context) error {
	wsURL, err := c.websocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.connected = false
		c.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "client shutdown")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		c.handleFrame(data)
	}
}

func (c *ChatClient) websocketURL() (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {c.cfg.Token}}.Encode()
	return u.String(), nil
}

func (c *ChatClient) handleFrame(data []byte) {
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		log.Printf("chat: dropping malformed frame: %v", err)
		return
	}

	switch frame.Event {
	case "newMessage":
		var msg dbmysql.Message
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			log.Printf("chat: dropping malformed newMessage: %v", err)
			return
		}
		c.mergeAndPersist(&msg)

	case "messageHistory":
		messages, err := decodeHistory(frame.Data)
		if err != nil {
			log.Printf("chat: dropping malformed messageHistory: %v", err)
			return
		}
		c.mu.Lock()
		c.state.replace(messages)
		c.saveSnapshot(c.state.snapshot())
		c.mu.Unlock()
		c.notify()

	case "error":
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(frame.Data, &payload)
		log.Printf("chat: server error: %s", payload.Message)
	}
}

// decodeHistory accepts both observed replay shapes: a bare array and
// the wrapped {"messages": [...]} object.
func decodeHistory(data []byte) ([]*dbmysql.Message, error) {
	var wrapped struct {
		Messages []*dbmysql.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Messages != nil {
		return wrapped.Messages, nil
	}
	var bare []*dbmysql.Message
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

func (c *ChatClient) mergeAndPersist(msg *dbmysql.Message) {
	if msg == nil {
		return
	}
	c.mu.Lock()
	changed := c.state.merge(msg)
	if changed {
		c.saveSnapshot(c.state.snapshot())
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	c.notify()
}

// saveSnapshot writes the cache. Callers hold mu: the write happens in
// the same critical section as the state change, so snapshots land in
// state order and an older view can never overwrite a newer one.
func (c *ChatClient) saveSnapshot(messages []*dbmysql.Message) {
	if err := c.cfg.Store.Save(c.cfg.UserID, messages); err != nil {
		log.Printf("chat: failed to persist history snapshot: %v", err)
	}
}

func (c *ChatClient) notify() {
	if c.cfg.OnUpdate == nil {
		return
	}
	c.cfg.OnUpdate(c.Messages())
}
