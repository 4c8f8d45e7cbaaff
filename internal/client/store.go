package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"supportchat/internal/dbmysql"
)

// Store is the local history snapshot: a best-effort, non-authoritative
// copy of one conversation, overwritten by every fresher fetch or merge
// and consulted only when a live fetch fails.
type Store interface {
	Load(recipientID string) ([]*dbmysql.Message, error)
	Save(recipientID string, messages []*dbmysql.Message) error
}

// FileStore keeps one JSON file per recipient under a directory,
// mirroring the browser client's localStorage blob.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(recipientID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("chat_history_%s.json", recipientID))
}

func (s *FileStore) Load(recipientID string) ([]*dbmysql.Message, error) {
	data, err := os.ReadFile(s.path(recipientID))
	if err != nil {
		return nil, err
	}
	var messages []*dbmysql.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *FileStore) Save(recipientID string, messages []*dbmysql.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(recipientID), data, 0o644)
}

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu        sync.Mutex
	snapshots map[string][]*dbmysql.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]*dbmysql.Message)}
}

func (s *MemoryStore) Load(recipientID string) ([]*dbmysql.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[recipientID]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := make([]*dbmysql.Message, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

func (s *MemoryStore) Save(recipientID string, messages []*dbmysql.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]*dbmysql.Message, len(messages))
	copy(snapshot, messages)
	s.snapshots[recipientID] = snapshot
	return nil
}
