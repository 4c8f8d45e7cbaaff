package client

import (
	"sort"

	"supportchat/internal/dbmysql"
)

// messageState is the single ordered, de-duplicated view of the
// conversation, regardless of which transport a message arrived on.
// Identifier is the dedup key; timestamps can collide at second
// resolution and are not safe alone.
type messageState struct {
	messages []*dbmysql.Message
	byID     map[uint]bool
}

func newMessageState() *messageState {
	return &messageState{byID: make(map[uint]bool)}
}

// replace installs an authoritative snapshot wholesale.
func (s *messageState) replace(messages []*dbmysql.Message) {
	s.messages = make([]*dbmysql.Message, len(messages))
	copy(s.messages, messages)
	s.byID = make(map[uint]bool, len(messages))
	for _, msg := range messages {
		s.byID[msg.ID] = true
	}
	s.sortInPlace()
}

// merge inserts one pushed message, keeping order; it reports whether the
// state changed. A message whose id is already present is dropped.
func (s *messageState) merge(msg *dbmysql.Message) bool {
	if s.byID[msg.ID] {
		return false
	}
	s.byID[msg.ID] = true
	s.messages = append(s.messages, msg)
	s.sortInPlace()
	return true
}

func (s *messageState) snapshot() []*dbmysql.Message {
	out := make([]*dbmysql.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *messageState) sortInPlace() {
	sort.SliceStable(s.messages, func(i, j int) bool {
		a, b := s.messages[i], s.messages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
