// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package history

import (
	"crypto/rand"
	"encoding/hex"
	"maps"
	"slices"
	"sync"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/metrics"
	"code.gitea.io/githistory/modules/util"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// SessionID is the opaque 160 bits name of a resumable walk
type SessionID [20]byte

// NewSessionID returns a random session id
func NewSessionID() (SessionID, error) {
	var id SessionID
	_, err := rand.Read(id[:])
	return id, err
}

// ParseSessionID decodes the 40 characters hex form of a session id
func ParseSessionID(s string) (SessionID, error) {
	var id SessionID
	if len(s) != hex.EncodedLen(len(id)) {
		return id, util.NewInvalidArgumentErrorf("malformed session id %q", s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, util.NewInvalidArgumentErrorf("malformed session id %q: %v", s, err)
	}
	return id, nil
}

// String returns the 40 characters lowercase hex form
func (id SessionID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler
func (id SessionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *SessionID) UnmarshalText(text []byte) error {
	parsed, err := ParseSessionID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Session is the state of a walk between two pages
type Session struct {
	ID           SessionID
	Visited      map[git.ObjectID]struct{}
	Continuation []git.ObjectID
	SentPages    int
}

func (s *Session) clone() *Session {
	return &Session{
		ID:           s.ID,
		Visited:      maps.Clone(s.Visited),
		Continuation: slices.Clone(s.Continuation),
		SentPages:    s.SentPages,
	}
}

// SessionStore keeps the sessions of truncated walks in memory.
// It holds at most its capacity, the least recently used session is evicted first.
type SessionStore struct {
	mu       sync.Mutex
	sessions *simplelru.LRU[SessionID, *Session]
}

// NewSessionStore creates a store holding at most capacity sessions
func NewSessionStore(capacity int) (*SessionStore, error) {
	sessions, err := simplelru.NewLRU[SessionID, *Session](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &SessionStore{sessions: sessions}, nil
}

// Create stores a new session and returns its id, visited and continuation are owned by the store afterwards
func (s *SessionStore) Create(visited map[git.ObjectID]struct{}, continuation []git.ObjectID) (SessionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id SessionID
	for {
		var err error
		id, err = NewSessionID()
		if err != nil {
			return id, err
		}
		if !s.sessions.Contains(id) {
			break
		}
	}
	if s.sessions.Add(id, &Session{ID: id, Visited: visited, Continuation: continuation}) {
		metrics.SessionsEvicted.Inc()
		log.Debug("Session store is full (%d sessions), evicted the least recently used session", s.sessions.Len())
	}
	metrics.SessionsActive.Set(float64(s.sessions.Len()))
	return id, nil
}

// Resume returns a copy of the session, the caller may modify it freely
func (s *SessionStore) Resume(id SessionID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotExist{ID: id.String()}
	}
	return sess.clone(), nil
}

// Advance replaces the state of the session after one more page has been sent
func (s *SessionStore) Advance(id SessionID, visited map[git.ObjectID]struct{}, continuation []git.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(id)
	if !ok {
		return ErrSessionNotExist{ID: id.String()}
	}
	sess.Visited = visited
	sess.Continuation = continuation
	sess.SentPages++
	log.Debug("Session %s: page %d sent, %d visited, %d pending", id, sess.SentPages, len(visited), len(continuation))
	return nil
}

// Drop removes the session, dropping an unknown session is a no-op
func (s *SessionStore) Drop(id SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Remove(id)
	metrics.SessionsActive.Set(float64(s.sessions.Len()))
}

// Len returns the number of sessions held
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}
