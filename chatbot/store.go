package chatbot

import (
	"container/list"
	"context"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var randChars = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
var randMax = big.NewInt(int64(len(randChars)))

func randKey(length int) string {
	str := make([]byte, length)
	for i := range str {
		k, err := rand.Int(rand.Reader, randMax)
		if err != nil {
			str[i] = randChars[0]
		} else {
			str[i] = randChars[k.Int64()]
		}
	}
	return string(str)
}

// Session is a visitor's conversation held by the server
type Session struct {
	ID        string
	Machine   *Machine
	CreatedAt time.Time
}

// SessionStore holds live sessions
type SessionStore interface {
	// Get returns nil if the session does not exist or has expired
	Get(id string) (*Session, error)
	Create() (*Session, error)
	Len() int
}

// LRUStore implements SessionStore with a size-bounded LRU cache. Sessions
// idle for longer than the idle timeout are dropped by Scavenge.
type LRUStore struct {
	newMachine func() *Machine
	maxBytes   int
	idle       time.Duration
	now        func() time.Time

	mu       sync.Mutex
	curBytes int
	cache    map[string]*list.Element
	lru      *list.List
}

type cacheEntry struct {
	session  *Session
	bytes    int
	lastSeen time.Time
}

// NewLRUStore creates a store evicting least recently used sessions past
// maxBytes. newMachine builds the conversation of each new session.
func NewLRUStore(maxBytes int, idle time.Duration, newMachine func() *Machine) *LRUStore {
	return &LRUStore{
		newMachine: newMachine,
		maxBytes:   maxBytes,
		idle:       idle,
		now:        time.Now,
		cache:      make(map[string]*list.Element),
		lru:        list.New(),
	}
}

func estimateBytes(s *Session) int {
	data, _ := json.Marshal(s.Machine.State())
	return len(data) + len(s.ID)
}

// Get retrieves a session by ID and marks it as recently used
func (s *LRUStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.cache[id]
	if !ok {
		return nil, nil
	}

	entry := elem.Value.(*cacheEntry)
	now := s.now()
	if s.idle > 0 && now.Sub(entry.lastSeen) > s.idle {
		s.removeElement(elem)
		return nil, nil
	}

	entry.lastSeen = now
	newBytes := estimateBytes(entry.session)
	s.curBytes += newBytes - entry.bytes
	entry.bytes = newBytes

	s.lru.MoveToFront(elem)
	s.evictIfNeeded(0, elem)
	return entry.session, nil
}

// Create starts a new session at the root menu
func (s *LRUStore) Create() (*Session, error) {
	session := &Session{
		ID:        randKey(32),
		Machine:   s.newMachine(),
		CreatedAt: s.now(),
	}
	bytes := estimateBytes(session)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIfNeeded(bytes, nil)

	entry := &cacheEntry{session: session, bytes: bytes, lastSeen: session.CreatedAt}
	s.cache[session.ID] = s.lru.PushFront(entry)
	s.curBytes += bytes

	return session, nil
}

// Len returns the number of live sessions
func (s *LRUStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Scavenge removes sessions idle past the timeout and returns how many were removed
func (s *LRUStore) Scavenge() int {
	if s.idle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for elem := s.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if now.Sub(elem.Value.(*cacheEntry).lastSeen) > s.idle {
			s.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Run scavenges every interval until ctx is done
func (s *LRUStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Scavenge(); n > 0 {
				log.Debug().Int("removed", n).Int("live", s.Len()).Msg("Scavenged idle sessions")
			}
		}
	}
}

// evictIfNeeded drops the oldest sessions until additionalBytes fit. keep is
// never evicted.
func (s *LRUStore) evictIfNeeded(additionalBytes int, keep *list.Element) {
	for s.curBytes+additionalBytes > s.maxBytes && s.lru.Len() > 0 {
		oldest := s.lru.Back()
		if oldest == nil || oldest == keep {
			break
		}
		s.removeElement(oldest)
	}
}

func (s *LRUStore) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	s.lru.Remove(elem)
	delete(s.cache, entry.session.ID)
	s.curBytes -= entry.bytes
	entry.session.Machine.Close()
}
