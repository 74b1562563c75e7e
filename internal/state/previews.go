package state

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Preview errors returned by Consume.
var (
	ErrUnknownToken    = errors.New("unknown preview token")
	ErrAlreadyExecuted = errors.New("preview already executed")
	ErrExpired         = errors.New("preview expired")
)

type previewStatus int

const (
	statusBuilt previewStatus = iota
	statusExecuted
)

// Preview is a validated, fully-constructed command held pending execution.
type Preview struct {
	Token      string
	Subcommand string
	Argv       []string
	Display    string
	CreatedAt  time.Time
}

type entry struct {
	preview Preview
	status  previewStatus
}

// PreviewStore maps opaque tokens to pending command previews. Each entry
// may be consumed at most once and expires after the configured TTL.
// All methods are safe for concurrent use.
type PreviewStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

func NewPreviewStore(ttl time.Duration) *PreviewStore {
	return &PreviewStore{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Put stores a new preview and returns its token. Expired entries are
// swept opportunistically so the table stays bounded.
func (s *PreviewStore) Put(subcommand string, argv []string, display string) Preview {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	p := Preview{
		Token:      uuid.New().String(),
		Subcommand: subcommand,
		Argv:       append([]string(nil), argv...),
		Display:    display,
		CreatedAt:  now,
	}
	s.entries[p.Token] = &entry{preview: p}
	return p
}

// Consume marks the preview executed and returns it. The transition is
// atomic, so concurrent callers racing on the same token get exactly one
// success and ErrAlreadyExecuted for the rest.
func (s *PreviewStore) Consume(token string) (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return Preview{}, ErrUnknownToken
	}
	if e.status == statusExecuted {
		return Preview{}, ErrAlreadyExecuted
	}
	if s.now().Sub(e.preview.CreatedAt) > s.ttl {
		delete(s.entries, token)
		return Preview{}, ErrExpired
	}

	e.status = statusExecuted
	return e.preview, nil
}

// Peek returns the preview without changing its state.
func (s *PreviewStore) Peek(token string) (Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return Preview{}, false
	}
	return e.preview, true
}

// Len reports the number of live entries, expired ones included until the
// next sweep.
func (s *PreviewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *PreviewStore) sweepLocked(now time.Time) {
	for token, e := range s.entries {
		if now.Sub(e.preview.CreatedAt) > s.ttl {
			delete(s.entries, token)
		}
	}
}
