package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
)

// State is the single source of truth for who is signed in. It is safe for
// concurrent use. Observers get a copy of the principal, never the original.
type State struct {
	mu      sync.RWMutex
	current *models.Principal
	subs    map[uint64]chan *models.Principal
	nextID  uint64
}

func NewState(initial *models.Principal) *State {
	return &State{
		current: initial.Clone(),
		subs:    make(map[uint64]chan *models.Principal),
	}
}

// Current returns the signed-in principal or nil.
func (s *State) Current() *models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Publish replaces the current principal and notifies every subscriber.
// It never blocks: a subscriber that has not read the previous value gets
// only the newest one.
func (s *State) Publish(p *models.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = p.Clone()
	for _, ch := range s.subs {
		deliver(ch, s.current.Clone())
	}
}

// Subscribe returns a channel that immediately yields the current principal
// (nil when signed out) and then every change. The channel is closed once
// ctx is done.
func (s *State) Subscribe(ctx context.Context) <-chan *models.Principal {
	ch := make(chan *models.Principal, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.current.Clone()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// deliver must be called with s.mu held, which makes Publish the only sender.
func deliver(ch chan *models.Principal, p *models.Principal) {
	select {
	case ch <- p:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- p
}
