package settings

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-baggage-monitor/internal/util"
)

// Listener is called after a change to at least one field in its mask.
// changed holds every field that differs, current the new snapshot.
type Listener func(changed Field, current Settings)

type subscription struct {
	id   int
	mask Field
	fn   Listener
}

// Store is the single source of truth for settings. Reads and writes are
// safe from any goroutine. Listeners run synchronously on the goroutine
// that made the change, after the lock is released.
type Store struct {
	mu          sync.RWMutex
	current     Settings
	persistence Persistence

	subsMu sync.Mutex
	subs   []subscription
	nextID int
}

// NewStore loads the persisted settings and returns a ready store. A missing
// or unreadable blob yields the defaults; the load itself never fails.
func NewStore(p Persistence) *Store {
	s := &Store{persistence: p, current: Defaults()}

	data, err := p.Load()
	switch {
	case err != nil:
		util.LogWarnf("Failed to load settings, using defaults: %v", err)
	case data == nil:
		util.LogDebug("No stored settings, using defaults")
	default:
		loaded, err := decode(data)
		if err != nil {
			util.LogWarnf("Discarding corrupt settings: %v", err)
		}
		s.current = loaded
	}

	util.LogInfof("Settings loaded: %s", s.current)
	return s
}

// Get returns a snapshot of all settings
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Theme() Theme {
	return s.Get().Theme
}

func (s *Store) LookupTimeRangePast() int {
	return s.Get().LookupTimeRangePast
}

func (s *Store) LookupTimeRangeFuture() int {
	return s.Get().LookupTimeRangeFuture
}

func (s *Store) CardsExpandedByDefault() bool {
	return s.Get().CardsExpandedByDefault
}

func (s *Store) SetTheme(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("theme %q: %w", t, ErrInvalidTheme)
	}
	s.update(func(cur *Settings) { cur.Theme = t }, true)
	return nil
}

func (s *Store) SetLookupTimeRangePast(hours int) error {
	if !validHours(hours) {
		return fmt.Errorf("lookup past %d: %w", hours, ErrInvalidHours)
	}
	s.update(func(cur *Settings) { cur.LookupTimeRangePast = hours }, true)
	return nil
}

func (s *Store) SetLookupTimeRangeFuture(hours int) error {
	if !validHours(hours) {
		return fmt.Errorf("lookup future %d: %w", hours, ErrInvalidHours)
	}
	s.update(func(cur *Settings) { cur.LookupTimeRangeFuture = hours }, true)
	return nil
}

func (s *Store) SetCardsExpandedByDefault(expanded bool) {
	s.update(func(cur *Settings) { cur.CardsExpandedByDefault = expanded }, true)
}

// ResetToDefaults restores every field in a single update, so listeners are
// notified at most once.
func (s *Store) ResetToDefaults() {
	s.update(func(cur *Settings) { *cur = Defaults() }, true)
}

// Reload re-reads the persisted blob, e.g. after another process edited it.
// Unlike the initial load, a corrupt blob keeps the current settings. The
// result is not written back.
func (s *Store) Reload() error {
	data, err := s.persistence.Load()
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	loaded, err := decode(data)
	if err != nil {
		return err
	}
	s.update(func(cur *Settings) { *cur = loaded }, false)
	return nil
}

// Subscribe registers fn for changes touching any field in mask. The
// returned function removes the subscription.
func (s *Store) Subscribe(mask Field, fn Listener) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, mask: mask, fn: fn})

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) update(mutate func(*Settings), persist bool) {
	s.mu.Lock()
	before := s.current
	after := before
	mutate(&after)

	changed := Changed(before, after)
	if changed == 0 {
		s.mu.Unlock()
		return
	}
	s.current = after

	// Written under the lock so concurrent setters reach disk in order
	if persist {
		if err := s.save(after); err != nil {
			util.LogErrorf("Failed to persist settings: %v", err)
		}
	}
	s.mu.Unlock()

	util.LogDebugf("Settings changed: %s", changed)
	s.notify(changed, after)
}

func (s *Store) save(current Settings) error {
	data, err := encode(current)
	if err != nil {
		return err
	}
	return s.persistence.Save(data)
}

func (s *Store) notify(changed Field, current Settings) {
	s.subsMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		if sub.mask.Has(changed) {
			sub.fn(changed, current)
		}
	}
}
