// Package store holds the site's users, articles, media library and the
// current session in memory, persists the whole state after every change and
// rehydrates it on startup.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/domain/image"
	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/security"
	"github.com/google/uuid"
)

// State is the full table set plus the session pointer. It is also the
// persisted snapshot.
type State struct {
	CurrentUser    *user.User            `json:"currentUser"`
	Users          []user.User           `json:"users"`
	Articles       []article.Article     `json:"articles"`
	UploadedImages []image.UploadedImage `json:"uploadedImages"`
}

func (s State) clone() State {
	out := State{
		Users:          make([]user.User, len(s.Users)),
		Articles:       make([]article.Article, len(s.Articles)),
		UploadedImages: make([]image.UploadedImage, len(s.UploadedImages)),
	}
	copy(out.Users, s.Users)
	copy(out.Articles, s.Articles)
	copy(out.UploadedImages, s.UploadedImages)

	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// Persister is the side-effecting collaborator the store writes snapshots to.
// Load returns slot.ErrNotFound when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
}

type Listener func(State)

type Store struct {
	// writeMu serializes mutate -> persist -> notify; mu guards state.
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   State

	persister   Persister
	newID       func() string
	hasher      security.Hasher
	log         *slog.Logger
	saveTimeout time.Duration

	subMu     sync.Mutex
	nextSubID int
	listeners []subscription
}

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithHasher(h security.Hasher) Option {
	return func(s *Store) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// New builds a store and rehydrates it from p. An empty slot, or one whose
// content cannot be decoded, falls back to the demo users and empty tables.
// Any other load error is returned: starting from demo data over an
// unreachable backend would overwrite the real snapshot on the first write.
func New(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister:   p,
		newID:       uuid.NewString,
		hasher:      security.Plaintext{},
		log:         slog.Default(),
		saveTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.state = s.initialState()
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) initialState() State {
	return State{
		Users:          s.demoUsers(),
		Articles:       []article.Article{},
		UploadedImages: []image.UploadedImage{},
	}
}

func (s *Store) hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	loaded, err := s.persister.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, slot.ErrNotFound):
		s.log.Info("store: no persisted snapshot, starting from demo data")
		return nil
	case errors.Is(err, ErrUnreadableSnapshot), errors.Is(err, ErrUnsupportedVersion):
		s.log.Warn("store: persisted snapshot unreadable, starting from demo data", "err", err)
		return nil
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}

	// tables missing from the snapshot keep their initial values
	if loaded.Users != nil {
		s.state.Users = loaded.Users
	}
	if loaded.Articles != nil {
		s.state.Articles = loaded.Articles
	}
	if loaded.UploadedImages != nil {
		s.state.UploadedImages = loaded.UploadedImages
	}
	s.state.CurrentUser = loaded.CurrentUser

	s.log.Info("store: snapshot restored",
		"users", len(s.state.Users),
		"articles", len(s.state.Articles),
		"images", len(s.state.UploadedImages),
	)
	return nil
}

// State returns a copy of everything the store holds.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}

// mutate runs fn against the live state. When fn reports a change the new
// state is persisted and broadcast before mutate returns.
func (s *Store) mutate(op string, fn func(st *State) bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := fn(&s.state)
	var snap State
	if changed {
		snap = s.state.clone()
	}
	s.mu.Unlock()

	if !changed {
		return
	}

	s.persist(op, snap)
	s.notify(snap)
}

func (s *Store) persist(op string, snap State) {
	if s.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	err := s.persister.Save(ctx, snap)
	if err != nil {
		s.log.Error("store: persist failed", "op", op, "err", err)
	}
}
