// Package reconcile keeps a device's view of like counts in step with the
// server. A toggle is applied locally first, then confirmed or rolled back
// once the server answers.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"maple-blog/internal/domain"
)

var ErrInFlight = errors.New("a toggle for this entity is already in flight")

type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Key identifies a likeable entity. CommentType is only set for comments.
type Key struct {
	Kind        Kind
	ID          string
	CommentType domain.CommentType
}

func PostKey(slug string) Key {
	return Key{Kind: KindPost, ID: slug}
}

func CommentKey(id string, commentType domain.CommentType) Key {
	return Key{Kind: KindComment, ID: id, CommentType: commentType}
}

// Bucket names the persistent liked set the key belongs to.
func (k Key) Bucket() string {
	if k.Kind == KindComment {
		return fmt.Sprintf("comment:%s", k.CommentType)
	}
	return string(k.Kind)
}

func (k Key) String() string {
	return k.Bucket() + "/" + k.ID
}

type State struct {
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

// flipped is the optimistic state after one toggle. The count never drops
// below zero.
func (s State) flipped() State {
	if s.IsLiked {
		return State{LikeCount: max(0, s.LikeCount-1), IsLiked: false}
	}
	return State{LikeCount: s.LikeCount + 1, IsLiked: true}
}

type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseTentative
	PhaseConfirmed
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhaseTentative:
		return "tentative"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRolledBack:
		return "rolled back"
	}
	return "unknown"
}

type Backend interface {
	Toggle(ctx context.Context, key Key, deviceID string) (State, error)
}

// Store persists the device id and the liked set of every bucket.
type Store interface {
	DeviceID() (string, error)
	IsLiked(bucket, id string) (bool, error)
	SetLiked(bucket, id string, liked bool) error
}

type entry struct {
	state    State
	phase    Phase
	inFlight bool
}

type Reconciler struct {
	backend  Backend
	store    Store
	deviceID string

	mu      sync.Mutex
	entries map[Key]*entry
}

func New(backend Backend, store Store) (*Reconciler, error) {
	deviceID, err := store.DeviceID()
	if err != nil {
		return nil, fmt.Errorf("load device id: %w", err)
	}
	return &Reconciler{
		backend:  backend,
		store:    store,
		deviceID: deviceID,
		entries:  make(map[Key]*entry),
	}, nil
}

func (r *Reconciler) DeviceID() string {
	return r.deviceID
}

// Seed records a state reported by the server, e.g. from a list fetch. It is
// ignored while a toggle for the key is outstanding.
func (r *Reconciler) Seed(key Key, state State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entry(key)
	if e.inFlight {
		return
	}
	e.state = state
	e.phase = PhaseConfirmed
}

// State returns the current local view of key. Unseeded keys fall back to the
// persisted liked set with a zero count.
func (r *Reconciler) State(key Key) (State, Phase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		return e.state, e.phase, nil
	}
	liked, err := r.store.IsLiked(key.Bucket(), key.ID)
	if err != nil {
		return State{}, PhaseUnknown, err
	}
	return State{IsLiked: liked}, PhaseUnknown, nil
}

func (r *Reconciler) entry(key Key) *entry {
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	return e
}

// Toggle flips the like on key. Concurrent toggles on the same key are
// rejected with ErrInFlight. On failure the previous state and liked set are
// restored and the backend error is returned.
func (r *Reconciler) Toggle(ctx context.Context, key Key) (State, error) {
	prev, err := r.begin(key)
	if err != nil {
		return State{}, err
	}

	server, err := r.backend.Toggle(ctx, key, r.deviceID)

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entry(key)
	e.inFlight = false

	if err != nil {
		e.state = prev
		e.phase = PhaseRolledBack
		if serr := r.store.SetLiked(key.Bucket(), key.ID, prev.IsLiked); serr != nil {
			return prev, errors.Join(err, serr)
		}
		return prev, err
	}

	e.state = server
	e.phase = PhaseConfirmed
	if serr := r.store.SetLiked(key.Bucket(), key.ID, server.IsLiked); serr != nil {
		return server, serr
	}
	return server, nil
}

// begin applies the optimistic flip and marks key in flight.
func (r *Reconciler) begin(key Key) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, known := r.entries[key]
	if known && e.inFlight {
		return State{}, ErrInFlight
	}
	if !known {
		liked, err := r.store.IsLiked(key.Bucket(), key.ID)
		if err != nil {
			return State{}, err
		}
		e = r.entry(key)
		e.state = State{IsLiked: liked}
	}

	prev := e.state
	next := prev.flipped()
	if err := r.store.SetLiked(key.Bucket(), key.ID, next.IsLiked); err != nil {
		return State{}, err
	}

	e.state = next
	e.phase = PhaseTentative
	e.inFlight = true
	return prev, nil
}
