// Package exportgate decides whether an export may run for an owner.
//
// Owners start locked. Requesting an export while locked records it as pending
// and moves to confirming; the export must not run. Confirm persists the unlock
// and hands back the pending export. Cancel returns to locked. Unlocked is
// permanent because the flag is persisted.
package exportgate

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the gate state for one owner.
type State string

const (
	StateLocked     State = "locked"
	StateConfirming State = "confirming"
	StateUnlocked   State = "unlocked"
)

// Kind identifies an export action.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDocx Kind = "docx"
)

// ErrUnknownKind is returned for export kinds other than pdf and docx.
var ErrUnknownKind = errors.New("unknown export kind")

// ParseKind validates raw as an export kind.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindPDF, KindDocx:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownKind)
	}
}

// Decision reports the gate outcome for a request.
type Decision struct {
	Allowed bool  `json:"allowed"`
	State   State `json:"state"`
	Pending Kind  `json:"pending,omitempty"`
}

// UnlockStore persists the unlock flag.
type UnlockStore interface {
	Unlocked(ctx context.Context, ownerID string) (bool, error)
	SetUnlocked(ctx context.Context, ownerID string) error
}

// Gate tracks pending exports in memory and the unlock flag in store.
type Gate struct {
	store   UnlockStore
	mu      sync.Mutex
	pending map[string]Kind
}

// New constructs a Gate.
func New(store UnlockStore) *Gate {
	return &Gate{store: store, pending: make(map[string]Kind)}
}

// Status reports the current state without changing it.
func (g *Gate) Status(ctx context.Context, ownerID string) (Decision, error) {
	unlocked, err := g.store.Unlocked(ctx, ownerID)
	if err != nil {
		return Decision{}, err
	}
	if unlocked {
		return Decision{Allowed: true, State: StateUnlocked}, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if kind, ok := g.pending[ownerID]; ok {
		return Decision{State: StateConfirming, Pending: kind}, nil
	}
	return Decision{State: StateLocked}, nil
}

// Request asks to run an export. When locked, the request becomes pending and
// Allowed is false; a later request replaces the pending kind.
func (g *Gate) Request(ctx context.Context, ownerID string, kind Kind) (Decision, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Decision{}, err
	}
	unlocked, err := g.store.Unlocked(ctx, ownerID)
	if err != nil {
		return Decision{}, err
	}
	if unlocked {
		return Decision{Allowed: true, State: StateUnlocked}, nil
	}
	g.mu.Lock()
	g.pending[ownerID] = kind
	g.mu.Unlock()
	return Decision{State: StateConfirming, Pending: kind}, nil
}

// Cancel dismisses the confirmation and forgets the pending export.
func (g *Gate) Cancel(ctx context.Context, ownerID string) (Decision, error) {
	g.mu.Lock()
	delete(g.pending, ownerID)
	g.mu.Unlock()
	return g.Status(ctx, ownerID)
}

// Confirm persists the unlock and returns the pending export, if any, so the
// caller can run it. The pending entry is cleared only once the flag is saved.
func (g *Gate) Confirm(ctx context.Context, ownerID string) (Kind, error) {
	if err := g.store.SetUnlocked(ctx, ownerID); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	kind := g.pending[ownerID]
	delete(g.pending, ownerID)
	return kind, nil
}
