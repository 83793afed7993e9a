// Package editor applies edit commands to the résumé aggregate.
//
// Apply is the single mutation entry point: it takes the current state and a
// command and returns the next state. The input value is never modified, so a
// rejected command leaves the caller's state exactly as it was.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"resume-builder/resume/model"
)

var (
	// ErrUnknownEntry indicates no entry exists with the given id.
	ErrUnknownEntry = errors.New("unknown entry")

	// ErrUnknownField indicates the field name is not editable.
	ErrUnknownField = errors.New("unknown field")

	// ErrIndexOutOfRange indicates a highlight index outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidValue indicates a value outside its enumeration.
	ErrInvalidValue = errors.New("invalid value")
)

// IDSource hands out identifiers for new list entries.
type IDSource interface {
	NewID() string
}

// UUIDSource generates random UUIDs; identifiers are never reused.
type UUIDSource struct{}

// NewID returns a fresh UUID string.
func (UUIDSource) NewID() string { return uuid.NewString() }

// SequenceSource yields prefix-1, prefix-2, ... and is intended for tests and demos.
type SequenceSource struct {
	Prefix string
	n      atomic.Int64
}

// NewID returns the next identifier in the sequence.
func (s *SequenceSource) NewID() string {
	return s.Prefix + strconv.FormatInt(s.n.Add(1), 10)
}

// Command is an edit to the aggregate.
type Command interface {
	apply(d *model.ResumeData, ids IDSource) error
}

// Apply returns the state that results from applying cmd to state.
func Apply(state model.ResumeData, cmd Command, ids IDSource) (model.ResumeData, error) {
	if cmd == nil {
		return state, fmt.Errorf("nil command: %w", ErrInvalidValue)
	}
	if ids == nil {
		ids = UUIDSource{}
	}
	next := state.Normalize()
	if err := cmd.apply(&next, ids); err != nil {
		return state, err
	}
	return next, nil
}

// ApplyAll applies commands in order and stops at the first failure.
func ApplyAll(state model.ResumeData, ids IDSource, cmds ...Command) (model.ResumeData, error) {
	cur := state
	for i, cmd := range cmds {
		next, err := Apply(cur, cmd, ids)
		if err != nil {
			return state, fmt.Errorf("command %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}
