package session

import (
	"context"
	"errors"
)

// DefaultCase is the case the data browser shows before any selection.
const DefaultCase = "案例1"

// ErrEmptyID is returned when a store is asked for a session without an ID.
var ErrEmptyID = errors.New("session id is empty")

// State is the per-visitor UI state of the demo.
type State struct {
	ModelLoaded        bool   `json:"model_loaded"`
	TrainingProgress   int    `json:"training_progress"`
	CurrentCase        string `json:"current_case"`
	OptimizationResult string `json:"optimization_result,omitempty"`
}

// NewState returns the state a fresh session starts with.
func NewState() State {
	return State{CurrentCase: DefaultCase}
}

// Store keeps session state between requests.
//
// Update applies fn to the stored state and writes the result back as one
// atomic step. Actions change only the fields they own through it.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Update(ctx context.Context, id string, fn func(*State)) (State, error)
	Backend() string
	Close() error
}
