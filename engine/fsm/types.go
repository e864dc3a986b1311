// Package fsm is a small hierarchical state machine driven by ticks and events.
package fsm

import (
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
)

// StateID identifies a node in the state graph
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// GuardFunc decides whether a transition may fire
type GuardFunc[T any] func(ctx T) bool

// ActionFunc runs on enter, update or exit
type ActionFunc[T any] func(ctx T, args any)

// Action pairs a function with static arguments
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

// Transition moves to TargetID when Event fires and Guard passes
// Event 0 (event.EventNone) is evaluated every tick
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T]
}

// Node is one state in the graph
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	// Path from root to this node, filled by CompilePaths
	Path []StateID

	OnEnter     []Action[T]
	OnUpdate    []Action[T]
	OnExit      []Action[T]
	Transitions []Transition[T]
}

// Machine is the runtime state machine
type Machine[T any] struct {
	nodes          map[StateID]*Node[T]
	InitialStateID StateID

	activeStateID StateID
	activePath    []StateID
	timeInState   time.Duration
	compiled      bool
}
