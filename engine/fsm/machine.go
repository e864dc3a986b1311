package fsm

import (
	"fmt"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter from root down to it
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	if !m.compiled {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	m.InitialStateID = initial
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	for _, id := range node.Path {
		m.runActions(ctx, m.nodes[id].OnEnter)
	}
	m.setActive(node)
	return nil
}

// Update advances the FSM by dt, running OnUpdate for the leaf then
// evaluating tick transitions (Event == 0) from leaf to root
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	m.runActions(ctx, leaf.OnUpdate)
	m.fire(ctx, event.EventNone)
}

// HandleEvent routes an external event, bubbling from leaf to root
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == event.EventNone {
		return false
	}
	return m.fire(ctx, eventType)
}

func (m *Machine[T]) fire(ctx T, eventType event.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change; a self transition re-runs exit and enter of the leaf
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	currentPath := m.activePath
	targetPath := targetNode.Path

	// Find LCA; a self transition leaves the leaf outside it
	lcaIndex := -1
	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	if targetID == m.activeStateID {
		lcaIndex = len(targetPath) - 2
	}

	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		m.runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		m.runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}

	m.setActive(targetNode)
}

// ForceState jumps to id regardless of transitions, running exit and enter actions
// Used when restoring a saved phase
func (m *Machine[T]) ForceState(ctx T, id StateID) error {
	if _, ok := m.nodes[id]; !ok {
		return fmt.Errorf("state ID %d not found", id)
	}
	if m.activeStateID == StateNone {
		return m.Init(ctx, id)
	}
	m.transition(ctx, id)
	return nil
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		m.runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	return m.Init(ctx, m.InitialStateID)
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// StateName returns the active state's name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

func (m *Machine[T]) setActive(node *Node[T]) {
	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
}

func (m *Machine[T]) runActions(ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}
