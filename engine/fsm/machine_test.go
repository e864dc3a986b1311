package fsm

import (
	"testing"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
)

const (
	stateIdle StateID = iota + 2
	stateRun
	stateDone
)

type ctx struct {
	log   []string
	ready bool
	ticks int
}

func record(name string) ActionFunc[*ctx] {
	return func(c *ctx, _ any) { c.log = append(c.log, name) }
}

func build(t *testing.T) *Machine[*ctx] {
	t.Helper()
	m := NewMachine[*ctx]()
	m.AddState(StateRoot, "root", StateNone)
	m.AddState(stateIdle, "idle", StateRoot)
	m.AddState(stateRun, "run", StateRoot)
	m.AddState(stateDone, "done", StateRoot)

	m.OnEnter(stateIdle, record("enter idle"), nil)
	m.OnExit(stateIdle, record("exit idle"), nil)
	m.OnEnter(stateRun, record("enter run"), nil)
	m.OnExit(stateRun, record("exit run"), nil)
	m.OnUpdate(stateRun, func(c *ctx, _ any) { c.ticks++ }, nil)
	m.OnEnter(stateDone, record("enter done"), nil)

	m.AddTransition(stateIdle, Transition[*ctx]{TargetID: stateRun, Event: event.EventLevelStart})
	m.AddTransition(stateRun, Transition[*ctx]{TargetID: stateDone, Guard: func(c *ctx) bool { return c.ready }})
	// Restart from anywhere
	m.AddTransition(StateRoot, Transition[*ctx]{TargetID: stateRun, Event: event.EventGameReset})

	if err := m.CompilePaths(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTickTransitionFiresOnce(t *testing.T) {
	m := build(t)
	c := &ctx{}
	if err := m.Init(c, stateIdle); err != nil {
		t.Fatal(err)
	}
	if !m.HandleEvent(c, event.EventLevelStart) {
		t.Fatal("start event not handled")
	}

	m.Update(c, time.Second)
	if m.Current() != stateRun || c.ticks != 1 {
		t.Fatalf("state %s ticks %d", m.StateName(), c.ticks)
	}

	c.ready = true
	m.Update(c, time.Second)
	m.Update(c, time.Second)
	if m.Current() != stateDone {
		t.Fatalf("state %s", m.StateName())
	}

	want := []string{"enter idle", "exit idle", "enter run", "exit run", "enter done"}
	if len(c.log) != len(want) {
		t.Fatalf("log %v", c.log)
	}
	for i := range want {
		if c.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, c.log[i], want[i])
		}
	}
}

func TestEventBubblesToRoot(t *testing.T) {
	m := build(t)
	c := &ctx{}
	_ = m.Init(c, stateDone)
	if !m.HandleEvent(c, event.EventGameReset) || m.Current() != stateRun {
		t.Fatalf("root transition not taken, state %s", m.StateName())
	}
}

func TestSelfTransitionReenters(t *testing.T) {
	m := build(t)
	c := &ctx{}
	_ = m.Init(c, stateRun)
	c.log = nil

	m.HandleEvent(c, event.EventGameReset)
	if len(c.log) != 2 || c.log[0] != "exit run" || c.log[1] != "enter run" {
		t.Errorf("self transition log %v", c.log)
	}
}

func TestUnhandledEvent(t *testing.T) {
	m := build(t)
	c := &ctx{}
	_ = m.Init(c, stateIdle)
	if m.HandleEvent(c, event.EventBossDefeated) {
		t.Error("unrelated event handled")
	}
	if m.HandleEvent(c, event.EventNone) {
		t.Error("tick event accepted as external event")
	}
}

func TestForceStateAndReset(t *testing.T) {
	m := build(t)
	c := &ctx{}
	_ = m.Init(c, stateIdle)

	if err := m.ForceState(c, stateDone); err != nil || m.Current() != stateDone {
		t.Fatalf("force: %v, state %s", err, m.StateName())
	}
	if err := m.ForceState(c, 99); err == nil {
		t.Error("unknown state accepted")
	}
	if err := m.Reset(c); err != nil || m.Current() != stateIdle {
		t.Errorf("reset: %v, state %s", err, m.StateName())
	}
}

func TestMissingParent(t *testing.T) {
	m := NewMachine[*ctx]()
	m.AddState(5, "orphan", 42)
	if err := m.CompilePaths(); err == nil {
		t.Error("missing parent not reported")
	}
}
