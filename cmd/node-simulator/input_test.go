package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/render"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

func newControls(t *testing.T) *controls {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return &controls{
		sess:     game.New(game.Config{Seed: 1, FieldWidth: 800, FieldHeight: 210}),
		renderer: render.NewTerminalRenderer(screen),
		field:    render.Size{W: 800, H: 210},
	}
}

type fakeMuter struct{ muted bool }

func (f *fakeMuter) SetMuted(m bool) { f.muted = m }

func categoryLevels(sess *game.Session, cat upgrade.Category) int {
	p := sess.Snapshot()
	n := 0
	for _, u := range sess.Catalog().ByCategory(cat) {
		n += p.Upgrades[u.ID]
	}
	return n
}

func TestBuyCategory(t *testing.T) {
	c := newControls(t)
	if err := buyCategory(c.sess, upgrade.CategoryDamage); !errors.Is(err, errNothingAffordable) {
		t.Fatalf("broke player bought: %v", err)
	}

	p := state.NewPlayer()
	p.Bits = 1e6
	doc, err := state.Marshal(&p)
	if err != nil {
		t.Fatal(err)
	}
	c.sess.Load(doc)

	if err := buyCategory(c.sess, upgrade.CategoryDamage); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if got := categoryLevels(c.sess, upgrade.CategoryDamage); got != 1 {
		t.Errorf("damage levels = %d, want 1", got)
	}
	if c.sess.Snapshot().Bits >= 1e6 {
		t.Error("purchase was free")
	}
}

func TestControlsQuitKeys(t *testing.T) {
	c := newControls(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"continue", tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), false},
		{"resolve", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), false},
		{"buy", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.handle(ctx, tt.ev); got != tt.quit {
				t.Errorf("quit = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestControlsMouseMovesPointer(t *testing.T) {
	c := newControls(t)
	c.handle(context.Background(), tcell.NewEventMouse(40, 11, tcell.ButtonNone, tcell.ModNone))

	ptr := c.sess.Frame().Pointer
	if !ptr.Inside || ptr.X != 405 || ptr.Y != 105 {
		t.Errorf("pointer %+v", ptr)
	}

	// HUD row is outside the field
	c.handle(context.Background(), tcell.NewEventMouse(10, 0, tcell.ButtonNone, tcell.ModNone))
	if c.sess.Frame().Pointer.Inside {
		t.Error("pointer inside after leaving the field")
	}
}

func TestControlsToggleMute(t *testing.T) {
	c := newControls(t)
	m := &fakeMuter{}
	c.audio = m

	key := tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone)
	c.handle(context.Background(), key)
	if !m.muted {
		t.Error("first press did not mute")
	}
	c.handle(context.Background(), key)
	if m.muted {
		t.Error("second press did not unmute")
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	exited := make(chan struct{})
	poll := func() tcell.Event { return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone) }

	go func() {
		pumpEvents(poll, events, done)
		close(exited)
	}()
	<-events
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("pump blocked on an abandoned channel")
	}
}

func TestPumpEventsClosesWhenPollEnds(t *testing.T) {
	events := make(chan tcell.Event, 1)
	pumpEvents(func() tcell.Event { return nil }, events, make(chan struct{}))
	if _, ok := <-events; ok {
		t.Error("events left open")
	}
}
