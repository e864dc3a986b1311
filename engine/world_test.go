package engine

import (
	"testing"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

type orderSystem struct {
	name     string
	priority int
	log      *[]string
	seen     []event.EventType
}

func (s *orderSystem) Init()            {}
func (s *orderSystem) Name() string     { return s.name }
func (s *orderSystem) Priority() int    { return s.priority }
func (s *orderSystem) Update()          { *s.log = append(*s.log, s.name) }
func (s *orderSystem) HandleEvent(ev event.GameEvent) { s.seen = append(s.seen, ev.Type) }
func (s *orderSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventNodeKilled}
}

func TestStoreSwapRemove(t *testing.T) {
	s := NewStore[int]()
	for e := core.Entity(1); e <= 4; e++ {
		s.SetComponent(e, int(e)*10)
	}
	s.RemoveEntity(2)
	s.RemoveEntity(99)

	if s.CountEntities() != 3 || s.HasEntity(2) {
		t.Fatalf("count %d has2 %v", s.CountEntities(), s.HasEntity(2))
	}
	got := s.GetAllEntities()
	want := []core.Entity{1, 4, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}

	s.RemoveBatch([]core.Entity{1, 3})
	if v, ok := s.GetComponent(4); !ok || v != 40 || s.CountEntities() != 1 {
		t.Errorf("after batch: %v %v count %d", v, ok, s.CountEntities())
	}
}

func TestWorldDestroyAcrossStores(t *testing.T) {
	w := NewWorld(event.NewEventQueue(), nil)
	e := w.CreateEntity()
	w.Components.Node.SetComponent(e, component.NodeComponent{HP: 5})
	w.Components.Kinetic.SetComponent(e, component.KineticComponent{})

	w.DestroyEntity(e)
	if w.Components.Node.HasEntity(e) || w.Components.Kinetic.HasEntity(e) {
		t.Error("entity survived destroy")
	}
	if w.Resources.Field.Width != parameter.DefaultFieldWidth {
		t.Errorf("default field width %v", w.Resources.Field.Width)
	}
}

func TestWorldClearKeepsIDsUnique(t *testing.T) {
	w := NewWorld(event.NewEventQueue(), nil)
	a := w.CreateEntity()
	w.Components.Token.SetComponent(a, component.TokenComponent{Value: 1})
	w.Clear()

	b := w.CreateEntity()
	if b == a {
		t.Error("id reused after clear")
	}
	if w.Components.Token.CountEntities() != 0 {
		t.Error("clear left tokens")
	}
}

func TestSystemsRunByPriority(t *testing.T) {
	q := event.NewEventQueue()
	w := NewWorld(q, nil)
	var log []string
	late := &orderSystem{name: "late", priority: 50, log: &log}
	early := &orderSystem{name: "early", priority: 10, log: &log}
	w.AddSystem(late)
	w.AddSystem(early)
	w.Update()

	if len(log) != 2 || log[0] != "early" || log[1] != "late" {
		t.Errorf("update order %v", log)
	}

	r := NewEventRouter(q)
	r.Register(early)
	w.PushEvent(event.EventNodeKilled, nil)
	w.PushEvent(event.EventNodeSpawned, nil)
	if n := r.DispatchAll(); n != 2 {
		t.Errorf("dispatched %d", n)
	}
	if len(early.seen) != 1 || !r.HasHandlers(event.EventNodeKilled) || r.HandlerCount(event.EventNodeSpawned) != 0 {
		t.Errorf("routing seen=%v", early.seen)
	}
}

func TestDispatchFollowsChainedEvents(t *testing.T) {
	q := event.NewEventQueue()
	w := NewWorld(q, nil)
	r := NewEventRouter(q)
	var got []event.EventType
	r.Register(HandlerFunc{
		Types: []event.EventType{event.EventBossDefeated, event.EventRewardGranted},
		Fn: func(ev event.GameEvent) {
			got = append(got, ev.Type)
			if ev.Type == event.EventBossDefeated {
				w.PushEvent(event.EventRewardGranted, nil)
			}
		},
	})
	w.PushEvent(event.EventBossDefeated, nil)
	r.DispatchAll()

	if len(got) != 2 || got[1] != event.EventRewardGranted {
		t.Errorf("chained dispatch %v", got)
	}
}
