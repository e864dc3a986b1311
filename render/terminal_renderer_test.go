package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/component"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/skillcheck"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/vmath"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := range width {
		mainc, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(mainc)
	}
	return b.String()
}

func TestRenderFrameDrawsEntities(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen)

	f := Frame{
		Field: Size{W: 800, H: 210},
		Nodes: []NodeView{{Type: state.NodeGreen, X: 400, Y: 105, Size: 40, HP: 10, MaxHP: 10}},
		Tokens: []TokenView{{X: 105, Y: 15, Value: 5}},
		Pointer: PointerView{X: 705, Y: 195, Size: 32, Inside: true},
		HUD:     HUD{Bits: 1500, Level: 3, Stage: 2, Timer: 41.2},
	}
	r.RenderFrame(f)

	if hud := rowText(screen, 0, 80); !strings.Contains(hud, "Bits 1.5K") || !strings.Contains(hud, "Stage 2") {
		t.Errorf("hud %q", hud)
	}

	// 80x21 game cells over 800x210: one cell per 10 field units
	mainc, _, style, _ := screen.GetContent(40, 1+10)
	if mainc != '▓' {
		t.Errorf("node cell %q", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != RgbNodeGreen {
		t.Errorf("node color %v", fg)
	}
	if mainc, _, _, _ := screen.GetContent(10, 1+1); mainc != '•' {
		t.Errorf("token cell %q", mainc)
	}
	if mainc, _, _, _ := screen.GetContent(70, 1+19); mainc != '+' {
		t.Errorf("pointer cell %q", mainc)
	}
	if status := rowText(screen, 22, 80); !strings.Contains(status, "Boss in 42s") {
		t.Errorf("status %q", status)
	}
}

func TestRenderBossAndSkillCheck(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen)

	r.RenderFrame(Frame{
		Field: Size{W: 800, H: 210},
		Boss:  &BossView{Name: "Neon Leviathan", X: 300, Y: 50, Size: 100, HP: 50, MaxHP: 200},
		SkillCheck: skillcheck.View{
			Active: true, Label: "Void Lance", Difficulty: "hard",
			Duration: 3, Marker: 0.5, WindowStart: 0.4, WindowEnd: 0.6,
		},
	})

	if mainc, _, _, _ := screen.GetContent(35, 1+10); mainc != '█' {
		t.Errorf("boss cell %q", mainc)
	}
	if status := rowText(screen, 22, 80); !strings.Contains(status, "Neon Leviathan  HP 50 / 200") {
		t.Errorf("status %q", status)
	}
	check := rowText(screen, 23, 80)
	if !strings.Contains(check, "Void Lance [hard]") || !strings.ContainsRune(check, '┃') || !strings.ContainsRune(check, '═') {
		t.Errorf("skill check row %q", check)
	}
}

func TestToFieldRoundTrip(t *testing.T) {
	screen := newScreen(t)
	r := NewTerminalRenderer(screen)
	field := Size{W: 800, H: 210}

	fx, fy, inside := r.ToField(field, 40, 11)
	if !inside || fx != 405 || fy != 105 {
		t.Fatalf("ToField = %v,%v,%v", fx, fy, inside)
	}
	if x, y := r.toCell(field, fx, fy); x != 40 || y != 11 {
		t.Errorf("toCell = %d,%d", x, y)
	}
	if _, _, inside := r.ToField(field, 10, 0); inside {
		t.Error("hud row reported inside the field")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2_000_000, "2M"},
		{1_234_567_890, "1.23B"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProjectCopiesWorld(t *testing.T) {
	w := engine.NewWorld(event.NewEventQueue(), nil)
	p := w.Resources.Player
	p.Bits = 42
	p.CurrentLevel = state.CurrentLevel{Index: 2, Active: true, BossActive: true, BossHP: 80, BossMaxHP: 100}

	n := w.CreateEntity()
	w.Components.Node.SetComponent(n, component.NodeComponent{Type: state.NodeGold, HP: 3, MaxHP: 9, Size: 82})
	w.Components.Kinetic.SetComponent(n, component.KineticComponent{Pos: vmath.V2(10, 20), Rotation: 45})
	b := w.CreateEntity()
	w.Components.Boss.SetComponent(b, component.BossComponent{Name: "Entropy Weaver", Size: 144})
	w.Components.Kinetic.SetComponent(b, component.KineticComponent{Pos: vmath.V2(100, 100)})

	f := Project(w, "BossActive", skillcheck.View{})
	if len(f.Nodes) != 1 || f.Nodes[0].Type != state.NodeGold || f.Nodes[0].Rotation != 45 {
		t.Fatalf("nodes %+v", f.Nodes)
	}
	if f.Boss == nil || f.Boss.HP != 80 || f.Boss.Name != "Entropy Weaver" {
		t.Fatalf("boss %+v", f.Boss)
	}
	if f.HUD.Bits != 42 || f.HUD.Stage != 2 || f.Phase != "BossActive" {
		t.Errorf("hud %+v phase %s", f.HUD, f.Phase)
	}

	// The frame does not alias the arena
	f.Nodes[0].HP = 0
	if got, _ := w.Components.Node.GetComponent(n); got.HP != 3 {
		t.Error("frame aliases node storage")
	}
}
