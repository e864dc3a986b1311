package render

import (
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/economy"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/skillcheck"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// Frame is a read-only projection of one simulation tick
// It shares nothing with the world and is safe to hand to another goroutine
type Frame struct {
	Number     int64           `msgpack:"n" json:"n"`
	Field      Size            `msgpack:"field" json:"field"`
	Phase      string          `msgpack:"phase" json:"phase"`
	Pointer    PointerView     `msgpack:"pointer" json:"pointer"`
	Nodes      []NodeView      `msgpack:"nodes" json:"nodes"`
	Tokens     []TokenView     `msgpack:"tokens" json:"tokens"`
	Boss       *BossView       `msgpack:"boss,omitempty" json:"boss,omitempty"`
	HUD        HUD             `msgpack:"hud" json:"hud"`
	SkillCheck skillcheck.View `msgpack:"skillCheck" json:"skillCheck"`
}

// Size in field units
type Size struct {
	W float64 `msgpack:"w" json:"w"`
	H float64 `msgpack:"h" json:"h"`
}

type PointerView struct {
	X      float64 `msgpack:"x" json:"x"`
	Y      float64 `msgpack:"y" json:"y"`
	Size   float64 `msgpack:"size" json:"size"`
	Inside bool    `msgpack:"inside" json:"inside"`
}

// NodeView is a node centered at X,Y
type NodeView struct {
	ID       core.Entity    `msgpack:"id" json:"id"`
	Type     state.NodeType `msgpack:"type" json:"type"`
	X        float64        `msgpack:"x" json:"x"`
	Y        float64        `msgpack:"y" json:"y"`
	Size     float64        `msgpack:"size" json:"size"`
	Rotation float64        `msgpack:"rot" json:"rot"`
	HP       float64        `msgpack:"hp" json:"hp"`
	MaxHP    float64        `msgpack:"maxHP" json:"maxHP"`
}

type TokenView struct {
	X     float64 `msgpack:"x" json:"x"`
	Y     float64 `msgpack:"y" json:"y"`
	Value float64 `msgpack:"v" json:"v"`
}

// BossView is the boss square with its top-left at X,Y
type BossView struct {
	Name     string  `msgpack:"name" json:"name"`
	X        float64 `msgpack:"x" json:"x"`
	Y        float64 `msgpack:"y" json:"y"`
	Size     float64 `msgpack:"size" json:"size"`
	Rotation float64 `msgpack:"rot" json:"rot"`
	HP       float64 `msgpack:"hp" json:"hp"`
	MaxHP    float64 `msgpack:"maxHP" json:"maxHP"`
}

// HUD is the player-facing counters
type HUD struct {
	Bits       float64 `msgpack:"bits" json:"bits"`
	Cryptcoins float64 `msgpack:"cryptcoins" json:"cryptcoins"`
	Prestige   float64 `msgpack:"prestige" json:"prestige"`
	LP         float64 `msgpack:"lp" json:"lp"`
	Level      int     `msgpack:"level" json:"level"`
	LevelXP    float64 `msgpack:"levelXP" json:"levelXP"`
	XPForNext  float64 `msgpack:"xpForNext" json:"xpForNext"`
	Stage      int     `msgpack:"stage" json:"stage"`
	Timer      float64 `msgpack:"timer" json:"timer"`
	Complete   bool    `msgpack:"complete" json:"complete"`
	BossKills  int     `msgpack:"bossKills" json:"bossKills"`
	LabReady   bool    `msgpack:"labReady" json:"labReady"`
}

// Project copies the renderable state out of w
func Project(w *engine.World, phase string, sc skillcheck.View) Frame {
	res := w.Resources
	p := res.Player
	cl := p.CurrentLevel

	f := Frame{
		Number: res.Time.FrameNumber,
		Field:  Size{W: res.Field.Width, H: res.Field.Height},
		Phase:  phase,
		Pointer: PointerView{
			X:      res.Pointer.Pos.X,
			Y:      res.Pointer.Pos.Y,
			Size:   res.Stats.PointerSize,
			Inside: res.Pointer.Inside,
		},
		HUD: HUD{
			Bits:       p.Bits,
			Cryptcoins: p.Cryptcoins,
			Prestige:   p.Prestige,
			LP:         p.LP,
			Level:      p.Level,
			LevelXP:    p.LevelXP,
			XPForNext:  p.XPForNext,
			Stage:      cl.Index,
			Timer:      cl.Timer,
			Complete:   !cl.Active,
			BossKills:  p.BossKills,
			LabReady:   p.LabUnlocked && economy.LabReady(p),
		},
		SkillCheck: sc,
	}

	nodes := w.Components.Node.GetAllEntities()
	f.Nodes = make([]NodeView, 0, len(nodes))
	for _, e := range nodes {
		n, okN := w.Components.Node.GetComponent(e)
		k, okK := w.Components.Kinetic.GetComponent(e)
		if !okN || !okK {
			continue
		}
		f.Nodes = append(f.Nodes, NodeView{
			ID:       e,
			Type:     n.Type,
			X:        k.Pos.X,
			Y:        k.Pos.Y,
			Size:     n.Size,
			Rotation: k.Rotation,
			HP:       n.HP,
			MaxHP:    n.MaxHP,
		})
	}

	tokens := w.Components.Token.GetAllEntities()
	f.Tokens = make([]TokenView, 0, len(tokens))
	for _, e := range tokens {
		t, okT := w.Components.Token.GetComponent(e)
		k, okK := w.Components.Kinetic.GetComponent(e)
		if !okT || !okK {
			continue
		}
		f.Tokens = append(f.Tokens, TokenView{X: k.Pos.X, Y: k.Pos.Y, Value: t.Value})
	}

	if cl.BossActive {
		for _, e := range w.Components.Boss.GetAllEntities() {
			b, okB := w.Components.Boss.GetComponent(e)
			k, okK := w.Components.Kinetic.GetComponent(e)
			if !okB || !okK {
				continue
			}
			f.Boss = &BossView{
				Name:     b.Name,
				X:        k.Pos.X,
				Y:        k.Pos.Y,
				Size:     b.Size,
				Rotation: k.Rotation,
				HP:       cl.BossHP,
				MaxHP:    cl.BossMaxHP,
			}
			break
		}
	}
	return f
}
