package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/state"
)

// Palette
var (
	RgbBackground = tcell.NewRGBColor(12, 14, 24)
	RgbFieldEdge  = tcell.NewRGBColor(60, 64, 90)
	RgbHUDText    = tcell.NewRGBColor(230, 230, 240)
	RgbHUDDim     = tcell.NewRGBColor(140, 140, 160)

	RgbNodeRed   = tcell.NewRGBColor(255, 80, 80)
	RgbNodeBlue  = tcell.NewRGBColor(100, 150, 255)
	RgbNodeGreen = tcell.NewRGBColor(50, 255, 50)
	RgbNodeGold  = tcell.NewRGBColor(255, 215, 0)

	RgbToken   = tcell.NewRGBColor(255, 255, 160)
	RgbBoss    = tcell.NewRGBColor(200, 60, 220)
	RgbBossBar = tcell.NewRGBColor(255, 40, 120)
	RgbPointer = tcell.NewRGBColor(255, 165, 0)

	RgbCheckTrack  = tcell.NewRGBColor(60, 60, 70)
	RgbCheckWindow = tcell.NewRGBColor(0, 200, 0)
	RgbCheckMarker = tcell.NewRGBColor(255, 255, 255)
)

// NodeColor returns the fill color of a node type
func NodeColor(t state.NodeType) tcell.Color {
	switch t {
	case state.NodeBlue:
		return RgbNodeBlue
	case state.NodeGreen:
		return RgbNodeGreen
	case state.NodeGold:
		return RgbNodeGold
	default:
		return RgbNodeRed
	}
}

// dim scales a color toward black by f in [0,1]
func dim(c tcell.Color, f float64) tcell.Color {
	r, g, b := c.RGB()
	scale := func(v int32) int32 {
		return int32(float64(v) * max(0, min(1, f)))
	}
	return tcell.NewRGBColor(scale(r), scale(g), scale(b))
}
