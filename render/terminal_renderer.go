package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	hudRows    = 1
	statusRows = 2
)

// TerminalRenderer draws frames on a tcell screen
// The field is scaled onto the cells between the hud line and the status rows
type TerminalRenderer struct {
	screen     tcell.Screen
	width      int
	height     int
	gameY      int
	gameHeight int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen dimensions
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.gameY = hudRows
	r.gameHeight = max(1, r.height-hudRows-statusRows)
}

// ToField maps a screen cell to field coordinates
// inside is false for cells outside the play area
func (r *TerminalRenderer) ToField(field Size, x, y int) (fx, fy float64, inside bool) {
	if r.width <= 0 {
		return 0, 0, false
	}
	gy := y - r.gameY
	inside = x >= 0 && x < r.width && gy >= 0 && gy < r.gameHeight
	fx = (float64(x) + 0.5) * field.W / float64(r.width)
	fy = (float64(gy) + 0.5) * field.H / float64(r.gameHeight)
	return fx, fy, inside
}

// toCell maps field coordinates to a screen cell
func (r *TerminalRenderer) toCell(field Size, fx, fy float64) (int, int) {
	if field.W <= 0 || field.H <= 0 {
		return 0, r.gameY
	}
	x := int(math.Floor(fx / field.W * float64(r.width)))
	y := int(math.Floor(fy/field.H*float64(r.gameHeight))) + r.gameY
	return x, y
}

// RenderFrame draws the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHUDText)
	r.screen.Fill(' ', defaultStyle)

	r.drawHUD(f, defaultStyle)
	for _, t := range f.Tokens {
		r.drawToken(f.Field, t, defaultStyle)
	}
	for _, n := range f.Nodes {
		r.drawNode(f.Field, n, defaultStyle)
	}
	if f.Boss != nil {
		r.drawBoss(f.Field, *f.Boss, defaultStyle)
	}
	if f.Pointer.Inside {
		r.drawPointer(f, defaultStyle)
	}
	r.drawStatus(f, defaultStyle)
	if f.HUD.Complete {
		r.drawComplete(defaultStyle)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawHUD(f Frame, style tcell.Style) {
	h := f.HUD
	line := fmt.Sprintf(" Bits %s  CC %.1f  PR %s  LP %.0f  Lv %d (%.0f/%.0f)  Stage %d  Kills %d",
		FormatNumber(h.Bits), h.Cryptcoins, FormatNumber(h.Prestige), h.LP,
		h.Level, h.LevelXP, h.XPForNext, h.Stage, h.BossKills)
	if h.LabReady {
		line += "  LAB READY"
	}
	r.drawText(0, 0, line, style.Foreground(RgbHUDText))
}

// fillRect paints the cells covered by a field-space square
func (r *TerminalRenderer) fillRect(field Size, minX, minY, size float64, ch rune, style tcell.Style) {
	x0, y0 := r.toCell(field, minX, minY)
	x1, y1 := r.toCell(field, minX+size, minY+size)
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for y := max(y0, r.gameY); y < min(y1, r.gameY+r.gameHeight); y++ {
		for x := max(x0, 0); x < min(x1, r.width); x++ {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawNode(field Size, n NodeView, style tcell.Style) {
	health := 1.0
	if n.MaxHP > 0 {
		health = n.HP / n.MaxHP
	}
	fg := dim(NodeColor(n.Type), 0.4+0.6*health)
	r.fillRect(field, n.X-n.Size/2, n.Y-n.Size/2, n.Size, '▓', style.Foreground(fg))
}

func (r *TerminalRenderer) drawToken(field Size, t TokenView, style tcell.Style) {
	x, y := r.toCell(field, t.X, t.Y)
	if r.inGame(x, y) {
		r.screen.SetContent(x, y, '•', nil, style.Foreground(RgbToken))
	}
}

func (r *TerminalRenderer) drawBoss(field Size, b BossView, style tcell.Style) {
	r.fillRect(field, b.X, b.Y, b.Size, '█', style.Foreground(RgbBoss))
	x, y := r.toCell(field, b.X, b.Y)
	if y > r.gameY {
		y--
	}
	r.drawText(max(0, x), y, b.Name, style.Foreground(RgbBoss).Bold(true))
}

func (r *TerminalRenderer) drawPointer(f Frame, style tcell.Style) {
	p := f.Pointer
	x, y := r.toCell(f.Field, p.X, p.Y)
	if r.inGame(x, y) {
		r.screen.SetContent(x, y, '+', nil, style.Foreground(RgbPointer).Bold(true))
	}
}

func (r *TerminalRenderer) drawStatus(f Frame, style tcell.Style) {
	y := r.gameY + r.gameHeight
	var line string
	switch {
	case f.Boss != nil:
		line = fmt.Sprintf(" %s  HP %s / %s", f.Boss.Name, FormatNumber(f.Boss.HP), FormatNumber(f.Boss.MaxHP))
	case f.HUD.Complete:
		line = " Level complete"
	default:
		line = fmt.Sprintf(" Boss in %.0fs", math.Ceil(f.HUD.Timer))
	}
	r.drawText(0, y, line, style.Foreground(RgbHUDDim))

	if f.Boss != nil && f.Boss.MaxHP > 0 {
		r.drawBar(len(line)+2, y, r.width-len(line)-4, f.Boss.HP/f.Boss.MaxHP, style.Foreground(RgbBossBar))
	}
	if f.SkillCheck.Active {
		r.drawSkillCheck(f, y+1, style)
	}
}

// drawSkillCheck draws the track with its window and marker
func (r *TerminalRenderer) drawSkillCheck(f Frame, y int, style tcell.Style) {
	sc := f.SkillCheck
	label := fmt.Sprintf(" %s [%s] %.1fs ", sc.Label, sc.Difficulty, math.Max(0, sc.Duration-sc.Elapsed))
	r.drawText(0, y, label, style.Foreground(RgbHUDText))

	x0 := len(label)
	w := r.width - x0 - 1
	if w < 3 {
		return
	}
	ws := x0 + int(sc.WindowStart*float64(w))
	we := x0 + int(math.Ceil(sc.WindowEnd*float64(w)))
	mx := x0 + min(w-1, int(sc.Marker*float64(w)))
	for x := x0; x < x0+w; x++ {
		ch, fg := '─', RgbCheckTrack
		if x >= ws && x < we {
			ch, fg = '═', RgbCheckWindow
		}
		if x == mx {
			ch, fg = '┃', RgbCheckMarker
		}
		r.screen.SetContent(x, y, ch, nil, style.Foreground(fg))
	}
}

func (r *TerminalRenderer) drawComplete(style tcell.Style) {
	msg := "BOSS DEFEATED  [c] continue  [r] replay"
	x := max(0, (r.width-len(msg))/2)
	y := r.gameY + r.gameHeight/2
	r.drawText(x, y, msg, style.Foreground(RgbHUDText).Bold(true))
}

func (r *TerminalRenderer) drawBar(x, y, w int, frac float64, style tcell.Style) {
	if w <= 0 {
		return
	}
	filled := int(math.Round(max(0, min(1, frac)) * float64(w)))
	for i := range w {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= r.width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *TerminalRenderer) inGame(x, y int) bool {
	return x >= 0 && x < r.width && y >= r.gameY && y < r.gameY+r.gameHeight
}

// FormatNumber shortens large values with a metric suffix
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	suffixes := []string{"", "K", "M", "B", "T", "Qa", "Qi"}
	i := 0
	for math.Abs(v) >= 1000 && i < len(suffixes)-1 {
		v /= 1000
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f", v)
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + suffixes[i]
}
