// Package skillcheck is the timed minigame that may follow a purchase: a
// marker bounces across [0,1] and the player must resolve while it sits
// inside the target window.
package skillcheck

import (
	"math"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/reward"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

// Difficulty is one row of the difficulty table
type Difficulty = parameter.SkillCheckDifficulty

// Chance returns the trigger probability after buying an upgrade of cat
func Chance(cat upgrade.Category) float64 {
	switch cat {
	case upgrade.CategoryAnomaly:
		return parameter.SkillCheckBaseChanceFloat + parameter.SkillCheckAnomalyBonusFloat
	case upgrade.CategoryBoss:
		return parameter.SkillCheckBaseChanceFloat + parameter.SkillCheckBossBonusFloat
	}
	return parameter.SkillCheckBaseChanceFloat
}

// DifficultyFor maps an upgrade category to its difficulty
func DifficultyFor(cat upgrade.Category) Difficulty {
	switch cat {
	case upgrade.CategoryDamage:
		return parameter.SkillCheckEasy
	case upgrade.CategoryAnomaly:
		return parameter.SkillCheckHard
	}
	return parameter.SkillCheckNormal
}

// RewardFor is the success payout for a check triggered by a purchase of cost
func RewardFor(d Difficulty, cost float64) reward.Grant {
	return reward.Grant{
		Bits: math.Ceil(cost * d.BitsShare),
		XP:   math.Ceil(parameter.SkillCheckRewardXPBaseFloat * d.XPFactor),
	}
}

// Speed is the marker speed at a player level, capped
func Speed(d Difficulty, level int) float64 {
	above := float64(max(1, level) - 1)
	return d.BaseSpeed * (1 + math.Min(parameter.SkillCheckSpeedCapFloat, above*parameter.SkillCheckSpeedPerLevelFloat))
}

// WindowWidth shrinks with player level down to the difficulty's floor
func WindowWidth(d Difficulty, level int) float64 {
	above := float64(max(1, level) - 1)
	return math.Max(d.MinWindow, d.Window-above*parameter.SkillCheckWindowShrinkFloat)
}

// Result is how a check ended
type Result uint8

const (
	ResultNone Result = iota
	ResultSuccess
	ResultFailure
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	}
	return "none"
}

// View is a read-only snapshot of the active check for rendering
type View struct {
	Active      bool    `json:"active"`
	Difficulty  string  `json:"difficulty,omitempty"`
	Label       string  `json:"label,omitempty"`
	Elapsed     float64 `json:"elapsed"`
	Duration    float64 `json:"duration"`
	Marker      float64 `json:"marker"`
	WindowStart float64 `json:"windowStart"`
	WindowEnd   float64 `json:"windowEnd"`
}

// Minigame holds at most one active check
type Minigame struct {
	active      bool
	label       string
	difficulty  Difficulty
	elapsed     float64
	duration    float64
	marker      float64
	direction   float64
	speed       float64
	windowStart float64
	windowEnd   float64

	onSuccess func()
	onFailure func()
}

// Active reports whether a check is running
func (m *Minigame) Active() bool { return m.active }

// Start begins a check unless one is already running
// The callbacks are captured now and run exactly once when the check ends
func (m *Minigame) Start(label string, d Difficulty, level int, r core.Rand, onSuccess, onFailure func()) bool {
	if m.active {
		return false
	}
	width := WindowWidth(d, level)

	*m = Minigame{
		active:      true,
		label:       label,
		difficulty:  d,
		duration:    d.Duration,
		direction:   1,
		speed:       Speed(d, level),
		windowStart: r.Float64() * (1 - width),
		onSuccess:   onSuccess,
		onFailure:   onFailure,
	}
	m.windowEnd = m.windowStart + width
	return true
}

// Update advances the marker; a check that outlives its duration fails
func (m *Minigame) Update(dt float64) Result {
	if !m.active || dt <= 0 {
		return ResultNone
	}
	m.elapsed += dt
	m.marker, m.direction = bounce(m.marker+m.direction*m.speed*dt, m.direction)

	if m.elapsed >= m.duration {
		m.finish(false)
		return ResultFailure
	}
	return ResultNone
}

// Resolve is the player's action; success iff the marker is inside [start, end)
func (m *Minigame) Resolve() Result {
	if !m.active {
		return ResultNone
	}
	ok := m.marker >= m.windowStart && m.marker < m.windowEnd
	m.finish(ok)
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// Cancel drops the active check without running either callback
func (m *Minigame) Cancel() {
	*m = Minigame{}
}

func (m *Minigame) finish(success bool) {
	cb := m.onFailure
	if success {
		cb = m.onSuccess
	}
	*m = Minigame{}
	if cb != nil {
		cb()
	}
}

// View returns the render snapshot
func (m *Minigame) View() View {
	if !m.active {
		return View{}
	}
	return View{
		Active:      true,
		Difficulty:  m.difficulty.Name,
		Label:       m.label,
		Elapsed:     m.elapsed,
		Duration:    m.duration,
		Marker:      m.marker,
		WindowStart: m.windowStart,
		WindowEnd:   m.windowEnd,
	}
}

// bounce reflects a position back into [0,1], flipping direction per reflection
func bounce(pos, dir float64) (float64, float64) {
	for pos < 0 || pos > 1 {
		if pos > 1 {
			pos = 2 - pos
		} else {
			pos = -pos
		}
		dir = -dir
	}
	return pos, dir
}
