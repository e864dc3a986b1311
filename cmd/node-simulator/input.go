package main

import (
	"context"
	"errors"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/render"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/upgrade"
)

// errNothingAffordable is returned when no upgrade in a category can be bought
var errNothingAffordable = errors.New("nothing affordable")

// categoryKeys maps number keys to the upgrade category they buy from
var categoryKeys = map[rune]upgrade.Category{
	'1': upgrade.CategoryDamage,
	'2': upgrade.CategoryCrit,
	'3': upgrade.CategoryEconomy,
	'4': upgrade.CategorySpawn,
	'5': upgrade.CategoryArea,
	'6': upgrade.CategorySpeed,
	'7': upgrade.CategoryCollection,
	'8': upgrade.CategoryBoss,
	'9': upgrade.CategoryAnomaly,
	'0': upgrade.CategoryCrypto,
}

// muter is the part of the sound manager the controls toggle
type muter interface {
	SetMuted(bool)
}

// controls translates terminal events into session operations
type controls struct {
	sess     *game.Session
	renderer *render.TerminalRenderer
	field    render.Size
	audio    muter
	muted    bool
}

// handle applies ev and reports whether the player asked to quit
func (c *controls) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.renderer.Resize()
	case *tcell.EventMouse:
		x, y := ev.Position()
		fx, fy, inside := c.renderer.ToField(c.field, x, y)
		c.sess.SetPointer(fx, fy, inside)
	case *tcell.EventKey:
		return c.key(ctx, ev)
	}
	return false
}

func (c *controls) key(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	if cat, ok := categoryKeys[r]; ok {
		if err := buyCategory(c.sess, cat); err != nil {
			log.Printf("[input] buy %s: %v", cat, err)
		}
		return false
	}

	var err error
	switch r {
	case 'q':
		return true
	case ' ':
		log.Printf("[input] skill check %s", c.sess.ResolveSkillCheck())
	case 'c':
		err = c.sess.Continue()
	case 'r':
		err = c.sess.Replay()
	case 'a':
		for _, res := range c.sess.ClaimAllAchievements() {
			log.Printf("[input] claimed %s", res.Goal.ID)
		}
	case 's':
		_, err = c.sess.Save(ctx)
	case 'm':
		if c.audio != nil {
			c.muted = !c.muted
			c.audio.SetMuted(c.muted)
		}
	}
	if err != nil {
		log.Printf("[input] %q: %v", r, err)
	}
	return false
}

// pumpEvents forwards polled events until poll returns nil or done closes
// events is closed when poll runs dry
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// buyCategory purchases the first upgrade in cat that passes every check
func buyCategory(sess *game.Session, cat upgrade.Category) error {
	p := sess.Snapshot()
	cl := sess.Catalog()
	for _, u := range cl.ByCategory(cat) {
		if _, _, err := cl.CanPurchase(u.ID, &p); err == nil {
			return sess.AttemptPurchase(u.ID)
		}
	}
	return errNothingAffordable
}
