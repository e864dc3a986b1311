package network

import (
	"context"
	"log"
	"time"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/engine"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

// noticeEvents are forwarded to the client as they happen
var noticeEvents = []event.EventType{
	event.EventUpgradePurchased,
	event.EventUpgradeReverted,
	event.EventRewardGranted,
	event.EventLevelUp,
	event.EventLevelStarted,
	event.EventBossSpawned,
	event.EventBossDefeated,
	event.EventProgressCheck,
	event.EventSkillCheckStarted,
	event.EventSkillCheckResolved,
	event.EventLabBreach,
	event.EventSaved,
}

// runner owns one session for the lifetime of its connection
// Everything that touches the session runs on the runner's goroutine
type runner struct {
	peer  *Peer
	sess  *game.Session
	saver *storage.Saver
	cfg   *Config
	cmds  chan Command
	clock engine.Clock
}

func newRunner(peer *Peer, sess *game.Session, saver *storage.Saver, cfg *Config) *runner {
	r := &runner{
		peer:  peer,
		sess:  sess,
		saver: saver,
		cfg:   cfg,
		cmds:  make(chan Command, cfg.CommandQueueSize),
		clock: engine.NewTimeProvider(),
	}
	sess.Subscribe(noticeEvents, r.notify)
	return r
}

// enqueue hands a command to the session goroutine
// Called from the peer's read loop; blocks while the queue is full
func (r *runner) enqueue(cmd Command) {
	select {
	case r.cmds <- cmd:
	case <-r.peer.Done():
	}
}

func (r *runner) notify(ev event.GameEvent) {
	r.peer.Send(&Message{Type: MsgEvent, Event: &Notice{Name: ev.Type.String(), Payload: ev.Payload}})
}

// run drives the session until ctx ends or the peer disconnects, then saves
func (r *runner) run(ctx context.Context) {
	defer r.finish()

	loop := engine.NewLoop(func(dt float64) { r.sess.Tick(dt) })
	loop.Step = r.cfg.TickInterval
	loop.Clock = r.clock

	ticks := time.NewTicker(r.cfg.TickInterval)
	defer ticks.Stop()
	frames := time.NewTicker(r.cfg.FrameInterval)
	defer frames.Stop()
	autosave := time.NewTicker(r.cfg.AutosaveInterval)
	defer autosave.Stop()

	loop.Pump()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.peer.Done():
			return
		case cmd := <-r.cmds:
			r.handle(ctx, cmd)
		case <-ticks.C:
			loop.Pump()
		case <-frames.C:
			r.sendFrame()
		case <-autosave.C:
			r.save(ctx)
		}
	}
}

func (r *runner) handle(ctx context.Context, cmd Command) {
	data, err := Apply(ctx, r.sess, cmd)
	res := &Result{OK: err == nil, Data: data}
	if err != nil {
		res.Error = err.Error()
	}
	// Pointer moves are frequent and need no reply
	if cmd.Op == "pointer" && err == nil {
		return
	}
	r.peer.Send(&Message{Type: MsgResult, Seq: cmd.Seq, Result: res})
}

func (r *runner) sendFrame() {
	f := r.sess.Frame()
	r.peer.Send(&Message{Type: MsgFrame, Frame: &f})
}

func (r *runner) save(ctx context.Context) {
	if _, err := r.sess.Save(ctx); err != nil {
		log.Printf("[network] %s autosave: %v", r.sess.ID(), err)
	}
}

// finish queues a last save and flushes it
func (r *runner) finish() {
	r.save(context.Background())
	if err := r.saver.Stop(); err != nil {
		log.Printf("[network] %s saver: %v", r.sess.ID(), err)
	}
	r.peer.Close()
}
