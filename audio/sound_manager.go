package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/event"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays cues for simulation events
// Events are queued from the tick goroutine and synthesized on a worker;
// a full queue drops cues rather than blocking the tick
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64

	last  [cueCount]time.Time
	cues  chan Cue
	done  chan struct{}
	clock func() time.Time

	// play is swapped in tests; defaults to mixing into the speaker
	play func(beep.Streamer)
}

// NewSoundManager creates a sound manager at volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: max(0, min(1, volume)),
		cues:   make(chan Cue, parameter.AudioCueQueueSize),
		clock:  time.Now,
	}
	sm.play = sm.mixIn
	return sm
}

// Name returns the service name
func (sm *SoundManager) Name() string { return "audio" }

// Start opens the speaker and launches the cue worker
// Failure leaves the manager silent; the game runs without sound
func (sm *SoundManager) Start() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.startWorker()
	sm.initialized = true
	return nil
}

func (sm *SoundManager) startWorker() {
	sm.done = make(chan struct{})
	done := sm.done
	core.Go(func() {
		for {
			select {
			case <-done:
				return
			case c := <-sm.cues:
				sm.render(c)
			}
		}
	})
}

// Stop silences all cues and stops the worker
func (sm *SoundManager) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	close(sm.done)
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
	return nil
}

// SetMuted toggles output; queued cues are still drained
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Enqueue schedules c, dropping it when the queue is full
func (sm *SoundManager) Enqueue(c Cue) bool {
	if c == CueNone {
		return false
	}
	select {
	case sm.cues <- c:
		return true
	default:
		return false
	}
}

// EventTypes returns the events that produce cues
func (sm *SoundManager) EventTypes() []event.EventType {
	return CueEvents
}

// HandleEvent queues the cue for ev
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	sm.Enqueue(CueFor(ev))
}

// render synthesizes c unless muted or played too recently
func (sm *SoundManager) render(c Cue) {
	sm.mu.Lock()
	now := sm.clock()
	if sm.muted || !sm.allow(c, now) {
		sm.mu.Unlock()
		return
	}
	sm.last[c] = now
	vol := sm.volume
	play := sm.play
	sm.mu.Unlock()

	if s := CreateCue(c, vol, sampleRate); s != nil {
		play(s)
	}
}

// allow enforces the minimum gap between two plays of the same cue
func (sm *SoundManager) allow(c Cue, now time.Time) bool {
	last := sm.last[c]
	return last.IsZero() || now.Sub(last) >= parameter.MinSoundGap
}

func (sm *SoundManager) mixIn(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Drain renders every queued cue synchronously
func (sm *SoundManager) Drain() int {
	n := 0
	for {
		select {
		case c := <-sm.cues:
			sm.render(c)
			n++
		default:
			return n
		}
	}
}

// LogStartFailure records a failed Start; the game continues silent
func LogStartFailure(err error) {
	log.Printf("[audio] initialization failed, continuing without sound: %v", err)
}
