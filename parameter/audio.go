package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between two plays of the same cue
	MinSoundGap = 40 * time.Millisecond

	// AudioCueQueueSize bounds pending cues; extra cues are dropped
	AudioCueQueueSize = 32
)

// Cue tones
const (
	HitToneHz       = 880.0
	HitToneDuration = 30 * time.Millisecond

	NodeDieToneHz       = 440.0
	NodeDieToneDuration = 70 * time.Millisecond

	BossDieToneHz       = 220.0
	BossDieToneDuration = 400 * time.Millisecond

	BitsToneHz       = 1320.0
	BitsToneDuration = 25 * time.Millisecond

	LevelUpToneHz       = 660.0
	LevelUpToneDuration = 250 * time.Millisecond

	FailToneHz       = 160.0
	FailToneDuration = 180 * time.Millisecond

	// CueVolume is the gain applied to all cues, multiplied by the sfx setting
	CueVolumeFloat = 0.3
)
