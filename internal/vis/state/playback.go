package state

import "time"

// PlaybackState manages solution playback. Time is measured in timesteps
// but kept as a float so agents glide between cells instead of jumping.
type PlaybackState struct {
	CurrentTime float64 // Current playback position in timesteps
	MaxTime     float64 // Solution makespan
	Speed       float64 // Timesteps per second
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a playback state covering [0, makespan].
func NewPlaybackState(makespan int) *PlaybackState {
	return &PlaybackState{
		MaxTime:    float64(makespan),
		Speed:      2.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off, rewinding if at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to t=0 and pauses.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves playback forward by wall-clock time elapsed since the
// previous frame, scaled by Speed.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.CurrentTime += now.Sub(p.lastUpdate).Seconds() * p.Speed
	p.lastUpdate = now

	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime seeks to t, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances to the next whole timestep.
func (p *PlaybackState) StepForward() {
	p.Pause()
	next := float64(int(p.CurrentTime) + 1)
	p.SetTime(next)
}

// StepBack pauses and rewinds to the previous whole timestep.
func (p *PlaybackState) StepBack() {
	p.Pause()
	prev := float64(int(p.CurrentTime))
	if prev >= p.CurrentTime {
		prev--
	}
	p.SetTime(prev)
}

// SetSpeed sets the playback rate in timesteps per second.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.25 {
		speed = 0.25
	}
	if speed > 16 {
		speed = 16
	}
	p.Speed = speed
}

// Progress returns playback position as a fraction in [0, 1].
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
