package playback

// Read-side accessors for the session state. The UI layer renders from these;
// nothing outside the session mutates them.

// VideoID returns the identifier of the currently cued video.
func (s *Session) VideoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID
}

// CurrentTime returns the playback position in whole seconds.
func (s *Session) CurrentTime() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

// Duration returns the video duration in whole seconds, zero while unknown.
func (s *Session) Duration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Volume returns the current volume level (0-100).
func (s *Session) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// IsPlaying reports whether playback is active.
func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPlaying
}

// IsMuted reports whether audio output is muted.
func (s *Session) IsMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isMuted
}

// IsEnded reports whether the video played through to its end.
func (s *Session) IsEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEnded
}

// SeekBarFill returns the watched fraction of the video for display purposes.
// Fractions below 0.2 get a small nudge so the fill stays visible near the
// start, matching the original seek bar rendering.
func (s *Session) SeekBarFill() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duration == 0 {
		return 0
	}

	fill := float64(s.currentTime) / float64(s.duration)
	if fill < 0.2 {
		fill += 0.01
	}
	return fill
}

// VolumeFill returns the volume bar fill fraction for display purposes.
func (s *Session) VolumeFill() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.volume) / 100
}
