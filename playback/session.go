// Package playback owns the live playback session: the player handle, the
// current position and duration, volume and mute/end flags, and the
// time-tracking loop that keeps the position synchronized with the player.
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/log"
	"github.com/vidmark-cli/vidmark/player"
)

const defaultPollInterval = 500 * time.Millisecond

// Session is the single-active-video playback context.
//
// All mutation happens on the control path (one mutator per field); the mutex
// only shields the tracking goroutine's position updates from readers.
type Session struct {
	mu     sync.Mutex
	player player.Player

	videoID     string
	currentTime int
	duration    int
	volume      int
	isPlaying   bool
	isMuted     bool
	isEnded     bool

	fetchingDuration bool // guards against duplicate in-flight duration queries

	trackStop chan struct{} // non-nil while the tracking loop runs
}

// NewSession creates a session around the given player handle with the
// configured initial volume.
func NewSession(p player.Player) *Session {
	return &Session{
		player: p,
		volume: viper.GetInt(key.PlayerVolume),
	}
}

// Load cues a new video: position, duration and the ended flag return to
// their initial values and the player receives a cue command. Playback does
// not start.
func (s *Session) Load(videoID string) error {
	s.mu.Lock()
	s.videoID = videoID
	s.currentTime = 0
	s.duration = 0
	s.isEnded = false
	s.isPlaying = false
	s.mu.Unlock()

	return s.player.CueVideoByID(videoID)
}

// Play starts or resumes playback. A previous end-of-video state is cleared
// first. Calling Play while already playing reissues the player command but
// leaves the flags untouched.
func (s *Session) Play() {
	s.mu.Lock()
	if s.isEnded {
		s.isEnded = false
	}
	s.isPlaying = true
	s.mu.Unlock()

	if err := s.player.PlayVideo(); err != nil {
		log.Warnf("play command: %v", err)
	}
}

// Pause suspends playback.
func (s *Session) Pause() {
	s.mu.Lock()
	s.isPlaying = false
	s.mu.Unlock()

	if err := s.player.PauseVideo(); err != nil {
		log.Warnf("pause command: %v", err)
	}
}

// OnEnded records that the player reached the end of the video.
func (s *Session) OnEnded() {
	s.mu.Lock()
	s.isPlaying = false
	s.isEnded = true
	s.mu.Unlock()
}

// SetVolume clears mute and applies an absolute volume level (0-100).
func (s *Session) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	s.mu.Lock()
	s.isMuted = false
	s.volume = volume
	s.mu.Unlock()

	if err := s.player.UnMute(); err != nil {
		log.Warnf("unmute command: %v", err)
	}
	if err := s.player.SetVolume(volume); err != nil {
		log.Warnf("volume command: %v", err)
	}
}

// ToggleMute flips the mute flag and issues the matching player command.
func (s *Session) ToggleMute() {
	s.mu.Lock()
	s.isMuted = !s.isMuted
	muted := s.isMuted
	s.mu.Unlock()

	var err error
	if muted {
		err = s.player.Mute()
	} else {
		err = s.player.UnMute()
	}
	if err != nil {
		log.Warnf("mute toggle: %v", err)
	}
}

// FetchDuration queries the player for the video duration, but only when the
// duration is still unknown and no query is already in flight. A failed query
// leaves the duration at zero so a later call may retry.
func (s *Session) FetchDuration() {
	s.mu.Lock()
	if s.duration != 0 || s.fetchingDuration {
		s.mu.Unlock()
		return
	}
	s.fetchingDuration = true
	s.mu.Unlock()

	go func() {
		value, err := s.player.GetDuration()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.fetchingDuration = false

		if err != nil {
			log.Warnf("duration query: %v", err)
			return
		}
		s.duration = int(math.Round(value))
	}()
}

// UpdateCurrentTime stores the ceiled playback position.
func (s *Session) UpdateCurrentTime(value float64) {
	s.mu.Lock()
	s.currentTime = int(math.Ceil(value))
	s.mu.Unlock()
}

// Seek moves the stored position and issues a seek command with
// allow-seek-ahead semantics, so seeking works while paused. Seeking away
// from the end of the video clears the ended flag.
func (s *Session) Seek(seconds int) {
	s.mu.Lock()
	s.currentTime = seconds
	s.isEnded = false
	s.mu.Unlock()

	if err := s.player.SeekTo(seconds, true); err != nil {
		log.Warnf("seek command: %v", err)
	}
}

// Resize forwards the current viewport dimensions to the player.
func (s *Session) Resize(width, height int) {
	if err := s.player.SetSize(width, height); err != nil {
		log.Warnf("resize command: %v", err)
	}
}

// StartTracking launches the time-tracking loop. Each tick issues exactly one
// current-time query and the next tick is only armed after that query's
// result is applied, so a slow player can never pile up queries.
func (s *Session) StartTracking() {
	s.mu.Lock()
	if s.trackStop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.trackStop = stop
	s.mu.Unlock()

	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond
	if interval <= 0 {
		interval = defaultPollInterval
	}

	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-stop:
				return
			case <-timer.C:
				if value, err := s.player.GetCurrentTime(); err != nil {
					// Non-fatal: keep the last known position and retry on
					// the next natural tick.
					log.Warnf("current-time query: %v", err)
				} else {
					s.UpdateCurrentTime(value)
				}
				timer.Reset(interval)
			}
		}
	}()
}

// StopTracking cancels the pending tick; no further current-time queries are
// issued until tracking resumes.
func (s *Session) StopTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trackStop != nil {
		close(s.trackStop)
		s.trackStop = nil
	}
}

// Tracking reports whether the time-tracking loop is currently running.
func (s *Session) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackStop != nil
}
