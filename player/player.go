// Package player defines a unified abstraction layer for media playback engines.
// The primary implementation targets 'mpv' via its JSON-IPC interface.
package player

// Player encapsulates the playback-widget contract consumed by the session.
type Player interface {
	// CueVideoByID loads the video with the given identifier without starting
	// playback. It launches the playback engine on first use.
	CueVideoByID(videoID string) error

	// PlayVideo resumes or starts playback of the cued video.
	PlayVideo() error

	// PauseVideo suspends playback.
	PauseVideo() error

	// Mute silences audio output without changing the stored volume.
	Mute() error

	// UnMute restores audio output.
	UnMute() error

	// SetVolume applies an absolute volume level in the 0-100 range.
	SetVolume(volume int) error

	// SetSize forwards the current viewport dimensions to the player window.
	SetSize(width, height int) error

	// SeekTo transitions playback to an absolute timestamp in seconds.
	// allowSeekAhead permits jumping past the buffered region.
	SeekTo(seconds int, allowSeekAhead bool) error

	// GetCurrentTime retrieves the current absolute playback position in seconds.
	GetCurrentTime() (float64, error)

	// GetDuration retrieves the total temporal length of the cued video in seconds.
	GetDuration() (float64, error)

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the playback engine and releases all associated system resources.
	Close() error

	// Wait returns a channel that is closed when the playback engine terminates.
	Wait() <-chan struct{}
}
