// Package session wires the playback session, chapter ledger, history ledger
// and record store into one controller, the single entry point the UI talks
// to. Every user-visible action is a controller method.
package session

import (
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/chapter"
	"github.com/vidmark-cli/vidmark/history"
	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/playback"
	"github.com/vidmark-cli/vidmark/player"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/timestamp"
)

// Controller coordinates a single playback session. It is not safe for
// concurrent use; the UI drives it from one goroutine.
type Controller struct {
	playback *playback.Session
	chapters *chapter.Ledger
	history  *history.Ledger
	gateway  *store.Gateway

	showPlay       bool
	seekbarEnabled bool
}

// NewController assembles a controller around a player handle and an opened
// record gateway. The history list is seeded from the persisted records.
func NewController(p player.Player, gateway *store.Gateway) *Controller {
	c := &Controller{
		playback: playback.NewSession(p),
		chapters: chapter.NewLedger(gateway),
		history:  history.NewLedger(gateway),
		gateway:  gateway,
		showPlay: true,
	}

	c.history.LoadAll(gateway.FindAll())
	return c
}

// LoadURL extracts a video identifier from a pasted URL and loads it. A URL
// that carries no recognizable identifier is silently ignored and the call
// reports false; the current video keeps playing.
func (c *Controller) LoadURL(url string) bool {
	videoID, ok := ExtractVideoID(url)
	if !ok {
		return false
	}
	return c.LoadVideo(videoID) == nil
}

// LoadVideo cues a video by identifier: tracking stops, the control state
// resets to the not-yet-played position, a record is created lazily for an
// unseen video, and the chapter ledger switches to the video's persisted
// markers (or empty when the video is new).
func (c *Controller) LoadVideo(videoID string) error {
	c.playback.StopTracking()

	if err := c.playback.Load(videoID); err != nil {
		return err
	}

	c.showPlay = true
	c.seekbarEnabled = false
	c.history.Ensure(videoID)
	c.chapters.Load(videoID, c.gateway.FindOne(videoID))
	return nil
}

// StartPlayback begins or resumes playback of the loaded video. Every start
// registers the playback in the history ledger (when history recording is on);
// the first start of a freshly loaded video also enables the seek bar.
func (c *Controller) StartPlayback() {
	if c.playback.VideoID() == "" {
		return
	}

	c.showPlay = false
	c.seekbarEnabled = true

	if viper.GetBool(key.HistorySaveOnPlay) {
		c.history.RecordPlay(c.playback.VideoID())
	}

	c.playback.Play()
	c.playback.FetchDuration()
	c.playback.StartTracking()
}

// StopPlayback pauses the video and halts position tracking.
func (c *Controller) StopPlayback() {
	c.showPlay = true
	c.playback.Pause()
	c.playback.StopTracking()
}

// EndPlayback handles the player reaching the end of the video.
func (c *Controller) EndPlayback() {
	c.showPlay = true
	c.playback.OnEnded()
	c.playback.StopTracking()
}

// Seek jumps to an absolute position. Seeking a finished video first drops
// back into the paused state so playback does not restart on its own.
func (c *Controller) Seek(seconds int) {
	if c.playback.IsEnded() {
		c.showPlay = true
		c.playback.Pause()
	}
	c.playback.Seek(seconds)
}

// SetVolume applies an absolute volume level (0-100).
func (c *Controller) SetVolume(volume int) {
	c.playback.SetVolume(volume)
}

// ToggleMute flips the mute state.
func (c *Controller) ToggleMute() {
	c.playback.ToggleMute()
}

// AddChapter places a marker with an explicit time and label.
func (c *Controller) AddChapter(time int, text string) bool {
	return c.chapters.Add(time, text)
}

// AddChapterAtCurrentTime places a marker at the current playback position,
// labeled with the position rendered the same way the seek bar shows it.
func (c *Controller) AddChapterAtCurrentTime() bool {
	current := c.playback.CurrentTime()
	text := timestamp.Current(current, c.playback.Duration())
	return c.chapters.Add(current, text)
}

// RemoveChapter deletes the marker at the exact given time.
func (c *Controller) RemoveChapter(time int) bool {
	return c.chapters.Remove(time)
}

// SelectChapter seeks to a marker's position.
func (c *Controller) SelectChapter(time int) {
	c.Seek(time)
}

// SelectHistory loads a previously watched video from the history list.
func (c *Controller) SelectHistory(videoID string) error {
	return c.LoadVideo(videoID)
}

// Resize forwards the viewport dimensions to the player.
func (c *Controller) Resize(width, height int) {
	c.playback.Resize(width, height)
}

// ShowPlayButton reports whether the UI should render the play control (true)
// or the pause control (false).
func (c *Controller) ShowPlayButton() bool {
	return c.showPlay
}

// SeekbarEnabled reports whether the loaded video has been played at least
// once, which is when seeking becomes meaningful.
func (c *Controller) SeekbarEnabled() bool {
	return c.seekbarEnabled
}

// Playback exposes the playback session for read-side rendering.
func (c *Controller) Playback() *playback.Session {
	return c.playback
}

// Chapters exposes the chapter ledger for read-side rendering.
func (c *Controller) Chapters() *chapter.Ledger {
	return c.chapters
}

// History exposes the history ledger for read-side rendering.
func (c *Controller) History() *history.Ledger {
	return c.history
}
