package console

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/constant"
	vidmarkKey "github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/oembed"
	"github.com/vidmark-cli/vidmark/open"
	"github.com/vidmark-cli/vidmark/session"
	"github.com/vidmark-cli/vidmark/util"
)

type (
	tickMsg         time.Time
	videoEndedMsg   struct{}
	pauseChangedMsg bool

	metadataMsg struct {
		videoID  string
		metadata mo.Option[oembed.Metadata]
	}
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		b.spinnerC.Tick,
		b.tick(),
		b.waitForEnd(),
		b.waitForPause(),
	}

	if videoID := b.controller.Playback().VideoID(); videoID != "" {
		cmds = append(cmds, b.fetchMetadata(videoID))
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case tickMsg:
		if b.state == playerState && b.controller.Playback().IsPlaying() {
			b.controller.Playback().FetchDuration()
		}
		return b, b.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case videoEndedMsg:
		b.controller.EndPlayback()
		return b, b.waitForEnd()

	case pauseChangedMsg:
		// Keep the control state honest when pause is toggled in the mpv
		// window itself.
		paused := bool(msg)
		if paused && !b.controller.ShowPlayButton() {
			b.controller.StopPlayback()
		} else if !paused && b.controller.ShowPlayButton() && b.controller.Playback().VideoID() != "" {
			b.controller.StartPlayback()
		}
		return b, b.waitForPause()

	case metadataMsg:
		if msg.videoID == b.controller.Playback().VideoID() {
			b.metadata = msg.metadata
		}
		return b, nil

	case tea.KeyMsg:
		switch b.state {
		case urlState:
			return b.updateURL(msg)
		case playerState:
			return b.updatePlayer(msg)
		case chaptersState:
			return b.updateChapters(msg)
		case historyState:
			return b.updateHistory(msg)
		case errorState:
			return b.updateError(msg)
		}
	}

	return b, nil
}

// startVideo loads a video and switches to the player view.
func (b *statefulBubble) startVideo(videoID string) (tea.Model, tea.Cmd) {
	if err := b.loadVideo(videoID); err != nil {
		b.raiseError(err)
		return b, nil
	}

	b.newState(playerState)
	return b, b.fetchMetadata(videoID)
}

func (b *statefulBubble) updateURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		return b, tea.Quit
	case key.Matches(msg, b.keymap.confirm):
		videoID, ok := session.ExtractVideoID(b.inputC.Value())
		if !ok {
			// Keep the prompt; the pasted text carries no identifier.
			b.urlError = true
			return b, nil
		}

		b.urlError = false
		b.inputC.SetValue("")
		return b.startVideo(videoID)
	case key.Matches(msg, b.keymap.back):
		if b.statesHistory.Len() > 0 {
			b.previousState()
			return b, nil
		}
		if b.controller.History().Len() > 0 {
			b.syncHistory()
			b.newState(historyState)
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlayer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playback := b.controller.Playback()

	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return b, tea.Quit

	case key.Matches(msg, b.keymap.playPause):
		if b.controller.ShowPlayButton() {
			b.controller.StartPlayback()
		} else {
			b.controller.StopPlayback()
		}
		return b, nil

	case key.Matches(msg, b.keymap.mute):
		b.controller.ToggleMute()
		return b, nil

	case key.Matches(msg, b.keymap.seekBack), key.Matches(msg, b.keymap.seekForward):
		if !b.controller.SeekbarEnabled() {
			return b, nil
		}

		step := viper.GetInt(vidmarkKey.ConsoleSeekStep)
		if step <= 0 {
			step = 5
		}
		if key.Matches(msg, b.keymap.seekBack) {
			step = -step
		}

		target := playback.CurrentTime() + step
		if target < 0 {
			target = 0
		}
		if duration := playback.Duration(); duration > 0 && target > duration {
			target = duration
		}

		b.controller.Seek(target)
		return b, nil

	case key.Matches(msg, b.keymap.volumeUp), key.Matches(msg, b.keymap.volumeDown):
		step := viper.GetInt(vidmarkKey.ConsoleVolumeStep)
		if step <= 0 {
			step = 5
		}
		if key.Matches(msg, b.keymap.volumeDown) {
			step = -step
		}

		b.controller.SetVolume(util.Clamp(playback.Volume()+step, 0, 100))
		return b, nil

	case key.Matches(msg, b.keymap.addChapter):
		b.controller.AddChapterAtCurrentTime()
		return b, nil

	case key.Matches(msg, b.keymap.chapters):
		b.syncChapters()
		b.newState(chaptersState)
		return b, nil

	case key.Matches(msg, b.keymap.history):
		b.syncHistory()
		b.newState(historyState)
		return b, nil

	case key.Matches(msg, b.keymap.newURL):
		b.inputC.SetValue("")
		b.inputC.Focus()
		b.newState(urlState)
		return b, textinput.Blink

	case key.Matches(msg, b.keymap.openURL):
		_ = open.Start(constant.WatchHost + playback.VideoID())
		return b, nil
	}

	return b, nil
}

func (b *statefulBubble) updateChapters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		return b, tea.Quit

	case key.Matches(msg, b.keymap.confirm):
		if marker, ok := markerOf(b.chaptersC.SelectedItem()); ok {
			b.controller.SelectChapter(marker.Time)
			b.previousState()
		}
		return b, nil

	case key.Matches(msg, b.keymap.remove):
		if marker, ok := markerOf(b.chaptersC.SelectedItem()); ok {
			b.controller.RemoveChapter(marker.Time)
			b.syncChapters()
		}
		return b, nil

	case key.Matches(msg, b.keymap.back):
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.chaptersC, cmd = b.chaptersC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		return b, tea.Quit

	case key.Matches(msg, b.keymap.confirm):
		if entry, ok := entryOf(b.historyC.SelectedItem()); ok {
			return b.startVideo(entry.VideoID)
		}
		return b, nil

	case key.Matches(msg, b.keymap.openURL):
		if entry, ok := entryOf(b.historyC.SelectedItem()); ok {
			_ = open.Start(constant.WatchHost + entry.VideoID)
		}
		return b, nil

	case key.Matches(msg, b.keymap.back):
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.back):
		b.previousState()
		return b, nil
	case key.Matches(msg, b.keymap.quit), key.Matches(msg, b.keymap.forceQuit):
		return b, tea.Quit
	}
	return b, nil
}
