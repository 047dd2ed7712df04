package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/vidmark-cli/vidmark/color"
	"github.com/vidmark-cli/vidmark/icon"
	"github.com/vidmark-cli/vidmark/style"
	"github.com/vidmark-cli/vidmark/timestamp"
	"github.com/vidmark-cli/vidmark/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)

	accentColor = color.SeekFill
)

func (b *statefulBubble) View() string {
	switch b.state {
	case urlState:
		return b.viewURL()
	case playerState:
		return b.viewPlayer()
	case chaptersState:
		return listExtraPaddingStyle.Render(b.chaptersC.View())
	case historyState:
		return listExtraPaddingStyle.Render(b.historyC.View())
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewURL() string {
	lines := []string{
		style.Title("Load Video"),
		"",
		b.inputC.View(),
	}

	if b.urlError {
		lines = append(lines, "", style.Fg(color.Red)("No video identifier found in that URL"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlayer() string {
	playback := b.controller.Playback()

	title := playback.VideoID()
	var author string
	if metadata, ok := b.metadata.Get(); ok {
		if metadata.Title != "" {
			title = metadata.Title
		}
		author = metadata.AuthorName
	}

	statusIcon := icon.Get(icon.Pause)
	if playback.IsPlaying() {
		statusIcon = icon.Get(icon.Play)
	}

	lines := []string{
		style.Title("Now Watching"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", statusIcon, style.Fg(color.Purple)(title))),
	}

	if author != "" {
		lines = append(lines, style.Truncate(b.width)(style.Faint(author)))
	}

	lines = append(lines, "", b.viewSeekLine(), "", b.viewVolumeLine())

	chapters := b.controller.Chapters().Len()
	lines = append(lines, fmt.Sprintf("%s %s", icon.Get(icon.Chapter), util.Quantify(chapters, "chapter", "chapters")))

	if playback.IsEnded() {
		lines = append(lines, "", style.Faint("Playback finished"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewSeekLine() string {
	playback := b.controller.Playback()

	duration := playback.Duration()
	if duration == 0 {
		if !b.controller.SeekbarEnabled() {
			return style.Faint("Press space to play")
		}
		return b.spinnerC.View() + " " + style.Faint("Fetching duration...")
	}

	current := playback.CurrentTime()
	return fmt.Sprintf(
		"%s %s",
		b.seekbarC.ViewAs(playback.SeekBarFill()),
		style.Faint(fmt.Sprintf("%s / %s", timestamp.Current(current, duration), timestamp.Duration(duration))),
	)
}

func (b *statefulBubble) viewVolumeLine() string {
	playback := b.controller.Playback()

	if playback.IsMuted() {
		return fmt.Sprintf("%s %s", icon.Get(icon.Mute), style.Faint("muted"))
	}

	return fmt.Sprintf(
		"%s %s",
		b.volumeC.ViewAs(playback.VolumeFill()),
		style.Faint(fmt.Sprintf("volume %d", playback.Volume())),
	)
}

func (b *statefulBubble) viewError() string {
	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	errorBody := style.Fg(color.Red)(message)

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			wrap.String(errorBody, b.width),
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
