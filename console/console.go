// Package console provides the interactive terminal user interface: paste a
// watch URL, control playback, place chapter markers and browse history.
package console

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidmark-cli/vidmark/player"
	"github.com/vidmark-cli/vidmark/session"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/where"
)

// Options encapsulates the runtime configuration for the console.
type Options struct {
	// Resume opens the history list instead of the URL prompt.
	Resume bool

	// VideoID, when set, is cued immediately and the console opens on the
	// player view.
	VideoID string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	mpv := player.NewMPV()
	controller := session.NewController(mpv, store.NewGateway(where.Records()))

	bubble := newBubble(controller, mpv, options)
	defer bubble.shutdown()

	switch {
	case options.VideoID != "":
		if err := bubble.loadVideo(options.VideoID); err != nil {
			return err
		}
		bubble.newState(playerState)
	case options.Resume:
		bubble.syncHistory()
		bubble.newState(historyState)
	default:
		bubble.newState(urlState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
