package console

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vidmark-cli/vidmark/constant"
	"github.com/vidmark-cli/vidmark/history"
	"github.com/vidmark-cli/vidmark/network"
	"github.com/vidmark-cli/vidmark/oembed"
	"github.com/vidmark-cli/vidmark/player"
	"github.com/vidmark-cli/vidmark/session"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/util"
)

// statefulBubble encapsulates the console state: the session controller, the
// component models and the player event plumbing.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	controller *session.Controller
	mpv        *player.MPV
	listener   *player.EventListener

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	historyC  list.Model
	chaptersC list.Model
	seekbarC  progress.Model
	volumeC   progress.Model
	helpC     help.Model

	endedChannel chan struct{}
	pauseChannel chan bool

	metadata  mo.Option[oembed.Metadata]
	urlError  bool
	lastError error

	width, height int

	options *Options
}

// raiseError dispatches a terminal error and transitions to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow
// and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous state in
// the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Transient states are not worth returning to.
	if !lo.Contains([]state{errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.chaptersC.SetSize(listWidth, listHeight)
	b.chaptersC.Help.Width = listWidth

	b.seekbarC.Width = util.Min(b.width, 60)
	b.volumeC.Width = util.Min(b.width/3, 20)
	b.helpC.Width = listWidth
}

// loadVideo cues a video through the controller and kicks off the background
// lookups that enrich the view.
func (b *statefulBubble) loadVideo(videoID string) error {
	if err := b.controller.LoadVideo(videoID); err != nil {
		return err
	}

	b.metadata = oembed.Cached(videoID)
	network.PrefetchThumbnail(videoID, history.ThumbnailURL(videoID))
	b.startListener()
	return nil
}

// startListener attaches the property observer once mpv has a live socket.
func (b *statefulBubble) startListener() {
	if b.listener != nil || b.mpv.Socket() == "" {
		return
	}

	b.listener = player.NewEventListener(b.mpv.Socket(), b.onPlayerEvent)
	if err := b.listener.Start(); err != nil {
		// Degraded mode: end-of-video is missed, everything else still works.
		b.listener = nil
	}
}

// onPlayerEvent runs on the listener goroutine; it forwards property changes
// into the Bubble Tea loop through buffered channels.
func (b *statefulBubble) onPlayerEvent(property string, data interface{}) {
	switch property {
	case "eof-reached":
		if reached, ok := data.(bool); ok && reached {
			select {
			case b.endedChannel <- struct{}{}:
			default:
			}
		}
	case "pause":
		if paused, ok := data.(bool); ok {
			select {
			case b.pauseChannel <- paused:
			default:
			}
		}
	}
}

func (b *statefulBubble) shutdown() {
	if b.listener != nil {
		b.listener.Stop()
	}
	_ = b.mpv.Close()
}

// syncHistory mirrors the history ledger into the list component.
func (b *statefulBubble) syncHistory() {
	entries := b.controller.History().Entries()
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = &listItem{internal: entry}
	}
	b.historyC.SetItems(items)
}

// syncChapters mirrors the chapter ledger into the list component.
func (b *statefulBubble) syncChapters() {
	markers := b.controller.Chapters().Markers()
	items := make([]list.Item, len(markers))
	for i, marker := range markers {
		items[i] = &listItem{internal: marker}
	}
	b.chaptersC.SetItems(items)
}

// newBubble performs a complete initialization of the console's UI model.
func newBubble(controller *session.Controller, mpv *player.MPV, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		controller: controller,
		mpv:        mpv,

		endedChannel: make(chan struct{}, 1),
		pauseChannel: make(chan bool, 1),

		metadata: mo.None[oembed.Metadata](),
		options:  options,
	}

	makeList := func(title string, background lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(background).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Paste a watch URL (%s v%s)", constant.Vidmark, constant.Version)
	bubble.inputC.CharLimit = 120
	bubble.inputC.Prompt = "> "

	bubble.seekbarC = progress.New(progress.WithDefaultGradient())
	bubble.seekbarC.ShowPercentage = false

	bubble.volumeC = progress.New(progress.WithSolidFill("2"))
	bubble.volumeC.ShowPercentage = false

	bubble.historyC = makeList("History", lipgloss.Color("3"))
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.chaptersC = makeList("Chapters", lipgloss.Color("5"))
	bubble.chaptersC.SetStatusBarItemName("chapter", "chapters")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}

// markerOf unwraps the chapter marker behind a list selection.
func markerOf(item list.Item) (store.ChapterMarker, bool) {
	wrapped, ok := item.(*listItem)
	if !ok {
		return store.ChapterMarker{}, false
	}
	marker, ok := wrapped.internal.(store.ChapterMarker)
	return marker, ok
}

// entryOf unwraps the history entry behind a list selection.
func entryOf(item list.Item) (history.Entry, bool) {
	wrapped, ok := item.(*listItem)
	if !ok {
		return history.Entry{}, false
	}
	entry, ok := wrapped.internal.(history.Entry)
	return entry, ok
}

var _ tea.Model = (*statefulBubble)(nil)

// tick drives periodic view refreshes while the player view is visible.
func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) waitForEnd() tea.Cmd {
	return func() tea.Msg {
		<-b.endedChannel
		return videoEndedMsg{}
	}
}

func (b *statefulBubble) waitForPause() tea.Cmd {
	return func() tea.Msg {
		return pauseChangedMsg(<-b.pauseChannel)
	}
}

// fetchMetadata resolves the video title in the background.
func (b *statefulBubble) fetchMetadata(videoID string) tea.Cmd {
	return func() tea.Msg {
		return metadataMsg{videoID: videoID, metadata: oembed.Lookup(videoID)}
	}
}
