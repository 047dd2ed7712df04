package console

import (
	"fmt"

	"github.com/vidmark-cli/vidmark/history"
	"github.com/vidmark-cli/vidmark/oembed"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/timestamp"
)

// listItem implements the list.Item interface, wrapping domain models for
// terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case history.Entry:
		if metadata, ok := oembed.Cached(e.VideoID).Get(); ok && metadata.Title != "" {
			return metadata.Title
		}
		return e.VideoID
	case store.ChapterMarker:
		return e.Text
	default:
		return t.FilterValue()
	}
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case history.Entry:
		if metadata, ok := oembed.Cached(e.VideoID).Get(); ok && metadata.AuthorName != "" {
			return fmt.Sprintf("%s • %s", e.VideoID, metadata.AuthorName)
		}
		return e.Thumbnail
	case store.ChapterMarker:
		return fmt.Sprintf("at %s", timestamp.Duration(e.Time))
	default:
		return ""
	}
}

// FilterValue returns the string used for real-time list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case history.Entry:
		return e.VideoID
	case store.ChapterMarker:
		return e.Text
	default:
		return ""
	}
}
