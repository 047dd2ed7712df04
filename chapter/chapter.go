// Package chapter maintains the in-memory chapter ledger for the currently loaded video.
//
// The ledger enforces uniqueness-by-time and ascending time order, and mirrors
// every successful mutation to the persistence gateway as a full snapshot.
package chapter

import (
	"github.com/samber/mo"
	"golang.org/x/exp/slices"

	"github.com/vidmark-cli/vidmark/log"
	"github.com/vidmark-cli/vidmark/store"
)

// Ledger holds the chapter markers of one video at a time.
type Ledger struct {
	gateway *store.Gateway
	videoID string
	markers []store.ChapterMarker
}

// NewLedger returns an empty ledger mirrored to the given gateway.
func NewLedger(gateway *store.Gateway) *Ledger {
	return &Ledger{gateway: gateway}
}

// Load replaces the ledger contents with the chapter list of the given record,
// or with an empty list when the video has no record yet.
func (l *Ledger) Load(videoID string, record mo.Option[*store.VideoRecord]) {
	l.videoID = videoID
	l.markers = nil

	if r, ok := record.Get(); ok {
		l.markers = slices.Clone(r.ChapterList)
	}
}

// Add inserts a marker and re-sorts the ledger ascending by time. A marker
// whose time is already present is rejected and the call reports false.
// Chapter counts per video stay small, so re-sorting on insert is fine.
func (l *Ledger) Add(time int, text string) bool {
	if l.indexOf(time) != -1 {
		log.Debugf("chapter at %ds already exists for %s", time, l.videoID)
		return false
	}

	l.markers = append(l.markers, store.ChapterMarker{Time: time, Text: text})
	slices.SortFunc(l.markers, func(a, b store.ChapterMarker) int {
		return a.Time - b.Time
	})

	l.mirror()
	return true
}

// Remove deletes the marker with the exact given time. A time with no marker
// is a no-op and reports false.
func (l *Ledger) Remove(time int) bool {
	index := l.indexOf(time)
	if index == -1 {
		return false
	}

	l.markers = append(l.markers[:index], l.markers[index+1:]...)
	l.mirror()
	return true
}

// Markers returns a copy of the current ledger contents.
func (l *Ledger) Markers() []store.ChapterMarker {
	return slices.Clone(l.markers)
}

// Len returns the number of markers in the ledger.
func (l *Ledger) Len() int {
	return len(l.markers)
}

func (l *Ledger) indexOf(time int) int {
	return slices.IndexFunc(l.markers, func(m store.ChapterMarker) bool {
		return m.Time == time
	})
}

// mirror persists the full current snapshot before returning, so the common
// path is read-your-writes; a storage failure is logged downstream and the
// in-memory ledger keeps the mutation.
func (l *Ledger) mirror() {
	l.gateway.UpdateFields(l.videoID, store.Fields{
		ChapterList: mo.Some(slices.Clone(l.markers)),
	})
}
