// Package history tracks the most-recently-played videos as an in-memory
// recency list mirrored to the persistence gateway.
package history

import (
	"fmt"
	"time"

	"github.com/samber/mo"
	"golang.org/x/exp/slices"

	"github.com/vidmark-cli/vidmark/constant"
	"github.com/vidmark-cli/vidmark/store"
	"github.com/vidmark-cli/vidmark/timestamp"
)

// Entry is a single item of the visible history list.
type Entry struct {
	VideoID   string `json:"video_id"`
	Thumbnail string `json:"thumbnail"`
}

func (e Entry) String() string {
	return e.VideoID
}

// ThumbnailURL derives the CDN thumbnail location for a video identifier.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("%s/%s/default.jpg", constant.ThumbnailHost, videoID)
}

// Ledger is the recency list: front of the list is always the most recently
// played-or-loaded video, and each video appears at most once.
type Ledger struct {
	gateway *store.Gateway
	entries []Entry

	now func() time.Time
}

// NewLedger returns an empty history ledger mirrored to the given gateway.
func NewLedger(gateway *store.Gateway) *Ledger {
	return &Ledger{gateway: gateway, now: time.Now}
}

// LoadAll seeds the visible list from persisted records in their stored
// iteration order. Recency ordering is only maintained going forward.
func (l *Ledger) LoadAll(records []*store.VideoRecord) {
	l.entries = nil
	for _, record := range records {
		l.entries = append(l.entries, Entry{
			VideoID:   record.VideoID,
			Thumbnail: ThumbnailURL(record.VideoID),
		})
	}
}

// Ensure registers a video on first sight: an unseen video gets a fresh
// persisted record (empty chapters, empty playback date) and a new entry at
// the front. A video that already has a record is left untouched.
func (l *Ledger) Ensure(videoID string) {
	if l.gateway.FindOne(videoID).IsPresent() {
		return
	}

	l.gateway.Insert(store.NewRecord(videoID))
	l.entries = append([]Entry{{
		VideoID:   videoID,
		Thumbnail: ThumbnailURL(videoID),
	}}, l.entries...)
}

// RecordPlay registers a playback of the given video: the persisted playback
// date is set to the current moment and the entry is relocated to the front
// without changing the list length. An unseen video is registered first.
func (l *Ledger) RecordPlay(videoID string) {
	l.Ensure(videoID)

	l.gateway.UpdateFields(videoID, store.Fields{
		PlaybackDate: mo.Some(timestamp.PlaybackDate(l.now())),
	})

	index := slices.IndexFunc(l.entries, func(e Entry) bool {
		return e.VideoID == videoID
	})
	if index <= 0 {
		return
	}

	entry := l.entries[index]
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	l.entries = append([]Entry{entry}, l.entries...)
}

// Entries returns a copy of the current recency list, most recent first.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of history entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
