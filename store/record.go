// Package store implements the persistence gateway for per-video records.
//
// It is the only package touching the on-disk document store: a single
// well-known JSON file holding one record per video identifier.
package store

import "fmt"

// ChapterMarker is a user-created named timestamp within a video.
type ChapterMarker struct {
	// Time is the marker position in whole seconds from the start of the video.
	Time int `json:"time" jsonschema:"description=Marker position in seconds from the start of the video.,minimum=0"`
	// Text is the display-formatted timestamp shown in the chapter list.
	Text string `json:"text" jsonschema:"description=Display-formatted timestamp of the marker."`
}

// VideoRecord is the persisted annotation state of a single video.
// Exactly one record exists per video identifier; it is created lazily the
// first time a video is loaded.
type VideoRecord struct {
	VideoID string `json:"videoId" jsonschema:"description=External video identifier and primary key."`
	// ChapterList is kept ascending by marker time with no duplicate times.
	ChapterList []ChapterMarker `json:"chapterList" jsonschema:"description=Chapter markers in ascending time order."`
	// PlaybackDate is a sortable yyyyMMddHHmmss encoding of the last playback,
	// empty until the video has been played at least once.
	PlaybackDate string `json:"playbackDate" jsonschema:"description=Last-played timestamp encoded as yyyyMMddHHmmss; empty before first playback."`
}

// NewRecord returns a fresh record for a video that has never been seen before.
func NewRecord(videoID string) *VideoRecord {
	return &VideoRecord{
		VideoID:      videoID,
		ChapterList:  []ChapterMarker{},
		PlaybackDate: "",
	}
}

func (r *VideoRecord) String() string {
	return fmt.Sprintf("%s (%d chapters)", r.VideoID, len(r.ChapterList))
}
