// Package timestamp provides pure helpers for splitting and formatting playback times.
package timestamp

import (
	"fmt"
	"time"
)

// Hours returns the whole-hour component of a time given in seconds.
func Hours(seconds int) int {
	return seconds / 60 / 60
}

// Minutes returns the minute component (0-59) of a time given in seconds.
func Minutes(seconds int) int {
	return (seconds / 60) % 60
}

// Seconds returns the second component (0-59) of a time given in seconds.
func Seconds(seconds int) int {
	return seconds % 60
}

// Duration renders a total duration as "MM:SS", prefixed with a zero-padded
// hour component when the duration reaches one hour.
func Duration(seconds int) string {
	text := fmt.Sprintf("%02d:%02d", Minutes(seconds), Seconds(seconds))
	if h := Hours(seconds); h > 0 {
		text = fmt.Sprintf("%02d:%s", h, text)
	}
	return text
}

// Current renders the current playback position relative to the video duration.
// The hour component is included whenever the duration itself has one, so the
// position text keeps a stable width while scrubbing through a long video.
func Current(current, duration int) string {
	if Hours(duration) > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", Hours(current), Minutes(current), Seconds(current))
	}
	return fmt.Sprintf("%02d:%02d", Minutes(current), Seconds(current))
}

// PlaybackDate encodes a point in time as a sortable, zero-padded
// yyyyMMddHHmmss string used for the persisted last-played field.
func PlaybackDate(t time.Time) string {
	return t.Format("20060102150405")
}
