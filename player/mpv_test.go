package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVideoIDPattern(t *testing.T) {
	Convey("Video identifier validation", t, func() {
		Convey("Accepts the 11-character identifier alphabet", func() {
			So(videoIDPattern.MatchString("dQw4w9WgXcQ"), ShouldBeTrue)
			So(videoIDPattern.MatchString("a-b_c-d_e-f"), ShouldBeTrue)
		})

		Convey("Rejects wrong lengths and foreign characters", func() {
			So(videoIDPattern.MatchString("short"), ShouldBeFalse)
			So(videoIDPattern.MatchString("waytoolongidentifier"), ShouldBeFalse)
			So(videoIDPattern.MatchString("has spaces!"), ShouldBeFalse)
			So(videoIDPattern.MatchString(""), ShouldBeFalse)
		})
	})
}

func TestMPVLifecycle(t *testing.T) {
	Convey("MPV", t, func() {
		mpv := NewMPV()

		Convey("Is not running before the first cue", func() {
			So(mpv.IsRunning(), ShouldBeFalse)
		})

		Convey("Cue rejects a malformed identifier before touching the process", func() {
			err := mpv.CueVideoByID("not a video")
			So(err, ShouldNotBeNil)
			So(mpv.Socket(), ShouldBeEmpty)
		})

		Convey("Close on an unstarted player is a no-op", func() {
			So(mpv.Close(), ShouldBeNil)
		})
	})
}
