package timestamp

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestComponents(t *testing.T) {
	Convey("Time components", t, func() {
		So(Hours(3661), ShouldEqual, 1)
		So(Minutes(3661), ShouldEqual, 1)
		So(Seconds(3661), ShouldEqual, 1)

		So(Hours(59), ShouldEqual, 0)
		So(Minutes(59), ShouldEqual, 0)
		So(Seconds(59), ShouldEqual, 59)

		So(Minutes(3599), ShouldEqual, 59)
	})
}

func TestDuration(t *testing.T) {
	Convey("Duration", t, func() {
		Convey("Includes hours only past the hour mark", func() {
			So(Duration(3661), ShouldEqual, "01:01:01")
			So(Duration(59), ShouldEqual, "00:59")
			So(Duration(0), ShouldEqual, "00:00")
			So(Duration(3600), ShouldEqual, "01:00:00")
		})
	})
}

func TestCurrent(t *testing.T) {
	Convey("Current", t, func() {
		Convey("Follows the duration's hour component", func() {
			So(Current(65, 3661), ShouldEqual, "00:01:05")
			So(Current(65, 120), ShouldEqual, "01:05")
		})

		Convey("Zero duration omits hours", func() {
			So(Current(30, 0), ShouldEqual, "00:30")
		})
	})
}

func TestPlaybackDate(t *testing.T) {
	Convey("PlaybackDate", t, func() {
		at := time.Date(2026, time.March, 7, 9, 5, 1, 0, time.UTC)

		Convey("Encodes zero-padded components", func() {
			So(PlaybackDate(at), ShouldEqual, "20260307090501")
		})

		Convey("Is sortable as a plain string", func() {
			later := PlaybackDate(at.Add(time.Minute))
			So(PlaybackDate(at) < later, ShouldBeTrue)
		})
	})
}
