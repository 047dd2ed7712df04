package session

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/store"
)

// stubPlayer satisfies the player contract without a real process.
type stubPlayer struct {
	cued     []string
	playing  bool
	duration float64
	position float64
}

func (s *stubPlayer) CueVideoByID(videoID string) error {
	s.cued = append(s.cued, videoID)
	s.playing = false
	return nil
}

func (s *stubPlayer) PlayVideo() error  { s.playing = true; return nil }
func (s *stubPlayer) PauseVideo() error { s.playing = false; return nil }
func (s *stubPlayer) Mute() error       { return nil }
func (s *stubPlayer) UnMute() error     { return nil }

func (s *stubPlayer) SetVolume(int) error    { return nil }
func (s *stubPlayer) SetSize(int, int) error { return nil }
func (s *stubPlayer) SeekTo(int, bool) error { return nil }
func (s *stubPlayer) GetCurrentTime() (float64, error) {
	return s.position, nil
}
func (s *stubPlayer) GetDuration() (float64, error) {
	return s.duration, nil
}
func (s *stubPlayer) IsRunning() bool       { return true }
func (s *stubPlayer) Close() error          { return nil }
func (s *stubPlayer) Wait() <-chan struct{} { return nil }

func newTestController(stub *stubPlayer) (*Controller, *store.Gateway) {
	filesystem.SetMemMapFs()
	gateway := store.NewGateway("/records/chapterlist.json")
	return NewController(stub, gateway), gateway
}

func TestExtractVideoID(t *testing.T) {
	Convey("Video identifier extraction", t, func() {
		Convey("Recognizes watch URLs", func() {
			id, ok := ExtractVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "dQw4w9WgXcQ")
		})

		Convey("Recognizes short links", func() {
			id, ok := ExtractVideoID("https://youtu.be/dQw4w9WgXcQ?t=42")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "dQw4w9WgXcQ")
		})

		Convey("Ignores everything else", func() {
			_, ok := ExtractVideoID("https://example.com/watch?v=short")
			So(ok, ShouldBeFalse)

			_, ok = ExtractVideoID("not a url at all")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestControllerLoading(t *testing.T) {
	Convey("Loading videos", t, func() {
		viper.Set(key.HistorySaveOnPlay, true)
		stub := &stubPlayer{}
		controller, gateway := newTestController(stub)

		Convey("LoadURL with a malformed URL leaves everything untouched", func() {
			So(controller.LoadURL("https://example.com/"), ShouldBeFalse)
			So(stub.cued, ShouldBeEmpty)
			So(controller.Playback().VideoID(), ShouldBeEmpty)
		})

		Convey("LoadURL cues the extracted video", func() {
			So(controller.LoadURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"), ShouldBeTrue)

			So(stub.cued, ShouldResemble, []string{"dQw4w9WgXcQ"})
			So(controller.Playback().VideoID(), ShouldEqual, "dQw4w9WgXcQ")
			So(controller.ShowPlayButton(), ShouldBeTrue)
			So(controller.SeekbarEnabled(), ShouldBeFalse)
		})

		Convey("Loading a known video restores its chapters", func() {
			record := store.NewRecord("dQw4w9WgXcQ")
			record.ChapterList = []store.ChapterMarker{{Time: 30, Text: "00:30"}}
			gateway.Insert(record)

			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)

			So(controller.Chapters().Len(), ShouldEqual, 1)
			So(controller.Chapters().Markers()[0].Time, ShouldEqual, 30)
		})

		Convey("Switching videos swaps the chapter ledger", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			controller.AddChapter(10, "00:10")
			controller.StopPlayback()

			So(controller.LoadVideo("aaaaaaaaaaa"), ShouldBeNil)
			So(controller.Chapters().Len(), ShouldEqual, 0)

			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			So(controller.Chapters().Len(), ShouldEqual, 1)
		})
	})
}

func TestControllerPlayback(t *testing.T) {
	Convey("Playback control", t, func() {
		viper.Set(key.HistorySaveOnPlay, true)
		stub := &stubPlayer{duration: 300}
		controller, gateway := newTestController(stub)

		Convey("StartPlayback without a loaded video is a no-op", func() {
			controller.StartPlayback()
			So(stub.playing, ShouldBeFalse)
			So(controller.ShowPlayButton(), ShouldBeTrue)
		})

		Convey("Loading an unseen video creates a pristine record and entry", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)

			So(controller.History().Len(), ShouldEqual, 1)
			record := gateway.FindOne("dQw4w9WgXcQ").MustGet()
			So(record.ChapterList, ShouldBeEmpty)
			So(record.PlaybackDate, ShouldBeEmpty)
		})

		Convey("First start enables the seek bar and stamps the playback date", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)

			controller.StartPlayback()
			controller.StopPlayback()

			So(controller.SeekbarEnabled(), ShouldBeTrue)
			So(controller.History().Len(), ShouldEqual, 1)
			So(gateway.FindOne("dQw4w9WgXcQ").MustGet().PlaybackDate, ShouldNotBeEmpty)
		})

		Convey("Pausing and resuming flips the play button only", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			So(controller.ShowPlayButton(), ShouldBeFalse)

			controller.StopPlayback()
			So(controller.ShowPlayButton(), ShouldBeTrue)
			So(stub.playing, ShouldBeFalse)

			controller.StartPlayback()
			controller.StopPlayback()
			So(controller.History().Len(), ShouldEqual, 1)
		})

		Convey("EndPlayback parks the session in the ended state", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			controller.EndPlayback()

			So(controller.Playback().IsEnded(), ShouldBeTrue)
			So(controller.Playback().IsPlaying(), ShouldBeFalse)
			So(controller.Playback().Tracking(), ShouldBeFalse)
			So(controller.ShowPlayButton(), ShouldBeTrue)
		})

		Convey("Seeking a finished video clears the ended state", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			controller.EndPlayback()

			controller.Seek(30)

			So(controller.Playback().IsEnded(), ShouldBeFalse)
			So(controller.Playback().CurrentTime(), ShouldEqual, 30)
			So(controller.ShowPlayButton(), ShouldBeTrue)
		})

		Convey("Resuming refreshes the playback date stamp", func() {
			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			controller.StopPlayback()

			gateway.UpdateFields("dQw4w9WgXcQ", store.Fields{
				PlaybackDate: mo.Some("20200101000000"),
			})

			controller.StartPlayback()

			So(gateway.FindOne("dQw4w9WgXcQ").MustGet().PlaybackDate, ShouldNotEqual, "20200101000000")
		})

		Convey("Disabled history recording skips the playback date stamp", func() {
			viper.Set(key.HistorySaveOnPlay, false)
			defer viper.Set(key.HistorySaveOnPlay, true)

			So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
			controller.StartPlayback()
			controller.StopPlayback()

			So(controller.History().Len(), ShouldEqual, 1)
			So(gateway.FindOne("dQw4w9WgXcQ").MustGet().PlaybackDate, ShouldBeEmpty)
		})
	})
}

func TestControllerChapters(t *testing.T) {
	Convey("Chapter actions", t, func() {
		viper.Set(key.HistorySaveOnPlay, true)
		stub := &stubPlayer{}
		controller, gateway := newTestController(stub)

		So(controller.LoadVideo("dQw4w9WgXcQ"), ShouldBeNil)
		controller.StartPlayback()
		controller.StopPlayback()

		Convey("AddChapterAtCurrentTime labels the marker with the position", func() {
			controller.Playback().UpdateCurrentTime(75)

			So(controller.AddChapterAtCurrentTime(), ShouldBeTrue)

			markers := controller.Chapters().Markers()
			So(markers, ShouldHaveLength, 1)
			So(markers[0].Time, ShouldEqual, 75)
			So(markers[0].Text, ShouldEqual, "01:15")
		})

		Convey("Duplicate positions are rejected", func() {
			controller.Playback().UpdateCurrentTime(75)
			So(controller.AddChapterAtCurrentTime(), ShouldBeTrue)
			So(controller.AddChapterAtCurrentTime(), ShouldBeFalse)
			So(controller.Chapters().Len(), ShouldEqual, 1)
		})

		Convey("Markers survive in the record store", func() {
			controller.AddChapter(120, "02:00")
			controller.AddChapter(30, "00:30")

			record, ok := gateway.FindOne("dQw4w9WgXcQ").Get()
			So(ok, ShouldBeTrue)
			So(record.ChapterList, ShouldHaveLength, 2)
			So(record.ChapterList[0].Time, ShouldEqual, 30)
			So(record.ChapterList[1].Time, ShouldEqual, 120)
		})

		Convey("RemoveChapter deletes the exact marker", func() {
			controller.AddChapter(60, "01:00")
			So(controller.RemoveChapter(61), ShouldBeFalse)
			So(controller.RemoveChapter(60), ShouldBeTrue)
			So(controller.Chapters().Len(), ShouldEqual, 0)
		})
	})
}

func TestControllerHistory(t *testing.T) {
	Convey("History actions", t, func() {
		viper.Set(key.HistorySaveOnPlay, true)
		stub := &stubPlayer{}
		controller, _ := newTestController(stub)

		play := func(videoID string) {
			So(controller.LoadVideo(videoID), ShouldBeNil)
			controller.StartPlayback()
			controller.StopPlayback()
		}

		Convey("Replaying moves the video to the front", func() {
			play("aaaaaaaaaaa")
			play("bbbbbbbbbbb")
			play("aaaaaaaaaaa")

			entries := controller.History().Entries()
			So(entries, ShouldHaveLength, 2)
			So(entries[0].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(entries[1].VideoID, ShouldEqual, "bbbbbbbbbbb")
		})

		Convey("SelectHistory cues the chosen video", func() {
			play("aaaaaaaaaaa")
			play("bbbbbbbbbbb")

			So(controller.SelectHistory("aaaaaaaaaaa"), ShouldBeNil)
			So(controller.Playback().VideoID(), ShouldEqual, "aaaaaaaaaaa")
			So(controller.SeekbarEnabled(), ShouldBeFalse)
		})
	})
}
