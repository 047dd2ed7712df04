package playback

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/key"
)

// fakePlayer records commands and lets tests control query results.
type fakePlayer struct {
	mu sync.Mutex

	cued          []string
	playCalls     int
	pauseCalls    int
	muteCalls     int
	unmuteCalls   int
	volume        int
	seekedTo      int
	seekAhead     bool
	width, height int

	durationCalls   int
	duration        float64
	durationRelease chan struct{} // when non-nil, GetDuration blocks on it

	currentTime float64
	timeQueried chan struct{} // when non-nil, receives one signal per query

	exited chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{exited: make(chan struct{})}
}

func (f *fakePlayer) CueVideoByID(videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cued = append(f.cued, videoID)
	return nil
}

func (f *fakePlayer) PlayVideo() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls++
	return nil
}

func (f *fakePlayer) PauseVideo() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauseCalls++
	return nil
}

func (f *fakePlayer) Mute() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muteCalls++
	return nil
}

func (f *fakePlayer) UnMute() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unmuteCalls++
	return nil
}

func (f *fakePlayer) SetVolume(volume int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
	return nil
}

func (f *fakePlayer) SetSize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
	return nil
}

func (f *fakePlayer) SeekTo(seconds int, allowSeekAhead bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seekedTo = seconds
	f.seekAhead = allowSeekAhead
	return nil
}

func (f *fakePlayer) GetCurrentTime() (float64, error) {
	f.mu.Lock()
	signal := f.timeQueried
	value := f.currentTime
	f.mu.Unlock()

	if signal != nil {
		signal <- struct{}{}
	}
	return value, nil
}

func (f *fakePlayer) GetDuration() (float64, error) {
	f.mu.Lock()
	f.durationCalls++
	release := f.durationRelease
	value := f.duration
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return value, nil
}

func (f *fakePlayer) IsRunning() bool       { return true }
func (f *fakePlayer) Close() error          { return nil }
func (f *fakePlayer) Wait() <-chan struct{} { return f.exited }

func (f *fakePlayer) calls() (duration int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.durationCalls
}

func TestSessionState(t *testing.T) {
	Convey("Playback session", t, func() {
		fake := newFakePlayer()
		session := NewSession(fake)

		Convey("Load cues the video and resets transient state", func() {
			session.UpdateCurrentTime(42)
			session.OnEnded()

			So(session.Load("dQw4w9WgXcQ"), ShouldBeNil)

			So(fake.cued, ShouldResemble, []string{"dQw4w9WgXcQ"})
			So(session.VideoID(), ShouldEqual, "dQw4w9WgXcQ")
			So(session.CurrentTime(), ShouldEqual, 0)
			So(session.Duration(), ShouldEqual, 0)
			So(session.IsEnded(), ShouldBeFalse)
			So(session.IsPlaying(), ShouldBeFalse)
		})

		Convey("Play clears the ended flag", func() {
			session.OnEnded()
			So(session.IsEnded(), ShouldBeTrue)

			session.Play()

			So(session.IsEnded(), ShouldBeFalse)
			So(session.IsPlaying(), ShouldBeTrue)
			So(fake.playCalls, ShouldEqual, 1)
		})

		Convey("Pause stops playback without touching the ended flag", func() {
			session.Play()
			session.Pause()

			So(session.IsPlaying(), ShouldBeFalse)
			So(fake.pauseCalls, ShouldEqual, 1)
		})

		Convey("SetVolume clears mute and clamps to the valid range", func() {
			session.ToggleMute()
			So(session.IsMuted(), ShouldBeTrue)

			session.SetVolume(130)

			So(session.IsMuted(), ShouldBeFalse)
			So(session.Volume(), ShouldEqual, 100)
			So(fake.unmuteCalls, ShouldBeGreaterThanOrEqualTo, 1)
			So(fake.volume, ShouldEqual, 100)

			session.SetVolume(-5)
			So(session.Volume(), ShouldEqual, 0)
		})

		Convey("ToggleMute flips and issues the matching command", func() {
			session.ToggleMute()
			So(session.IsMuted(), ShouldBeTrue)
			So(fake.muteCalls, ShouldEqual, 1)

			session.ToggleMute()
			So(session.IsMuted(), ShouldBeFalse)
			So(fake.unmuteCalls, ShouldEqual, 1)
		})

		Convey("UpdateCurrentTime ceils fractional positions", func() {
			session.UpdateCurrentTime(12.1)
			So(session.CurrentTime(), ShouldEqual, 13)

			session.UpdateCurrentTime(30)
			So(session.CurrentTime(), ShouldEqual, 30)
		})

		Convey("Seek stores the position and allows seeking ahead", func() {
			session.Seek(95)

			So(session.CurrentTime(), ShouldEqual, 95)
			So(fake.seekedTo, ShouldEqual, 95)
			So(fake.seekAhead, ShouldBeTrue)
		})

		Convey("Resize forwards the dimensions", func() {
			session.Resize(1280, 720)

			So(fake.width, ShouldEqual, 1280)
			So(fake.height, ShouldEqual, 720)
		})
	})
}

func TestFetchDuration(t *testing.T) {
	Convey("Duration fetching", t, func() {
		fake := newFakePlayer()
		session := NewSession(fake)

		Convey("Rounds the reported duration", func() {
			fake.duration = 213.7

			session.FetchDuration()

			So(func() int {
				for i := 0; i < 100; i++ {
					if d := session.Duration(); d != 0 {
						return d
					}
					time.Sleep(time.Millisecond)
				}
				return session.Duration()
			}(), ShouldEqual, 214)
		})

		Convey("A second call while the first is in flight issues one query", func() {
			release := make(chan struct{})
			fake.durationRelease = release
			fake.duration = 120

			session.FetchDuration()
			session.FetchDuration()

			close(release)

			for i := 0; i < 100 && session.Duration() == 0; i++ {
				time.Sleep(time.Millisecond)
			}

			So(fake.calls(), ShouldEqual, 1)
			So(session.Duration(), ShouldEqual, 120)
		})

		Convey("A known duration suppresses further queries", func() {
			fake.duration = 90

			session.FetchDuration()
			for i := 0; i < 100 && session.Duration() == 0; i++ {
				time.Sleep(time.Millisecond)
			}

			session.FetchDuration()
			time.Sleep(5 * time.Millisecond)

			So(fake.calls(), ShouldEqual, 1)
		})
	})
}

func TestSeekBarFill(t *testing.T) {
	Convey("Seek bar fill", t, func() {
		fake := newFakePlayer()
		session := NewSession(fake)

		Convey("Is zero while the duration is unknown", func() {
			session.UpdateCurrentTime(30)
			So(session.SeekBarFill(), ShouldEqual, 0)
		})

		Convey("Nudges small fractions so the fill stays visible", func() {
			fake.duration = 100
			session.FetchDuration()
			for i := 0; i < 100 && session.Duration() == 0; i++ {
				time.Sleep(time.Millisecond)
			}

			session.UpdateCurrentTime(10)
			So(session.SeekBarFill(), ShouldAlmostEqual, 0.11, 1e-9)

			session.UpdateCurrentTime(50)
			So(session.SeekBarFill(), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}

func TestTracking(t *testing.T) {
	Convey("Time tracking loop", t, func() {
		viper.Set(key.PlayerPollInterval, 5)
		defer viper.Set(key.PlayerPollInterval, 500)

		fake := newFakePlayer()
		fake.currentTime = 17.3
		queried := make(chan struct{}, 16)
		fake.timeQueried = queried

		session := NewSession(fake)

		Convey("Polls the player and applies the ceiled position", func() {
			session.StartTracking()
			So(session.Tracking(), ShouldBeTrue)

			<-queried
			<-queried

			session.StopTracking()
			So(session.Tracking(), ShouldBeFalse)
			So(session.CurrentTime(), ShouldEqual, 18)
		})

		Convey("Starting twice keeps a single loop", func() {
			session.StartTracking()
			session.StartTracking()

			<-queried
			session.StopTracking()

			So(session.Tracking(), ShouldBeFalse)
		})

		Convey("Stopping an idle session is a no-op", func() {
			session.StopTracking()
			So(session.Tracking(), ShouldBeFalse)
		})
	})
}
