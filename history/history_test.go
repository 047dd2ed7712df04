package history

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/store"
)

func newTestLedger() (*Ledger, *store.Gateway) {
	filesystem.SetMemMapFs()
	gateway := store.NewGateway(filepath.Join("test", "chapterlist.json"))
	ledger := NewLedger(gateway)
	ledger.now = func() time.Time {
		return time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	}
	return ledger, gateway
}

func TestThumbnailURL(t *testing.T) {
	Convey("ThumbnailURL", t, func() {
		So(ThumbnailURL("dQw4w9WgXcQ"), ShouldEqual, "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg")
	})
}

func TestEnsure(t *testing.T) {
	Convey("Given an empty history", t, func() {
		ledger, gateway := newTestLedger()

		Convey("A new id prepends an entry and creates a pristine record", func() {
			ledger.Ensure("aaaaaaaaaaa")

			So(ledger.Len(), ShouldEqual, 1)
			So(ledger.Entries()[0].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(ledger.Entries()[0].Thumbnail, ShouldEqual, ThumbnailURL("aaaaaaaaaaa"))

			record := gateway.FindOne("aaaaaaaaaaa").MustGet()
			So(record.ChapterList, ShouldBeEmpty)
			So(record.PlaybackDate, ShouldBeEmpty)
		})

		Convey("A known id is left untouched", func() {
			ledger.Ensure("aaaaaaaaaaa")
			ledger.Ensure("bbbbbbbbbbb")
			ledger.Ensure("aaaaaaaaaaa")

			entries := ledger.Entries()
			So(len(entries), ShouldEqual, 2)
			So(entries[0].VideoID, ShouldEqual, "bbbbbbbbbbb")
			So(entries[1].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(gateway.FindOne("aaaaaaaaaaa").MustGet().PlaybackDate, ShouldBeEmpty)
		})
	})
}

func TestRecordPlay(t *testing.T) {
	Convey("Given an empty history", t, func() {
		ledger, gateway := newTestLedger()

		Convey("A new id is registered and stamped in one step", func() {
			ledger.RecordPlay("aaaaaaaaaaa")

			So(ledger.Len(), ShouldEqual, 1)
			So(ledger.Entries()[0].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(gateway.FindOne("aaaaaaaaaaa").MustGet().PlaybackDate, ShouldEqual, "20260307120000")
		})
	})

	Convey("Given a history of three videos", t, func() {
		ledger, gateway := newTestLedger()
		for _, id := range []string{"ccccccccccc", "bbbbbbbbbbb", "aaaaaaaaaaa"} {
			ledger.RecordPlay(id)
		}
		// Most recent first: a, b, c

		Convey("Replaying the front id leaves order unchanged", func() {
			ledger.RecordPlay("aaaaaaaaaaa")

			entries := ledger.Entries()
			So(len(entries), ShouldEqual, 3)
			So(entries[0].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(entries[1].VideoID, ShouldEqual, "bbbbbbbbbbb")
			So(entries[2].VideoID, ShouldEqual, "ccccccccccc")
		})

		Convey("Replaying a middle id relocates it to the front", func() {
			ledger.RecordPlay("ccccccccccc")

			entries := ledger.Entries()
			So(len(entries), ShouldEqual, 3)
			So(entries[0].VideoID, ShouldEqual, "ccccccccccc")
			So(entries[1].VideoID, ShouldEqual, "aaaaaaaaaaa")
			So(entries[2].VideoID, ShouldEqual, "bbbbbbbbbbb")
		})

		Convey("Replaying a known id stamps the persisted playback date", func() {
			ledger.RecordPlay("bbbbbbbbbbb")

			record := gateway.FindOne("bbbbbbbbbbb").MustGet()
			So(record.PlaybackDate, ShouldEqual, "20260307120000")
		})
	})
}

func TestLoadAll(t *testing.T) {
	Convey("LoadAll seeds the list from storage iteration order", t, func() {
		ledger, gateway := newTestLedger()
		gateway.Insert(store.NewRecord("aaaaaaaaaaa"))
		gateway.Insert(store.NewRecord("bbbbbbbbbbb"))

		ledger.LoadAll(gateway.FindAll())

		entries := ledger.Entries()
		So(len(entries), ShouldEqual, 2)
		So(entries[0].VideoID, ShouldEqual, "aaaaaaaaaaa")
		So(entries[1].VideoID, ShouldEqual, "bbbbbbbbbbb")
		So(entries[0].Thumbnail, ShouldEqual, ThumbnailURL("aaaaaaaaaaa"))
	})
}
