package cache

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vidmark-cli/vidmark/filesystem"
)

func TestCache(t *testing.T) {
	Convey("Metadata cache", t, func() {
		filesystem.SetMemMapFs()

		type payload struct {
			Title string `json:"title"`
		}

		Convey("Keys are deterministic and kind-scoped", func() {
			So(GenerateKey("dQw4w9WgXcQ", "oembed"), ShouldEqual, GenerateKey("dQw4w9WgXcQ", "oembed"))
			So(GenerateKey("dQw4w9WgXcQ", "oembed"), ShouldNotEqual, GenerateKey("dQw4w9WgXcQ", "thumbnail"))
		})

		Convey("Write then Read round-trips", func() {
			key := GenerateKey("dQw4w9WgXcQ", "oembed")
			So(Write(key, payload{Title: "some video"}), ShouldBeNil)

			var got payload
			So(Read(key, &got), ShouldBeTrue)
			So(got.Title, ShouldEqual, "some video")
		})

		Convey("Reading a missing key reports a miss", func() {
			var got payload
			So(Read(GenerateKey("aaaaaaaaaaa", "oembed"), &got), ShouldBeFalse)
		})
	})
}
