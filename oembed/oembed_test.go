package oembed

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/internal/cache"
	"github.com/vidmark-cli/vidmark/key"
)

func TestLookup(t *testing.T) {
	Convey("oEmbed lookup", t, func() {
		filesystem.SetMemMapFs()

		Convey("Disabled title fetching yields no metadata", func() {
			viper.Set(key.MetadataFetchTitles, false)
			defer viper.Set(key.MetadataFetchTitles, true)

			So(Lookup("dQw4w9WgXcQ").IsAbsent(), ShouldBeTrue)
		})

		Convey("A cached entry is served without a network round trip", func() {
			viper.Set(key.MetadataFetchTitles, true)

			cacheKey := cache.GenerateKey("dQw4w9WgXcQ", "oembed")
			So(cache.Write(cacheKey, Metadata{Title: "some video", AuthorName: "someone"}), ShouldBeNil)

			metadata, ok := Lookup("dQw4w9WgXcQ").Get()
			So(ok, ShouldBeTrue)
			So(metadata.Title, ShouldEqual, "some video")
			So(metadata.AuthorName, ShouldEqual, "someone")
		})
	})
}
