// Package oembed looks up video titles through the public oEmbed endpoint.
// Lookups are best-effort: history and chapters work fine without titles,
// so every failure degrades to an absent result.
package oembed

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/constant"
	"github.com/vidmark-cli/vidmark/internal/cache"
	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/log"
	"github.com/vidmark-cli/vidmark/network"
	"github.com/vidmark-cli/vidmark/util"
)

// Metadata is the subset of the oEmbed response the application uses.
type Metadata struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// Lookup resolves the title metadata for a video identifier. Results are
// cached on disk; a disabled metadata.fetch_titles setting or any network
// failure yields None.
func Lookup(videoID string) mo.Option[Metadata] {
	if !viper.GetBool(key.MetadataFetchTitles) {
		return mo.None[Metadata]()
	}

	cacheKey := cache.GenerateKey(videoID, "oembed")

	var cached Metadata
	if cache.Read(cacheKey, &cached) {
		return mo.Some(cached)
	}

	metadata, err := fetch(videoID)
	if err != nil {
		log.Warnf("oembed lookup for %s: %v", videoID, err)
		return mo.None[Metadata]()
	}

	if err := cache.Write(cacheKey, metadata); err != nil {
		log.Warnf("cache oembed metadata: %v", err)
	}
	return mo.Some(metadata)
}

// Cached returns previously fetched metadata without touching the network.
func Cached(videoID string) mo.Option[Metadata] {
	var cached Metadata
	if cache.Read(cache.GenerateKey(videoID, "oembed"), &cached) {
		return mo.Some(cached)
	}
	return mo.None[Metadata]()
}

func fetch(videoID string) (metadata Metadata, err error) {
	endpoint := fmt.Sprintf(
		"%s?url=%s&format=json",
		constant.OEmbedEndpoint,
		url.QueryEscape(constant.WatchHost+videoID),
	)

	resp, err := network.Get(endpoint)
	if err != nil {
		return
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != 200 {
		err = fmt.Errorf("oembed endpoint returned %s", resp.Status)
		return
	}

	err = json.NewDecoder(resp.Body).Decode(&metadata)
	return
}
