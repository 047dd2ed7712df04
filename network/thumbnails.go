package network

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/key"
	"github.com/vidmark-cli/vidmark/log"
	"github.com/vidmark-cli/vidmark/util"
	"github.com/vidmark-cli/vidmark/where"
)

// PrefetchThumbnail downloads a video's thumbnail into the local thumbnail
// cache in the background, so external viewers can open it without a network
// round trip. An already cached thumbnail or a disabled prefetch setting
// makes this a no-op.
func PrefetchThumbnail(videoID, url string) {
	if !viper.GetBool(key.HistoryThumbnailPrefetch) {
		return
	}

	path := ThumbnailPath(videoID)
	if exists, _ := filesystem.API().Exists(path); exists {
		return
	}

	go func() {
		if err := download(url, path); err != nil {
			log.Warnf("prefetch thumbnail for %s: %v", videoID, err)
		}
	}()
}

// ThumbnailPath returns the local cache location of a video's thumbnail.
// The file may not exist yet.
func ThumbnailPath(videoID string) string {
	return filepath.Join(where.Thumbnails(), videoID+".jpg")
}

func download(url, path string) error {
	resp, err := Get(url)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != 200 {
		return fmt.Errorf("thumbnail host returned %s", resp.Status)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return filesystem.API().WriteFile(path, contents, 0644)
}
