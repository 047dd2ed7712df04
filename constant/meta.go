// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vidmark is the canonical application identifier used for filesystem paths and CLI branding.
	Vidmark = "vidmark"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for metadata and thumbnail requests.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// ThumbnailHost is the image CDN serving video thumbnails, keyed by video identifier.
	ThumbnailHost = "https://i.ytimg.com/vi"

	// WatchHost is the canonical watch page prefix for opening a video in the browser.
	WatchHost = "https://www.youtube.com/watch?v="

	// OEmbedEndpoint is the public oEmbed resolver used for title metadata lookups.
	OEmbedEndpoint = "https://www.youtube.com/oembed"
)

// Build metadata, injected through ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
