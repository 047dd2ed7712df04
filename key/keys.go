// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys maintain the state and configuration for the external video player.
const (
	PlayerDefault      = "player.default"
	PlayerVolume       = "player.volume"
	PlayerPollInterval = "player.poll_interval_ms"
)

// History Tracking - these keys configure the persistence of playback records.
const (
	HistorySaveOnPlay        = "history.save_on_play"
	HistoryThumbnailPrefetch = "history.thumbnail_prefetch"
)

// Metadata Retrieval - these keys govern title lookups for history display.
const (
	MetadataFetchTitles = "metadata.fetch_titles"
)

// Console - these keys define the interactive control surface behavior.
const (
	ConsoleSeekStep   = "console.seek_step"
	ConsoleVolumeStep = "console.volume_step"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
