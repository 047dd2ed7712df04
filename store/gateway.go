package store

import (
	"github.com/metafates/gache"
	"github.com/samber/mo"

	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/log"
)

// Fields names the record fields that UpdateFields may merge into an existing
// record. Absent options leave the stored value untouched.
type Fields struct {
	ChapterList  mo.Option[[]ChapterMarker]
	PlaybackDate mo.Option[string]
}

// Gateway is a thin, single-writer-per-key abstraction over the record file.
//
// Records are stored as an ordered slice so FindAll preserves insertion order,
// which seeds the visible history order across restarts. Storage failures are
// logged and swallowed; callers proceed with in-memory state only.
type Gateway struct {
	cacher *gache.Cache[[]*VideoRecord]
}

// NewGateway opens a gateway over the record file at the given path.
func NewGateway(path string) *Gateway {
	return &Gateway{
		cacher: gache.New[[]*VideoRecord](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// records loads the full collection, degrading to empty on storage errors.
func (g *Gateway) records() []*VideoRecord {
	cached, expired, err := g.cacher.Get()
	if err != nil {
		log.Errorf("read record store: %v", err)
		return nil
	}
	if expired || cached == nil {
		return nil
	}
	return cached
}

// write persists the full collection snapshot. A later write always carries
// the complete current state, so last-write-wins is safe.
func (g *Gateway) write(records []*VideoRecord) {
	if err := g.cacher.Set(records); err != nil {
		log.Errorf("write record store: %v", err)
	}
}

// FindOne returns the record for a video identifier, or None when the video
// has never been seen.
func (g *Gateway) FindOne(videoID string) mo.Option[*VideoRecord] {
	for _, record := range g.records() {
		if record.VideoID == videoID {
			return mo.Some(record)
		}
	}
	return mo.None[*VideoRecord]()
}

// FindAll returns every persisted record in insertion order.
func (g *Gateway) FindAll() []*VideoRecord {
	return g.records()
}

// Insert appends a new record. Inserting an identifier that already has a
// record is a no-op, preserving the one-record-per-video invariant.
func (g *Gateway) Insert(record *VideoRecord) {
	records := g.records()
	for _, existing := range records {
		if existing.VideoID == record.VideoID {
			log.Warnf("insert: record for %s already exists", record.VideoID)
			return
		}
	}
	g.write(append(records, record))
}

// UpdateFields merges the named fields into the record for a video identifier.
// Unnamed fields are never removed. Updating an absent record is a no-op.
func (g *Gateway) UpdateFields(videoID string, fields Fields) {
	records := g.records()
	for _, record := range records {
		if record.VideoID != videoID {
			continue
		}
		if chapters, ok := fields.ChapterList.Get(); ok {
			record.ChapterList = chapters
		}
		if date, ok := fields.PlaybackDate.Get(); ok {
			record.PlaybackDate = date
		}
		g.write(records)
		return
	}
	log.Warnf("update: no record for %s", videoID)
}
