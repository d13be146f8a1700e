package streaming

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/cdlod/cache"
	"github.com/gogpu/cdlod/corelog"
	"github.com/gogpu/cdlod/coreerr"
)

// cacheMetadataVersion is the only version this module writes or accepts
// (§4.5 "Per-tile cache"); a mismatch invalidates the cache.
const cacheMetadataVersion uint32 = 1

// Metadata is the per-source alignment file (§6 "Tile cache metadata
// file").
type Metadata struct {
	Version     uint32
	XAlignment  uint32
	YAlignment  uint32
}

// FileCache reads and writes per-tile cache payloads and metadata files
// under root (§4.5). Decoded payloads are memoized in a sharded cache
// keyed by path so repeated Load calls for a still-resident tile (e.g. a
// recycled-then-reacquired chunk revisiting the same tile) skip the disk
// read.
type FileCache struct {
	root     string
	tileSize int
	payload  *cache.ShardedCache[string, []byte]
}

// NewFileCache creates a cache rooted at dir for tiles of tileSize x
// tileSize samples.
func NewFileCache(dir string, tileSize int) *FileCache {
	return &FileCache{
		root:     dir,
		tileSize: tileSize,
		payload:  cache.NewSharded[string, []byte](cache.DefaultCapacity, cache.StringHasher),
	}
}

// payloadPath builds the `tile_<source>_<tilesize>_<i>_<j>.tile` filename
// (§4.5).
func (c *FileCache) payloadPath(source string, i, j int32) string {
	name := fmt.Sprintf("tile_%s_%d_%d_%d.tile", source, c.tileSize, i, j)
	return filepath.Join(c.root, name)
}

func (c *FileCache) metadataPath(source string) string {
	return filepath.Join(c.root, fmt.Sprintf("tile_%s_%d.meta", source, c.tileSize))
}

// LoadPayload reads the raw sample bytes for tile (i,j) of source, or
// returns a zero-filled buffer if the tile is marked Empty. Missing files
// are treated as empty per §7 NotFound: "runtime path treats missing tile
// file as empty (zero heightfield)".
func (c *FileCache) LoadPayload(source string, i, j int32, empty bool) ([]byte, error) {
	size := c.tileSize * c.tileSize * 2 // sizeof(sample) = 2 bytes, §4.2
	if empty {
		return make([]byte, size), nil
	}

	path := c.payloadPath(source, i, j)
	if data, ok := c.payload.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			corelog.Get().Warn("tile cache payload missing, treating as empty", "path", path)
			return make([]byte, size), nil
		}
		return nil, fmt.Errorf("cdlod: read tile payload %q: %w", path, err)
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: tile payload %q is %d bytes, want %d", coreerr.ErrFormatMismatch, path, len(data), size)
	}

	c.payload.Set(path, data)
	return data, nil
}

// WritePayload writes tile (i,j)'s raw sample bytes for source to disk.
func (c *FileCache) WritePayload(source string, i, j int32, data []byte) error {
	path := c.payloadPath(source, i, j)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cdlod: write tile payload %q: %w", path, err)
	}
	c.payload.Set(path, data)
	return nil
}

// ReadMetadata reads and validates source's alignment metadata file
// (§6: "u32 version=1; u32 xAlignment; u32 yAlignment;").
func (c *FileCache) ReadMetadata(source string) (Metadata, error) {
	path := c.metadataPath(source)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, &coreerr.NotFoundError{Path: path, Err: err}
		}
		return Metadata{}, fmt.Errorf("cdlod: read cache metadata %q: %w", path, err)
	}
	if len(data) != 12 {
		return Metadata{}, fmt.Errorf("%w: cache metadata %q is %d bytes, want 12", coreerr.ErrFormatMismatch, path, len(data))
	}

	m := Metadata{
		Version:    binary.LittleEndian.Uint32(data[0:4]),
		XAlignment: binary.LittleEndian.Uint32(data[4:8]),
		YAlignment: binary.LittleEndian.Uint32(data[8:12]),
	}
	if m.Version != cacheMetadataVersion {
		return Metadata{}, &coreerr.FormatMismatchError{Path: path, Expected: cacheMetadataVersion, Got: m.Version}
	}
	return m, nil
}

// WriteMetadata writes source's alignment metadata file.
func (c *FileCache) WriteMetadata(source string, xAlignment, yAlignment uint32) error {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], cacheMetadataVersion)
	binary.LittleEndian.PutUint32(data[4:8], xAlignment)
	binary.LittleEndian.PutUint32(data[8:12], yAlignment)

	path := c.metadataPath(source)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cdlod: write cache metadata %q: %w", path, err)
	}
	return nil
}

// Invalidate matches metadata on disk against (xAlignment,yAlignment),
// reporting whether the existing cache can be reused (§4.5 step 2).
func (c *FileCache) Invalidate(source string, xAlignment, yAlignment uint32) bool {
	m, err := c.ReadMetadata(source)
	if err != nil {
		return false
	}
	return m.XAlignment == xAlignment && m.YAlignment == yAlignment
}
