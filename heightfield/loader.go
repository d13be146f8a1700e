package heightfield

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/tiff"

	"github.com/gogpu/cdlod/coreerr"
)

// Config describes how a source image is turned into a Heightmap (§1: "the
// core receives a raw byte buffer and calls a decode operation" — the decode
// itself is delegated to image/png and golang.org/x/image/tiff rather than
// owned here).
type Config struct {
	MetersPerPixel       float64
	MinHeight, MaxHeight float64
	Ellipsoid            *EllipsoidConfig
	Use3DErrorCalc       bool // per-heightmap, not build-wide (SPEC_FULL supplement 1)
}

// Loader decodes a source image into a Heightmap padded up to the nearest
// 2^L+1 grid the tree depth requires.
type Loader struct {
	cfg Config
}

// NewLoader binds a Loader to cfg.
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load decodes r (PNG or TIFF, 8- or 16-bit grayscale) and returns a
// Heightmap whose side is the smallest 2^L+1 at least as large as the
// source image's larger dimension. Samples beyond the source image's
// extent are clamped to the nearest edge pixel.
func (l *Loader) Load(r io.Reader) (*Heightmap, error) {
	img, format, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("cdlod: decode heightmap image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: decoded image has zero extent", coreerr.ErrFormatMismatch)
	}

	treeDepth := treeDepthFor(maxInt(w, h))
	hm := NewHeightmap(treeDepth, l.cfg.MetersPerPixel, l.cfg.MinHeight, l.cfg.MaxHeight, l.cfg.Ellipsoid)
	hm.Use3DErrorCalc = l.cfg.Use3DErrorCalc

	for z := 0; z < hm.Side; z++ {
		sy := bounds.Min.Y + minInt(z, h-1)
		for x := 0; x < hm.Side; x++ {
			sx := bounds.Min.X + minInt(x, w-1)
			hm.SetHeight(x, z, l.heightAt(img, sx, sy))
		}
	}

	_ = format // retained for callers that want to log source format
	return hm, nil
}

// heightAt maps a decoded grayscale sample in [0,1] onto [MinHeight,MaxHeight].
func (l *Loader) heightAt(img image.Image, x, y int) float64 {
	g := grayAt(img, x, y)
	return l.cfg.MinHeight + g*(l.cfg.MaxHeight-l.cfg.MinHeight)
}

// grayAt reads a normalized [0,1] grayscale intensity regardless of the
// source's underlying color model: it weights the 16-bit-per-channel
// values from RGBA() into Rec. 709 luminance, so 16-bit TIFF sources do not
// lose precision through an 8-bit round trip.
func grayAt(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return lum / float64(0xffff)
}

func decode(r io.Reader) (image.Image, string, error) {
	peekBuf := make([]byte, 8)
	n, err := io.ReadFull(r, peekBuf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, "", err
	}
	full := io.MultiReader(bytes.NewReader(peekBuf[:n]), r)

	if isPNG(peekBuf[:n]) {
		img, err := png.Decode(full)
		return img, "png", err
	}
	img, err := tiff.Decode(full)
	return img, "tiff", err
}

func isPNG(header []byte) bool {
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if len(header) < len(sig) {
		return false
	}
	for i, b := range sig {
		if header[i] != b {
			return false
		}
	}
	return true
}

// treeDepthFor returns the smallest L such that 2^L+1 >= size.
func treeDepthFor(size int) int {
	if size <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(size - 1))))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
