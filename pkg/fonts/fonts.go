// Package fonts provides the typefaces used for raster text.
//
// The Go fonts ship as embedded data in golang.org/x/image, so the
// binary needs no font files on disk and output is identical across
// systems.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	parseOnce   sync.Once
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
	parseErr    error
)

func parse() {
	regularFont, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	boldFont, parseErr = opentype.Parse(gobold.TTF)
}

// Regular returns a Go Regular face at the given point size.
func Regular(points float64) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	return newFace(regularFont, points)
}

// Bold returns a Go Bold face at the given point size. Used for
// titles, branch labels, and commit letters.
func Bold(points float64) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	return newFace(boldFont, points)
}

func newFace(f *sfnt.Font, points float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
