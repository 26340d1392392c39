// Package raster renders scenes to raster images.
//
// The canvas uses the story's fixed coordinate system (x in [0,6],
// y in [0,4], y up) and maps it to pixels at a configurable scale.
// Drawing goes through fogleman/gg; text is set in the embedded Go
// faces, so output is byte-identical across runs and machines.
package raster

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/branchplot/branchplot/pkg/errors"
	"github.com/branchplot/branchplot/pkg/fonts"
	"github.com/branchplot/branchplot/pkg/scene"
)

// Scene coordinate system. The top band holds the title, the bottom
// band keeps legend captions clear of the image edge.
const (
	boundsX    = 6.0
	boundsY    = 4.0
	topBand    = 0.6
	bottomBand = 0.3

	commitRadius = 0.3
	legendRadius = 0.2
	branchLabelX = 0.5
	legendY      = 0.3
	captionY     = 0.0

	// arc3Rad bows merge arrows: the control point sits at this
	// fraction of the chord length, perpendicular at the midpoint.
	arc3Rad = 0.3
)

// DefaultScale is the pixel size of one scene unit (1200x980 canvas).
const DefaultScale = 200.0

// Options configures raster rendering.
type Options struct {
	// Scale is the number of pixels per scene unit. Zero means
	// DefaultScale.
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// Canvas is a scene under construction: a pixel context plus the
// coordinate transform and the faces used for text.
type Canvas struct {
	dc    *gg.Context
	scale float64

	titleFace   font.Face
	labelFace   font.Face
	legendFace  font.Face
	captionFace font.Face
}

// NewCanvas initializes a canvas with fixed bounds, draws the title,
// the branch-name labels at their fixed rows, and the legend strip
// (one swatch per palette entry, in palette order). The returned
// canvas is ready for branch lines, commits, and arrows.
func NewCanvas(story *scene.Story, title string, opts Options) (*Canvas, error) {
	s := opts.scale()
	w := int(math.Round(boundsX * s))
	h := int(math.Round((topBand + boundsY + bottomBand) * s))

	c := &Canvas{dc: gg.NewContext(w, h), scale: s}
	if err := c.loadFaces(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "load typefaces")
	}

	c.dc.SetRGB(1, 1, 1)
	c.dc.Clear()

	// Title, centered in the top band.
	c.dc.SetFontFace(c.titleFace)
	c.dc.SetRGB(0, 0, 0)
	c.dc.DrawStringAnchored(title, float64(w)/2, topBand*s/2, 0.5, 0.5)

	// Branch labels, right-aligned just left of the history.
	c.dc.SetFontFace(c.labelFace)
	for _, b := range story.Branches {
		px, py := c.pt(branchLabelX, float64(b.Row))
		c.dc.DrawStringAnchored(b.Name, px, py, 1, 0.5)
	}

	c.drawLegend(story.Palette)
	return c, nil
}

func (c *Canvas) loadFaces() error {
	var err error
	if c.titleFace, err = fonts.Bold(0.16 * c.scale); err != nil {
		return err
	}
	if c.labelFace, err = fonts.Bold(0.12 * c.scale); err != nil {
		return err
	}
	if c.legendFace, err = fonts.Bold(0.10 * c.scale); err != nil {
		return err
	}
	c.captionFace, err = fonts.Regular(0.09 * c.scale)
	return err
}

// pt maps scene coordinates to pixels (y up to y down).
func (c *Canvas) pt(x, y float64) (float64, float64) {
	return x * c.scale, (topBand + boundsY - y) * c.scale
}

// drawLegend renders one swatch and caption per palette entry.
func (c *Canvas) drawLegend(palette []scene.Swatch) {
	for i, sw := range palette {
		cx := float64(i) + 0.7
		c.drawDisc(cx, legendY, legendRadius, sw.Color)

		px, py := c.pt(cx, legendY)
		c.dc.SetFontFace(c.legendFace)
		c.dc.SetRGB(0, 0, 0)
		c.dc.DrawStringAnchored(sw.Label, px, py, 0.5, 0.5)

		px, py = c.pt(cx, captionY)
		c.dc.SetFontFace(c.captionFace)
		c.dc.DrawStringAnchored("Commit "+sw.Label, px, py, 0.5, 0.5)
	}
}

// DrawBranchLine draws a horizontal branch segment at row y.
func (c *Canvas) DrawBranchLine(xStart, xEnd, y float64) {
	x0, y0 := c.pt(xStart, y)
	x1, y1 := c.pt(xEnd, y)
	c.dc.SetRGB(0, 0, 0)
	c.dc.SetLineWidth(0.02 * c.scale)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

// DrawCommit places a filled, outlined circle at (x, y) with the
// commit label centered inside it.
func (c *Canvas) DrawCommit(x, y float64, label, hexColor string) {
	c.drawDisc(x, y, commitRadius, hexColor)

	px, py := c.pt(x, y)
	c.dc.SetFontFace(c.labelFace)
	c.dc.SetRGB(0, 0, 0)
	c.dc.DrawStringAnchored(label, px, py, 0.5, 0.5)
}

// drawDisc fills a circle with the given hex color and outlines it in
// black.
func (c *Canvas) drawDisc(x, y, r float64, hexColor string) {
	px, py := c.pt(x, y)
	c.dc.DrawCircle(px, py, r*c.scale)
	c.dc.SetHexColor(hexColor)
	c.dc.FillPreserve()
	c.dc.SetRGB(0, 0, 0)
	c.dc.SetLineWidth(0.01 * c.scale)
	c.dc.Stroke()
}

// DrawArrow draws a curved red arrow from (x0, y0) to (x1, y1),
// depicting merge parentage. The curve is quadratic with its control
// point offset perpendicular to the chord at the midpoint.
func (c *Canvas) DrawArrow(x0, y0, x1, y1 float64) {
	px0, py0 := c.pt(x0, y0)
	px1, py1 := c.pt(x1, y1)

	dx, dy := px1-px0, py1-py0
	cx := (px0+px1)/2 - arc3Rad*dy
	cy := (py0+py1)/2 + arc3Rad*dx

	c.dc.SetRGB(1, 0, 0)
	c.dc.SetLineWidth(0.0125 * c.scale)
	c.dc.MoveTo(px0, py0)
	c.dc.QuadraticTo(cx, cy, px1, py1)
	c.dc.Stroke()

	c.drawArrowHead(cx, cy, px1, py1)
}

// drawArrowHead fills a triangular head at the destination, oriented
// along the curve's end tangent (which points from the control point
// to the end point).
func (c *Canvas) drawArrowHead(cx, cy, px, py float64) {
	angle := math.Atan2(py-cy, px-cx)
	length := 0.15 * c.scale
	spread := 25 * math.Pi / 180

	c.dc.MoveTo(px, py)
	c.dc.LineTo(px-length*math.Cos(angle-spread), py-length*math.Sin(angle-spread))
	c.dc.LineTo(px-length*math.Cos(angle+spread), py-length*math.Sin(angle+spread))
	c.dc.ClosePath()
	c.dc.SetRGB(1, 0, 0)
	c.dc.Fill()
}

// Image returns the composed image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Render composes one scene: canvas setup, then the scene's literal
// sequence of branch lines, commit markers, and merge arrows.
func Render(story *scene.Story, sc *scene.Scene, opts Options) (image.Image, error) {
	c, err := NewCanvas(story, sc.Title, opts)
	if err != nil {
		return nil, err
	}

	for _, ln := range sc.Lines {
		row, ok := story.Row(ln.Branch)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown branch %q", ln.Branch)
		}
		c.DrawBranchLine(ln.From, ln.To, float64(row))
	}

	for _, cm := range sc.Commits {
		row, ok := story.Row(cm.Branch)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown branch %q", cm.Branch)
		}
		color, ok := story.Color(cm.Label)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "label %q not in palette", cm.Label)
		}
		c.DrawCommit(cm.X, float64(row), cm.Label, color)
	}

	for _, ar := range sc.Arrows {
		fromRow, ok := story.Row(ar.FromBranch)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown branch %q", ar.FromBranch)
		}
		toRow, ok := story.Row(ar.ToBranch)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown branch %q", ar.ToBranch)
		}
		c.DrawArrow(ar.FromX, float64(fromRow), ar.ToX, float64(toRow))
	}

	return c.Image(), nil
}

// EncodePNG encodes an image as PNG bytes. Encoding is deterministic:
// the same image always yields the same bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}
