// Package text bakes OpenType glyphs into an alpha atlas. It is the data
// groundwork for the text-rendering milestone: the atlas image and glyph
// metrics are backend-agnostic, and uploading the image as a texture is
// left to whichever backend grows a textured draw path.
package text

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// asciiFirst..asciiLast is the baked glyph range (printable ASCII).
const (
	asciiFirst = rune(32)
	asciiLast  = rune(126)
)

const atlasPadding = 1

// Glyph describes one character's placement and metrics in the atlas.
type Glyph struct {
	// Atlas rectangle in pixels, top-left origin.
	X, Y          float32
	Width, Height float32
	// Bearing from the baseline in pixels.
	BearingX, BearingY float32
	// Horizontal advance in pixels.
	Advance float32
}

// Atlas is a baked glyph set: a single-channel alpha image plus per-glyph
// metrics.
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight float32
}

// BuildAtlas parses an OpenType font and bakes the printable-ASCII glyph
// set at the given pixel size using a simple row packer.
func BuildAtlas(fontData []byte, pixelSize int) (*Atlas, error) {
	if pixelSize <= 0 {
		return nil, fmt.Errorf("text: pixel size %d must be positive", pixelSize)
	}

	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := float32(metrics.Height.Round())

	// First pass: dry-run the packer to size the atlas. The second pass
	// replays the exact same placements, so every glyph lands in bounds.
	atlasW := nextAtlasWidth(pixelSize)
	sizer := rowPacker{width: atlasW}
	for r := asciiFirst; r <= asciiLast; r++ {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		if gw == 0 || gh == 0 {
			continue
		}
		sizer.place(gw, gh)
	}
	atlasH := sizer.height()
	if atlasH == 0 {
		atlasH = pixelSize
	}

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))
	glyphs := make(map[rune]Glyph, int(asciiLast-asciiFirst)+1)

	// Second pass: render each glyph into the atlas and record metrics.
	packer := rowPacker{width: atlasW}
	for r := asciiFirst; r <= asciiLast; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		adv := float32(math.Round(float64(advance) / 64.0))

		if gw == 0 || gh == 0 {
			// space and friends: advance only, nothing to draw
			glyphs[r] = Glyph{Advance: adv}
			continue
		}

		x, y := packer.place(gw, gh)
		dstRect := image.Rect(x, y, x+gw, y+gh)
		draw.Draw(atlasImg, dstRect, mask, maskp, draw.Src)

		glyphs[r] = Glyph{
			X:        float32(x),
			Y:        float32(y),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  adv,
		}
	}

	return &Atlas{Image: atlasImg, Glyphs: glyphs, LineHeight: lineHeight}, nil
}

// rowPacker assigns left-to-right, top-to-bottom cells in a fixed-width
// atlas, breaking to a new row when a cell would overflow the width.
type rowPacker struct {
	width      int
	x, y, rowH int
}

// place reserves a w by h cell and returns its top-left corner.
func (p *rowPacker) place(w, h int) (x, y int) {
	if p.x+w > p.width {
		p.x = 0
		p.y += p.rowH + atlasPadding
		p.rowH = 0
	}
	x, y = p.x, p.y
	p.x += w + atlasPadding
	if h > p.rowH {
		p.rowH = h
	}
	return x, y
}

// height returns the total height consumed so far, zero if nothing has
// been placed.
func (p *rowPacker) height() int {
	if p.rowH == 0 {
		return 0
	}
	return p.y + p.rowH + atlasPadding
}

// Measure returns the pixel width of a single-line string using the
// atlas's advances. Runes outside the baked set are skipped.
func (a *Atlas) Measure(s string) float32 {
	var w float32
	for _, r := range s {
		if g, ok := a.Glyphs[r]; ok {
			w += g.Advance
		}
	}
	return w
}

// nextAtlasWidth picks a power-of-two atlas width comfortably wider than
// one glyph row at the requested size.
func nextAtlasWidth(pixelSize int) int {
	w := 256
	for w < pixelSize*12 {
		w *= 2
	}
	return w
}
