package flat

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TTFont draws text with a rasterized TrueType font in a single colour,
// optionally surrounded by a black border.
type TTFont struct {
	raster       *RasterFont
	rgb          uint32
	borderSize   int
	antialiasing bool
	sjis         bool
	highRes      bool
}

var _ Font = (*TTFont)(nil)

// NewTTFont wraps raster.  rgb is 0xRRGGBB.  When sjis is set the text
// passed to the font is Shift-JIS encoded.
func NewTTFont(raster *RasterFont, rgb uint32, borderSize int, antialiasing, sjis bool) *TTFont {
	if borderSize < 0 {
		borderSize = 0
	}
	return &TTFont{
		raster:       raster,
		rgb:          rgb & 0xffffff,
		borderSize:   borderSize,
		antialiasing: antialiasing,
		sjis:         sjis,
	}
}

func (f *TTFont) Raster() *RasterFont {
	return f.raster
}

func (f *TTFont) RGB() uint32 {
	return f.rgb
}

func (f *TTFont) Color() color.RGBA {
	return color.RGBA{
		R: uint8(f.rgb >> 16),
		G: uint8(f.rgb >> 8),
		B: uint8(f.rgb),
		A: 0xff,
	}
}

func (f *TTFont) BorderSize() int {
	return f.borderSize
}

func (f *TTFont) Antialiasing() bool {
	return f.antialiasing
}

func (f *TTFont) SJIS() bool {
	return f.sjis
}

// SetHighRes marks the font for drawing at screen resolution instead of the
// game's native resolution.
func (f *TTFont) SetHighRes(highRes bool) {
	f.highRes = highRes
}

func (f *TTFont) HighRes() bool {
	return f.highRes
}

func (f *TTFont) Height() int {
	return f.raster.Height() + 2*f.borderSize
}

func (f *TTFont) text(text string) string {
	if f.sjis {
		return decodeSJIS(text)
	}
	return text
}

func (f *TTFont) TextSize(text string) (width, height int) {
	advance := font.MeasureString(f.raster.Face(), f.text(text))
	return advance.Ceil() + 2*f.borderSize, f.Height()
}

// mask renders text into an alpha mask sized to TextSize.
func (f *TTFont) mask(text string) *image.Alpha {
	w, h := f.TextSize(text)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	face := f.raster.Face()
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(f.borderSize, f.borderSize+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(f.text(text))

	if !f.antialiasing || f.raster.Mode() == RenderMonochrome {
		for i, a := range mask.Pix {
			if a >= 0x80 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}

func (f *TTFont) Draw(dst draw.Image, text string, x, y int) {
	if text == "" {
		return
	}
	mask := f.mask(text)
	r := mask.Bounds().Add(image.Pt(x, y))

	if f.borderSize > 0 {
		border := image.NewUniform(color.Black)
		for dy := -f.borderSize; dy <= f.borderSize; dy++ {
			for dx := -f.borderSize; dx <= f.borderSize; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				draw.DrawMask(dst, r.Add(image.Pt(dx, dy)), border, image.Point{}, mask, image.Point{}, draw.Over)
			}
		}
	}
	draw.DrawMask(dst, r, image.NewUniform(f.Color()), image.Point{}, mask, image.Point{}, draw.Over)
}

func (f *TTFont) JPShapeSource() (*ShapeFont, bool) {
	return nil, false
}

// Release drops the raster reference.  The raster itself is shared through
// the font manager's cache and is not closed.
func (f *TTFont) Release() {
	f.raster = nil
}
