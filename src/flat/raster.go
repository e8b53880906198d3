package flat

import (
	"fmt"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// RenderMode selects how TrueType glyphs are rasterized.
type RenderMode int

const (
	RenderNormal RenderMode = iota
	RenderMonochrome
)

func (m RenderMode) String() string {
	if m == RenderMonochrome {
		return "monochrome"
	}
	return "normal"
}

// RenderModeFor maps the antialiasing preference to a render mode.
func RenderModeFor(antialiasing bool) RenderMode {
	if antialiasing {
		return RenderNormal
	}
	return RenderMonochrome
}

// RasterFont is a TrueType font rasterized at one point size.
type RasterFont struct {
	face      font.Face
	pointSize int
	mode      RenderMode
}

const rasterDPI = 72

// LoadRasterFont parses TrueType or OpenType data from r and builds a face
// at pointSize.
func LoadRasterFont(r io.Reader, pointSize int, mode RenderMode) (*RasterFont, error) {
	if pointSize <= 0 {
		return nil, fmt.Errorf("invalid point size %d", pointSize)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	options := opentype.FaceOptions{
		Size:    float64(pointSize),
		DPI:     rasterDPI,
		Hinting: font.HintingNone,
	}
	if mode == RenderMonochrome {
		// snap outlines to the pixel grid so thresholded glyphs stay legible
		options.Hinting = font.HintingFull
	}
	face, err := opentype.NewFace(tt, &options)
	if err != nil {
		return nil, err
	}
	return &RasterFont{
		face:      face,
		pointSize: pointSize,
		mode:      mode,
	}, nil
}

func (f *RasterFont) Face() font.Face {
	return f.face
}

func (f *RasterFont) PointSize() int {
	return f.pointSize
}

func (f *RasterFont) Mode() RenderMode {
	return f.mode
}

// Height is the ascent plus descent in whole pixels.
func (f *RasterFont) Height() int {
	m := f.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

func (f *RasterFont) Close() error {
	return f.face.Close()
}
