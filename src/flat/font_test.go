package flat_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bradbev/flatfont/src/asset"
	"github.com/bradbev/flatfont/src/flat"
	"github.com/bradbev/flatfont/src/palette"
	"github.com/charmbracelet/log"
	"github.com/psanford/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T, size int, mode flat.RenderMode) *flat.RasterFont {
	r, err := flat.LoadRasterFont(bytes.NewReader(goregular.TTF), size, mode)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func countPixels(img *image.RGBA, match func(color.RGBA) bool) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if match(img.RGBAAt(x, y)) {
				n++
			}
		}
	}
	return n
}

func TestLoadRasterFontRejectsBadInput(t *testing.T) {
	_, err := flat.LoadRasterFont(bytes.NewReader([]byte("not a font")), 12, flat.RenderNormal)
	assert.Error(t, err)

	_, err = flat.LoadRasterFont(bytes.NewReader(goregular.TTF), 0, flat.RenderNormal)
	assert.Error(t, err)
}

func TestRenderModeFor(t *testing.T) {
	assert.Equal(t, flat.RenderNormal, flat.RenderModeFor(true))
	assert.Equal(t, flat.RenderMonochrome, flat.RenderModeFor(false))
}

func TestTTFontAttributes(t *testing.T) {
	raster := loadGoRegular(t, 24, flat.RenderNormal)
	f := flat.NewTTFont(raster, 0xFF0000, 2, true, false)
	f.SetHighRes(true)

	assert.Same(t, raster, f.Raster())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, f.Color())
	assert.Equal(t, 2, f.BorderSize())
	assert.True(t, f.Antialiasing())
	assert.True(t, f.HighRes())
	assert.False(t, f.SJIS())
	_, ok := f.JPShapeSource()
	assert.False(t, ok)
	assert.Equal(t, raster.Height()+4, f.Height())
}

func TestTTFontDrawsColorAndBorder(t *testing.T) {
	f := flat.NewTTFont(loadGoRegular(t, 24, flat.RenderNormal), 0xFF0000, 2, true, false)
	w, h := f.TextSize("Hello")
	require.Greater(t, w, 4)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f.Draw(img, "Hello", 0, 0)

	red := countPixels(img, func(c color.RGBA) bool { return c == color.RGBA{R: 0xff, A: 0xff} })
	black := countPixels(img, func(c color.RGBA) bool { return c == color.RGBA{A: 0xff} })
	assert.Greater(t, red, 0, "text body should be drawn in the font colour")
	assert.Greater(t, black, 0, "border should be drawn in black")
}

func TestTTFontMonochromeHasNoPartialCoverage(t *testing.T) {
	f := flat.NewTTFont(loadGoRegular(t, 16, flat.RenderMonochrome), 0xFFFFFF, 0, false, false)
	w, h := f.TextSize("Monochrome")
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f.Draw(img, "Monochrome", 0, 0)

	partial := countPixels(img, func(c color.RGBA) bool { return c.A != 0 && c.A != 0xff })
	solid := countPixels(img, func(c color.RGBA) bool { return c.A == 0xff })
	assert.Zero(t, partial)
	assert.Greater(t, solid, 0)
}

func TestTTFontSJIS(t *testing.T) {
	raster := loadGoRegular(t, 16, flat.RenderNormal)
	plain := flat.NewTTFont(raster, 0, 0, true, false)
	sjis := flat.NewTTFont(raster, 0, 0, true, true)

	encoded, err := flat.EncodeSJIS("abc")
	require.NoError(t, err)
	pw, _ := plain.TextSize("abc")
	sw, _ := sjis.TextSize(encoded)
	assert.Equal(t, pw, sw)
}

func jpPalettes(t *testing.T, slot int, rgb [3]byte) *palette.Manager {
	m := palette.NewManager()
	require.NoError(t, m.Load(palette.Game, make([]byte, palette.Size)))
	idx := palette.JPFontStart + palette.Index(slot)
	require.NoError(t, m.Duplicate(palette.Game, idx))
	p := m.Palette(idx)
	for i := 1; i < 4; i++ {
		copy(p.Raw[i*3:], rgb[:])
	}
	m.Updated(idx)
	return m
}

func katakanaFont() *flat.ShapeFont {
	f := &flat.ShapeFont{Name: "jp", CellHeight: 1}
	f.DefaultInitialize()
	f.Glyphs = map[rune]flat.Glyph{
		'ア': {Width: 2, Pixels: []byte{flat.TextIndex, 1}},
	}
	return f
}

func TestJPFontColorsThroughSlotPalette(t *testing.T) {
	shapes := katakanaFont()
	jp := flat.NewJPFont(shapes, 5, jpPalettes(t, 5, [3]byte{0x11, 0x22, 0x33}))
	assert.Equal(t, palette.JPFontStart+5, jp.PaletteIndex())
	assert.Equal(t, 5, jp.Slot())

	text, err := flat.EncodeSJIS("ア")
	require.NoError(t, err)
	w, h := jp.TextSize(text)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)

	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	jp.Draw(img, text, 0, 0)
	want := color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}
	assert.Equal(t, want, img.RGBAAt(0, 0))
	assert.Equal(t, want, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 0))

	_, ok := jp.JPShapeSource()
	assert.False(t, ok, "a JP font cannot back another JP font")
}

func TestShapeFontIsJPSource(t *testing.T) {
	f := katakanaFont()
	src, ok := f.JPShapeSource()
	assert.True(t, ok)
	assert.Same(t, f, src)
}

func TestShapeFontMeasureAndFallbackGlyph(t *testing.T) {
	f := &flat.ShapeFont{CellHeight: 2, Spacing: 1, Glyphs: map[rune]flat.Glyph{
		'a': {Width: 2, Pixels: []byte{1, 1, 1, 1}},
		'?': {Width: 3, Pixels: []byte{2, 2, 2, 2, 2, 2}},
	}}
	w, h := f.TextSize("aa")
	assert.Equal(t, 5, w)
	assert.Equal(t, 2, h)

	w, _ = f.TextSize("az")
	assert.Equal(t, 6, w, "unknown runes are drawn with the '?' glyph")

	img := image.NewRGBA(image.Rect(0, 0, 6, 2))
	f.Draw(img, "a", 0, 0)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(1, 1), "no palette draws white")
}

func TestBakeShapeFont(t *testing.T) {
	f := flat.BakeShapeFont("basic", basicfont.Face7x13, flat.PrintableASCII())
	assert.Equal(t, 13, f.Height())
	require.Contains(t, f.Glyphs, 'A')
	g := f.Glyphs['A']
	assert.Equal(t, 7, g.Width)
	assert.Len(t, g.Pixels, 7*13)
	assert.Contains(t, g.Pixels, byte(flat.TextIndex))
	assert.NotContains(t, g.Pixels, byte(1))
}

const shapeFontType = "github.com/bradbev/flatfont/src/flat.ShapeFont"

func TestLoadFontArchive(t *testing.T) {
	m := asset.New()
	flat.RegisterAllFlatTypes(m)
	rootFS := memfs.New()
	require.NoError(t, rootFS.MkdirAll("fonts", 0777))
	// Pixels are base64: "AwM=" is {3, 3}
	require.NoError(t, rootFS.WriteFile("fonts/dialog.json", []byte(`{
		"Type": "`+shapeFontType+`",
		"Inner": {
			"Name": "dialog",
			"Slot": 2,
			"CellHeight": 1,
			"Glyphs": {
				"65": {"Width": 2, "Pixels": "AwM="},
				"66": {"Width": 5, "Pixels": "AwM="}
			}
		}
	}`), 0777))
	require.NoError(t, rootFS.WriteFile("fonts/notes.json", []byte(`{"unrelated": true}`), 0777))
	m.RegisterFileSystem(rootFS, 0)

	pals := palette.NewManager()
	var logs bytes.Buffer
	archive, err := flat.LoadFontArchive(m, pals, log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, 3, archive.Len())
	assert.Nil(t, archive.Font(0))
	assert.Nil(t, archive.Font(-1))
	assert.Nil(t, archive.Font(99))

	f, ok := archive.Font(2).(*flat.ShapeFont)
	require.True(t, ok)
	assert.Equal(t, "dialog", f.Name)
	assert.Equal(t, 1, f.Spacing, "defaults apply to loaded fonts")
	assert.Equal(t, palette.Game, f.Palette)
	assert.Contains(t, f.Glyphs, 'A')
	assert.NotContains(t, f.Glyphs, 'B', "malformed glyphs are dropped")
	assert.Equal(t, []rune{'B'}, f.DroppedGlyphs())
	assert.Contains(t, logs.String(), "dropped malformed glyph")
	assert.Contains(t, logs.String(), "path=fonts/dialog.json")
}

func TestFontArchiveSet(t *testing.T) {
	a := flat.NewFontArchive()
	f := katakanaFont()
	a.Set(4, f)
	assert.Equal(t, 5, a.Len())
	assert.Same(t, f, a.Font(4))
	a.Set(4, nil)
	assert.Nil(t, a.Font(4))
	a.Set(-1, f)
	assert.Equal(t, 5, a.Len())
}
