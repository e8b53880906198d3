// Package ebitentext draws flat fonts onto ebiten screens.
package ebitentext

import (
	"image"
	"strings"
	"text/template"

	"github.com/bradbev/flatfont/src/flat"
	"github.com/deeean/go-vector/vector2"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextComponent draws templated text with a Font onto an ebiten screen.
// The rendered text is cached as an image until the text or font changes.
type TextComponent struct {
	Font         flat.Font
	Name         string
	TextTemplate string
	Location     vector2.Vector2
	Scale        float64

	lastTextTemplate string
	tmpl             *template.Template
	lastEval         strings.Builder

	rendered     *ebiten.Image
	renderedText string
	renderedFont flat.Font
	op           ebiten.DrawImageOptions
}

func (t *TextComponent) updateCachedValues() {
	if t.tmpl != nil && t.lastTextTemplate == t.TextTemplate {
		return
	}
	t.lastEval.Reset()
	t.lastTextTemplate = t.TextTemplate
	tmpl, err := template.New(t.Name).Parse(t.TextTemplate)
	if err != nil {
		// malformed templates return errors, which we will display instead of the real text
		t.tmpl = nil
		t.lastEval.WriteString("Error:" + err.Error())
		return
	}
	t.tmpl = tmpl
	t.tmpl.Execute(&t.lastEval, nil)
}

// SetValues re-evaluates the template with data.
func (t *TextComponent) SetValues(data any) {
	t.updateCachedValues()
	if t.tmpl == nil {
		return
	}
	t.lastEval.Reset()
	t.tmpl.Execute(&t.lastEval, data)
}

// Text is the text the component currently draws.
func (t *TextComponent) Text() string {
	t.updateCachedValues()
	return t.lastEval.String()
}

// renderText draws text with the component's font into a new RGBA image.
func (t *TextComponent) renderText(text string) *image.RGBA {
	w, h := t.Font.TextSize(text)
	if w <= 0 || h <= 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	t.Font.Draw(img, text, 0, 0)
	return img
}

func (t *TextComponent) Draw(screen *ebiten.Image) {
	if t.Font == nil {
		return
	}
	text := t.Text()
	if t.rendered == nil || text != t.renderedText || t.Font != t.renderedFont {
		if t.rendered != nil {
			t.rendered.Dispose()
			t.rendered = nil
		}
		t.renderedText = text
		t.renderedFont = t.Font
		if img := t.renderText(text); img != nil {
			t.rendered = ebiten.NewImageFromImage(img)
		}
	}
	if t.rendered == nil {
		return
	}

	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	t.op = ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	if tt, ok := t.Font.(*flat.TTFont); ok && tt.HighRes() {
		t.op.Filter = ebiten.FilterLinear
	}
	t.op.GeoM.Scale(scale, scale)
	t.op.GeoM.Translate(t.Location.X, t.Location.Y)
	screen.DrawImage(t.rendered, &t.op)
}
