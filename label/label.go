// Package label draws single-line text labels onto image buffers.
//
// A Label pairs a font face with a foreground and background color and can
// render itself onto any draw.Image, including the 1-bit framebuffers used
// by monochrome OLED drivers. Highlighting is done by swapping the two
// colors with Invert.
package label

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Label is a single line of text with a foreground and background color.
type Label struct {
	Face       font.Face
	Text       string
	Color      color.Color
	Background color.Color
}

// Size returns the pixel dimensions the label covers when drawn: the
// advance width of the text by the line height of the face.
func (l *Label) Size() image.Point {
	w := font.MeasureString(l.Face, l.Text).Ceil()
	h := l.Face.Metrics().Height.Ceil()
	return image.Pt(w, h)
}

// Invert swaps the foreground and background colors.
func (l *Label) Invert() {
	l.Color, l.Background = l.Background, l.Color
}

// Draw renders the label onto dst with its top-left corner at `at`. The
// covered rectangle is filled with the background color first, then the
// text is drawn in the foreground color.
func (l *Label) Draw(dst draw.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(l.Size())}
	draw.Draw(dst, r, image.NewUniform(l.Background), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(l.Color),
		Face: l.Face,
		Dot:  fixed.P(at.X, at.Y+l.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(l.Text)
}
