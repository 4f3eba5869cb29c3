package menu

import (
	"bytes"
	"fmt"
	"image"
	"strconv"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/zerario/menu/label"
)

// Show renders the current page into the framebuffer and pushes the changed
// region to the display.
func (m *Menu) Show() error {
	m.render()
	return m.flush()
}

// Hide blanks the display.
func (m *Menu) Hide() error {
	for i := range m.buf.Pix {
		m.buf.Pix[i] = 0
	}
	return m.flush()
}

// render draws the visible page into m.buf: one label per row on the left,
// the item's value at half width on the right, and the page indicator in
// the bottom-right corner. Highlighting works by inverting a label's
// colors: the selected item's text label, or its value label while the item
// is being edited. Non-selectable titles are always inverted.
func (m *Menu) render() {
	for i := range m.buf.Pix {
		m.buf.Pix[i] = 0
	}

	start := m.page * m.lines
	for row := 0; row < m.lines && start+row < len(m.items); row++ {
		idx := start + row
		it := m.items[idx]
		y := row * m.fontH

		text := label.Label{
			Face:       m.opts.Face,
			Text:       it.Text(),
			Color:      image1bit.On,
			Background: image1bit.Off,
		}
		if !it.Selectable() || (idx == m.selected && !m.active) {
			text.Invert()
		}
		text.Draw(m.buf, image.Pt(0, y))

		if v, ok := it.ValueString(); ok {
			value := label.Label{
				Face:       m.opts.Face,
				Text:       v,
				Color:      image1bit.On,
				Background: image1bit.Off,
			}
			if idx == m.selected && m.active {
				value.Invert()
			}
			value.Draw(m.buf, image.Pt(m.w/2, y))
		}
	}

	page := label.Label{
		Face:       m.opts.Face,
		Text:       m.pageLabel(),
		Color:      image1bit.On,
		Background: image1bit.Off,
	}
	page.Draw(m.buf, image.Pt(m.w-m.fontW*len(page.Text), m.h-m.fontH))
}

// pageLabel returns the page indicator, e.g. "[2/3]", with the current page
// padded to the width of the page count.
func (m *Menu) pageLabel() string {
	pages := (len(m.items) + m.lines - 1) / m.lines
	digits := len(strconv.Itoa(pages))
	return fmt.Sprintf("[%*d/%*d]", digits, m.page+1, digits, pages)
}

// flush sends the minimal changed rectangle of the framebuffer to the
// display. VerticalLSB packs 8 rows per byte band, so changes are located
// at band granularity vertically and at pixel granularity horizontally.
func (m *Menu) flush() error {
	minX, maxX, minBand, maxBand := diffBands(m.prev.Pix, m.buf.Pix, m.w)
	if maxBand < 0 {
		// No changes.
		return nil
	}
	copy(m.prev.Pix, m.buf.Pix)

	r := image.Rect(minX, minBand*8, maxX+1, (maxBand+1)*8)
	if r.Max.Y > m.h {
		r.Max.Y = m.h
	}
	return m.opts.Display.Draw(r, m.buf, r.Min)
}

// diffBands compares two VerticalLSB pixel buffers of width w and returns
// the bounding box of changed pixels as columns and 8-row bands. maxBand is
// -1 when the buffers are identical.
func diffBands(prev, next []byte, w int) (minX, maxX, minBand, maxBand int) {
	bands := len(next) / w
	minBand, maxBand = bands, -1
	minX, maxX = w, -1

	for b := 0; b < bands; b++ {
		old := prev[b*w : (b+1)*w]
		cur := next[b*w : (b+1)*w]
		if bytes.Equal(old, cur) {
			continue
		}
		if b < minBand {
			minBand = b
		}
		maxBand = b

		for x := 0; x < w; x++ {
			if old[x] != cur[x] {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	return minX, maxX, minBand, maxBand
}
