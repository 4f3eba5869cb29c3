package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Encoder is an incremental rotary encoder. Position returns the accumulated
// number of detents; the menu only looks at changes between polls.
// Quadrature decoding is owned by the hardware layer providing this
// interface.
type Encoder interface {
	Position() int
}

// Opts is the configuration for a menu.
type Opts struct {
	// Display is the surface the menu is drawn on. Required.
	Display display.Drawer

	// Encoder is the rotary encoder used for navigation. Required.
	Encoder Encoder

	// Button is the push button used for selection. Required.
	Button gpio.PinIO

	// PressedLevel is the level Button reads while pressed. The default,
	// Low, matches a button wired against ground with a pull-up.
	PressedLevel gpio.Level

	// Face is the font used for all labels (default: basicfont.Face7x13).
	Face font.Face

	// PollInterval is how often Run samples the encoder and button
	// (default: 5ms).
	PollInterval time.Duration

	// DebounceTime is how long Run ignores input after a button press
	// (default: 250ms).
	DebounceTime time.Duration
}

// Menu is a scrollable list of items shown on a pixel display and navigated
// with a rotary encoder and a push button.
type Menu struct {
	items []Item
	opts  Opts

	w, h         int
	fontW, fontH int
	lines        int

	// Double buffer for differential flushes.
	buf  *image1bit.VerticalLSB
	prev *image1bit.VerticalLSB

	lastPosition int
	selected     int
	active       bool
	page         int
}

// New creates a menu over the given items.
//
// The menu needs at least one selectable item, and the display must be tall
// enough for a single line of the configured font.
func New(items []Item, opts *Opts) (*Menu, error) {
	if len(items) == 0 {
		return nil, errors.New("menu: empty menus are not allowed")
	}
	if opts == nil || opts.Display == nil {
		return nil, errors.New("menu: display is required")
	}
	if opts.Encoder == nil {
		return nil, errors.New("menu: encoder is required")
	}
	if opts.Button == nil {
		return nil, errors.New("menu: button is required")
	}

	o := *opts
	if o.Face == nil {
		o.Face = basicfont.Face7x13
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Millisecond
	}
	if o.DebounceTime <= 0 {
		o.DebounceTime = 250 * time.Millisecond
	}

	bounds := o.Display.Bounds()
	m := &Menu{
		items: items,
		opts:  o,
		w:     bounds.Dx(),
		h:     bounds.Dy(),
		fontW: font.MeasureString(o.Face, "0").Ceil(),
		fontH: o.Face.Metrics().Height.Ceil(),
	}

	m.lines = m.h / m.fontH
	if m.lines == 0 {
		return nil, errors.New("menu: display too small for a single text line")
	}
	if m.lines > len(items) {
		m.lines = len(items)
	}

	for _, it := range items {
		if a, ok := it.(attacher); ok {
			if err := a.attach(m); err != nil {
				return nil, err
			}
		}
	}

	m.selected = -1
	for i, it := range items {
		if it.Selectable() {
			m.selected = i
			break
		}
	}
	if m.selected < 0 {
		return nil, errors.New("menu: no selectable items")
	}

	m.buf = image1bit.NewVerticalLSB(bounds)
	m.prev = image1bit.NewVerticalLSB(bounds)
	m.lastPosition = o.Encoder.Position()
	return m, nil
}

// copyWithItems builds a new menu over items, sharing this menu's display,
// input devices and rendering configuration. Used for sub-menus.
func (m *Menu) copyWithItems(items []Item) (*Menu, error) {
	sub, err := New(items, &m.opts)
	if err != nil {
		return nil, err
	}
	// Parent and sub-menu draw on the same display, so they must share one
	// framebuffer pair: flushes then always diff against what is actually
	// on screen, no matter which menu pushed the last frame.
	sub.buf = m.buf
	sub.prev = m.prev
	return sub, nil
}

// Item returns the currently selected item.
func (m *Menu) Item() Item {
	return m.items[m.selected]
}

// Run shows the menu and blocks handling input until an item exits the menu
// or ctx is cancelled. It returns the exiting item's value.
func (m *Menu) Run(ctx context.Context) (any, error) {
	// Re-read the position so turns made while another menu was shown do
	// not register as a stale delta.
	m.lastPosition = m.opts.Encoder.Position()
	if err := m.Show(); err != nil {
		return nil, err
	}

	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if m.handleRotation() {
			if err := m.Show(); err != nil {
				return nil, err
			}
		}

		if m.opts.Button.Read() != m.opts.PressedLevel {
			continue
		}
		v, done, err := m.handlePress(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			return v, nil
		}
		if err := m.sleep(ctx, m.opts.DebounceTime); err != nil {
			return nil, err
		}
	}
}

// handleRotation applies any encoder movement since the last poll and
// reports whether a redraw is needed.
func (m *Menu) handleRotation() bool {
	pos := m.opts.Encoder.Position()
	delta := m.lastPosition - pos
	m.lastPosition = pos
	if delta == 0 {
		return false
	}
	if m.active {
		m.items[m.selected].HandleDelta(delta)
		return true
	}
	m.moveSelection(delta)
	return true
}

// moveSelection moves the cursor by delta, wrapping around and skipping
// non-selectable items in the movement direction.
func (m *Menu) moveSelection(delta int) {
	n := len(m.items)
	m.selected = mod(m.selected+delta, n)
	step := 1
	if delta < 0 {
		step = -1
	}
	for !m.items[m.selected].Selectable() {
		m.selected = mod(m.selected+step, n)
	}
	m.page = m.selected / m.lines
}

// handlePress dispatches a button press to the selected item and executes
// the returned action. done is true when the menu should exit with v.
func (m *Menu) handlePress(ctx context.Context) (v any, done bool, err error) {
	switch a := m.items[m.selected].HandlePress().(type) {
	case ExitAction:
		if err := m.sleep(ctx, m.opts.DebounceTime); err != nil {
			return nil, false, err
		}
		if err := m.Hide(); err != nil {
			return nil, false, err
		}
		return a.Value, true, nil
	case ActivationChangeAction:
		m.active = !m.active
		return nil, false, m.Show()
	case IgnoreAction:
		if a.Changed {
			return nil, false, m.Show()
		}
		return nil, false, nil
	case SubMenuAction:
		m.active = false
		if err := m.Show(); err != nil {
			return nil, false, err
		}
		if err := m.sleep(ctx, m.opts.DebounceTime); err != nil {
			return nil, false, err
		}
		sub, err := a.Menu.Run(ctx)
		if err != nil {
			return nil, false, err
		}
		if sub != backSentinel {
			// Exit the entire menu from a sub-menu.
			if err := m.Hide(); err != nil {
				return nil, false, err
			}
			return sub, true, nil
		}
		return nil, false, m.Show()
	default:
		return nil, false, fmt.Errorf("menu: unknown action %T", a)
	}
}

// Serialize returns a map of all item values in this menu, keyed by item
// text. Items without a value are skipped; sub-menus serialize to nested
// maps. Duplicate keys are an error.
func (m *Menu) Serialize() (map[string]any, error) {
	data := make(map[string]any, len(m.items))
	for _, it := range m.items {
		v, err := it.Serialize()
		if errors.Is(err, ErrUnserializable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if _, ok := data[it.Text()]; ok {
			return nil, fmt.Errorf("menu: duplicate key %q", it.Text())
		}
		data[it.Text()] = v
	}
	return data, nil
}

// sleep blocks for d or until ctx is cancelled.
func (m *Menu) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// String returns a string representation of the menu.
func (m *Menu) String() string {
	return fmt.Sprintf("menu.Menu{%d items, %dx%d}", len(m.items), m.w, m.h)
}

// mod is the positive remainder of a/n.
func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
