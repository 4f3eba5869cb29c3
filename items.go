package menu

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TitleItem is a non-selectable heading, rendered inverted.
type TitleItem struct {
	baseItem
}

// NewTitle creates a heading row the cursor skips over.
func NewTitle(text string) *TitleItem {
	return &TitleItem{baseItem{text: text}}
}

func (t *TitleItem) Selectable() bool { return false }

func (t *TitleItem) HandlePress() Action { return IgnoreAction{} }

func (t *TitleItem) Serialize() (any, error) { return nil, ErrUnserializable }

// IntOpts configures an IntItem.
type IntOpts struct {
	// Default is the value initially displayed.
	Default int
	// Min and Max clamp the value (inclusive). Each bound applies
	// independently; nil leaves that side unbounded.
	Min *int
	Max *int
	// Suffix is appended to the displayed value, e.g. a unit.
	Suffix string
}

// IntItem lets the user edit an integer value with the encoder.
type IntItem struct {
	baseItem
	value  int
	min    *int
	max    *int
	suffix string
}

// NewInt creates an integer editor. opts can be nil for an unbounded value
// starting at 0.
func NewInt(text string, opts *IntOpts) (*IntItem, error) {
	if opts == nil {
		opts = &IntOpts{}
	}
	if opts.Min != nil && opts.Max != nil && *opts.Min > *opts.Max {
		return nil, fmt.Errorf("menu: invalid bounds, %d needs to be <= %d", *opts.Min, *opts.Max)
	}
	if opts.Min != nil && opts.Default < *opts.Min {
		return nil, fmt.Errorf("menu: invalid default value %d, needs to be >= %d", opts.Default, *opts.Min)
	}
	if opts.Max != nil && opts.Default > *opts.Max {
		return nil, fmt.Errorf("menu: invalid default value %d, needs to be <= %d", opts.Default, *opts.Max)
	}
	return &IntItem{
		baseItem: baseItem{text: text},
		value:    opts.Default,
		min:      opts.Min,
		max:      opts.Max,
		suffix:   opts.Suffix,
	}, nil
}

// NewPercentage creates an integer editor clamped to 0-100 with a "%"
// suffix.
func NewPercentage(text string, def int) (*IntItem, error) {
	lo, hi := 0, 100
	return NewInt(text, &IntOpts{Default: def, Min: &lo, Max: &hi, Suffix: "%"})
}

// Value returns the current value.
func (i *IntItem) Value() int { return i.value }

func (i *IntItem) HandleDelta(delta int) {
	i.value += delta
	if i.min != nil && i.value < *i.min {
		i.value = *i.min
	}
	if i.max != nil && i.value > *i.max {
		i.value = *i.max
	}
}

func (i *IntItem) ValueString() (string, bool) {
	return fmt.Sprintf("%d%s", i.value, i.suffix), true
}

func (i *IntItem) HandlePress() Action { return ActivationChangeAction{} }

func (i *IntItem) Serialize() (any, error) { return i.value, nil }

// TimeOpts configures a TimeItem.
type TimeOpts struct {
	// Default is the duration initially displayed.
	Default time.Duration
	// Max caps the duration; 0 means unbounded. The lower bound is always 0.
	Max time.Duration
	// Step is added or subtracted per encoder detent (default: time.Second).
	Step time.Duration
}

// TimeItem lets the user edit a duration with the encoder.
type TimeItem struct {
	baseItem
	value time.Duration
	max   time.Duration
	step  time.Duration
}

// NewTime creates a duration editor. opts can be nil for an unbounded value
// starting at 0 with a one second step.
func NewTime(text string, opts *TimeOpts) (*TimeItem, error) {
	if opts == nil {
		opts = &TimeOpts{}
	}
	step := opts.Step
	if step == 0 {
		step = time.Second
	}
	if step < 0 {
		return nil, fmt.Errorf("menu: invalid step %v, needs to be positive", step)
	}
	if opts.Default < 0 || (opts.Max > 0 && opts.Default > opts.Max) {
		return nil, fmt.Errorf("menu: invalid default value %v", opts.Default)
	}
	return &TimeItem{
		baseItem: baseItem{text: text},
		value:    opts.Default,
		max:      opts.Max,
		step:     step,
	}, nil
}

// Value returns the current duration.
func (t *TimeItem) Value() time.Duration { return t.value }

func (t *TimeItem) HandleDelta(delta int) {
	t.value += time.Duration(delta) * t.step
	if t.value < 0 {
		t.value = 0
	}
	if t.max > 0 && t.value > t.max {
		t.value = t.max
	}
}

func (t *TimeItem) ValueString() (string, bool) {
	if t.value == 0 {
		switch t.step {
		case time.Hour:
			return "0h", true
		case time.Minute:
			return "0m", true
		default:
			return "0s", true
		}
	}

	d := t.value
	var parts []string
	if h := d / time.Hour; h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
		d -= m * time.Minute
	}
	if d > 0 {
		// %g keeps whole seconds short ("5s") and renders sub-second
		// remainders as decimals ("0.5s").
		parts = append(parts, fmt.Sprintf("%gs", d.Seconds()))
	}
	return strings.Join(parts, " "), true
}

func (t *TimeItem) HandlePress() Action { return ActivationChangeAction{} }

func (t *TimeItem) Serialize() (any, error) { return t.value, nil }

// ToggleItem is a boolean flipped by a button press.
type ToggleItem struct {
	baseItem
	value bool
}

// NewToggle creates a boolean toggle.
func NewToggle(text string, def bool) *ToggleItem {
	return &ToggleItem{baseItem: baseItem{text: text}, value: def}
}

// Value returns the current state.
func (t *ToggleItem) Value() bool { return t.value }

func (t *ToggleItem) ValueString() (string, bool) {
	if t.value {
		return "[x]", true
	}
	return "[ ]", true
}

func (t *ToggleItem) HandlePress() Action {
	t.value = !t.value
	return IgnoreAction{Changed: true}
}

func (t *ToggleItem) Serialize() (any, error) { return t.value, nil }

// SelectOpts configures a SelectItem.
type SelectOpts struct {
	// Default is the value initially displayed. Must be one of the item's
	// values; empty selects the first one.
	Default string
	// CycleOnPress advances to the next value on a button press instead of
	// entering edit mode.
	CycleOnPress bool
}

// SelectItem cycles through a fixed list of values.
type SelectItem struct {
	baseItem
	values       []string
	index        int
	cycleOnPress bool
}

// NewSelect creates a selection over values. opts can be nil to start at the
// first value.
func NewSelect(text string, values []string, opts *SelectOpts) (*SelectItem, error) {
	if len(values) == 0 {
		return nil, errors.New("menu: selections need at least one value")
	}
	if opts == nil {
		opts = &SelectOpts{}
	}
	index := 0
	if opts.Default != "" {
		index = -1
		for i, v := range values {
			if v == opts.Default {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("menu: default value %q not in values", opts.Default)
		}
	}
	return &SelectItem{
		baseItem:     baseItem{text: text},
		values:       values,
		index:        index,
		cycleOnPress: opts.CycleOnPress,
	}, nil
}

// Value returns the currently selected value.
func (s *SelectItem) Value() string { return s.values[s.index] }

func (s *SelectItem) HandleDelta(delta int) {
	s.index = mod(s.index+delta, len(s.values))
}

func (s *SelectItem) ValueString() (string, bool) {
	return s.values[s.index], true
}

func (s *SelectItem) HandlePress() Action {
	if s.cycleOnPress {
		s.HandleDelta(1)
		return IgnoreAction{Changed: true}
	}
	return ActivationChangeAction{}
}

func (s *SelectItem) Serialize() (any, error) { return s.values[s.index], nil }

// CallbackItem invokes a function when pressed. The callback receives the
// menu the item belongs to, so it can e.g. call Serialize; while the
// callback runs, this item serializes as true.
type CallbackItem struct {
	baseItem
	fn      func(*Menu)
	menu    *Menu
	invoked bool
}

// NewCallback creates an action item around fn.
func NewCallback(text string, fn func(*Menu)) *CallbackItem {
	return &CallbackItem{baseItem: baseItem{text: text}, fn: fn}
}

func (c *CallbackItem) attach(m *Menu) error {
	if c.fn == nil {
		return fmt.Errorf("menu: nil callback for item %q", c.text)
	}
	c.menu = m
	return nil
}

func (c *CallbackItem) HandlePress() Action {
	c.invoked = true
	c.fn(c.menu)
	c.invoked = false
	return IgnoreAction{}
}

func (c *CallbackItem) Serialize() (any, error) { return c.invoked, nil }

// FinalItem exits the whole menu when pressed; Run returns its value. It
// serializes as true once chosen, so menus can double as pickers.
type FinalItem struct {
	baseItem
	value  any
	chosen bool
}

// NewFinal creates an item that exits the menu returning value.
func NewFinal(text string, value any) *FinalItem {
	return &FinalItem{baseItem: baseItem{text: text}, value: value}
}

func (f *FinalItem) HandlePress() Action {
	f.chosen = true
	return ExitAction{Value: f.value}
}

func (f *FinalItem) Serialize() (any, error) { return f.chosen, nil }

// BackItem returns from a sub-menu to its parent.
type BackItem struct {
	baseItem
}

// NewBack creates a back item. An empty text defaults to "Back".
func NewBack(text string) *BackItem {
	if text == "" {
		text = "Back"
	}
	return &BackItem{baseItem{text: text}}
}

func (b *BackItem) HandlePress() Action { return ExitAction{Value: backSentinel} }

func (b *BackItem) Serialize() (any, error) { return nil, ErrUnserializable }

// SubMenuOpts configures a SubMenuItem.
type SubMenuOpts struct {
	// NoBack leaves out the automatically appended back item.
	NoBack bool
}

// SubMenuItem opens a nested menu when pressed. The sub-menu shares the
// parent's display, input devices and rendering configuration, and gets a
// BackItem appended unless disabled.
type SubMenuItem struct {
	baseItem
	items   []Item
	noBack  bool
	submenu *Menu
}

// NewSubMenu creates a nested menu entry. opts can be nil.
func NewSubMenu(text string, items []Item, opts *SubMenuOpts) *SubMenuItem {
	s := &SubMenuItem{baseItem: baseItem{text: text}, items: items}
	if opts != nil {
		s.noBack = opts.NoBack
	}
	return s
}

func (s *SubMenuItem) attach(m *Menu) error {
	// Copy before appending so the back item never leaks into the caller's
	// backing array.
	items := make([]Item, len(s.items), len(s.items)+1)
	copy(items, s.items)
	if !s.noBack {
		items = append(items, NewBack(""))
	}
	sub, err := m.copyWithItems(items)
	if err != nil {
		return fmt.Errorf("menu: sub-menu %q: %w", s.text, err)
	}
	s.submenu = sub
	return nil
}

func (s *SubMenuItem) HandlePress() Action { return SubMenuAction{Menu: s.submenu} }

func (s *SubMenuItem) Serialize() (any, error) { return s.submenu.Serialize() }
