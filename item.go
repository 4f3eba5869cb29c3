package menu

import "errors"

// ErrUnserializable is returned by an item's Serialize method when the item
// has no meaningful value to export. Menu.Serialize skips such items.
var ErrUnserializable = errors.New("menu: unserializable item")

// Action is returned by an item's HandlePress and tells the menu what to do
// after the button was pressed on the item.
type Action interface {
	action()
}

// ActivationChangeAction toggles whether the selected item is being edited.
// While an item is edited, encoder movement goes to the item instead of
// moving the selection.
type ActivationChangeAction struct{}

// IgnoreAction keeps the selection as-is. Changed requests a redraw because
// the item's value changed (e.g. a toggle flipped).
type IgnoreAction struct {
	Changed bool
}

// ExitAction exits the menu. Run returns Value.
type ExitAction struct {
	Value any
}

// SubMenuAction switches to the given sub-menu.
type SubMenuAction struct {
	Menu *Menu
}

func (ActivationChangeAction) action() {}

func (IgnoreAction) action() {}

func (ExitAction) action() {}

func (SubMenuAction) action() {}

// Item is a single row in a menu.
//
// Implementations in this package cover the common cases (integers,
// durations, toggles, selections, callbacks, sub-menus). Custom items only
// need to implement this interface.
type Item interface {
	// Text is the label shown in the left column.
	Text() string

	// Selectable reports whether the cursor can rest on this item.
	Selectable() bool

	// ValueString returns the text for the value column. ok is false when
	// the item has no value column and the label spans the full width.
	ValueString() (s string, ok bool)

	// HandleDelta applies encoder movement while the item is being edited.
	HandleDelta(delta int)

	// HandlePress is called when the button is pressed while the item is
	// selected.
	HandlePress() Action

	// Serialize returns the item's value for Menu.Serialize, or
	// ErrUnserializable if the item has none.
	Serialize() (any, error)
}

// attacher is implemented by items that need a reference to the menu they
// belong to. New calls attach on every item that implements it.
type attacher interface {
	attach(*Menu) error
}

// baseItem provides the no-op parts shared by most items.
type baseItem struct {
	text string
}

func (b *baseItem) Text() string { return b.text }

func (b *baseItem) Selectable() bool { return true }

func (b *baseItem) HandleDelta(int) {}

func (b *baseItem) ValueString() (string, bool) { return "", false }

// backValue is the sentinel returned by a BackItem press. Run recognizes it
// and resumes the parent menu instead of exiting.
type backValue struct{}

var backSentinel any = backValue{}
