// Package menu implements an interactive menu for small pixel displays,
// navigated with a rotary encoder and a push button.
//
// The menu draws a scrollable, paginated list of items onto any
// display.Drawer from periph.io (SSD1306/SH1106/SH1107 OLEDs and similar)
// and polls an incremental rotary encoder plus a GPIO push button for
// input. It is a single-focus widget: one item is selected at a time,
// pressing the button activates, toggles or follows it.
//
// # Menu Items
//
// The built-in item types cover common configuration menus:
//
//   - TitleItem: a non-selectable heading
//   - IntItem / NewPercentage: integer editor with optional bounds
//   - TimeItem: duration editor with a configurable step
//   - ToggleItem: a boolean checkbox
//   - SelectItem: cycle through a fixed list of values
//   - CallbackItem: invoke a function when pressed
//   - SubMenuItem: open a nested menu (with an automatic "Back" entry)
//   - FinalItem: exit the menu, returning a value from Run
//
// Custom items only need to implement the Item interface.
//
// # Hardware Connection
//
// The menu does not talk to hardware directly. It needs:
//
//   - a display.Drawer, e.g. a periph.io OLED driver
//   - an Encoder, anything with a Position() int method; quadrature
//     decoding is owned by the hardware layer
//   - a gpio.PinIO for the button, typically wired against ground with a
//     pull-up (pressed reads Low, the default)
//
// # Basic Usage
//
//	awesome, _ := menu.NewPercentage("Awesome", 50)
//	duration, _ := menu.NewTime("Duration", nil)
//
//	items := []menu.Item{
//		menu.NewTitle("=== Demo ==="),
//		awesome,
//		duration,
//		menu.NewSubMenu("Print...", []menu.Item{
//			menu.NewCallback("BEEP", func(*menu.Menu) { fmt.Println("BEEP!") }),
//		}, nil),
//		menu.NewFinal("Exit", nil),
//	}
//
//	m, err := menu.New(items, &menu.Opts{
//		Display: dev, // e.g. ssd1306.NewI2C(...)
//		Encoder: enc,
//		Button:  gpioreg.ByName("GPIO22"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	value, err := m.Run(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//	state, _ := m.Serialize() // map[string]any of all item values
//
// Run blocks until a FinalItem is pressed (returning its value) or the
// context is cancelled. Serialize exports the current item values keyed by
// item text, with sub-menus as nested maps.
//
// # Rendering
//
// Items are laid out in two columns: the label on the left and, for items
// with a value, the value at half width on the right. As many rows as fit
// the font are shown per page; a page indicator like [1/2] sits in the
// bottom-right corner. Highlighting inverts a label's colors.
//
// Frames are composed into an in-memory image1bit.VerticalLSB buffer, and
// only the minimal changed rectangle is pushed to the display, so slow
// buses (100kHz I²C) stay responsive during value editing.
//
// # Compatibility with periph.io
//
// Any driver implementing the display.Drawer interface works:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package menu
