package menu

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestIntItemClamp(t *testing.T) {
	tests := []struct {
		name   string
		opts   *IntOpts
		deltas []int
		want   int
	}{
		{"unbounded up", nil, []int{5, 5}, 10},
		{"unbounded down", nil, []int{-3}, -3},
		{"clamped at max", &IntOpts{Default: 98, Min: intPtr(0), Max: intPtr(100)}, []int{5}, 100},
		{"clamped at min", &IntOpts{Default: 1, Min: intPtr(0), Max: intPtr(100)}, []int{-4}, 0},
		{"within bounds", &IntOpts{Default: 50, Min: intPtr(0), Max: intPtr(100)}, []int{-8, 3}, 45},
		{"minimum only", &IntOpts{Default: 1, Min: intPtr(0)}, []int{-4}, 0},
		{"minimum only, up is open", &IntOpts{Default: 1, Min: intPtr(0)}, []int{500}, 501},
		{"maximum only", &IntOpts{Default: 8, Max: intPtr(10)}, []int{5}, 10},
		{"maximum only, down is open", &IntOpts{Default: 8, Max: intPtr(10)}, []int{-20}, -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewInt("n", tt.opts)
			if err != nil {
				t.Fatalf("NewInt() failed: %v", err)
			}
			for _, d := range tt.deltas {
				it.HandleDelta(d)
			}
			if it.Value() != tt.want {
				t.Errorf("value = %d, want %d", it.Value(), tt.want)
			}
		})
	}
}

func TestIntItemInvalidDefault(t *testing.T) {
	tests := []struct {
		name string
		opts *IntOpts
	}{
		{"below minimum", &IntOpts{Default: -1, Min: intPtr(0), Max: intPtr(100)}},
		{"above maximum", &IntOpts{Default: 101, Min: intPtr(0), Max: intPtr(100)}},
		{"below one-sided minimum", &IntOpts{Default: -1, Min: intPtr(0)}},
		{"above one-sided maximum", &IntOpts{Default: 11, Max: intPtr(10)}},
		{"minimum above maximum", &IntOpts{Default: 5, Min: intPtr(10), Max: intPtr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewInt("n", tt.opts); err == nil {
				t.Error("expected error but didn't get one")
			}
		})
	}
}

func TestIntItemValueString(t *testing.T) {
	it, err := NewInt("Threshold", &IntOpts{Default: 42, Suffix: "dB"})
	if err != nil {
		t.Fatalf("NewInt() failed: %v", err)
	}
	got, ok := it.ValueString()
	if !ok {
		t.Fatal("ValueString() ok = false")
	}
	if got != "42dB" {
		t.Errorf("ValueString() = %q, want %q", got, "42dB")
	}
}

func TestPercentageBounds(t *testing.T) {
	it, err := NewPercentage("Awesome", 50)
	if err != nil {
		t.Fatalf("NewPercentage() failed: %v", err)
	}

	it.HandleDelta(100)
	if it.Value() != 100 {
		t.Errorf("value = %d, want 100", it.Value())
	}
	it.HandleDelta(-200)
	if it.Value() != 0 {
		t.Errorf("value = %d, want 0", it.Value())
	}
	if got, _ := it.ValueString(); got != "0%" {
		t.Errorf("ValueString() = %q, want %q", got, "0%")
	}

	if _, err := NewPercentage("bad", 150); err == nil {
		t.Error("expected error for default above 100")
	}
}

func TestTimeItemValueString(t *testing.T) {
	tests := []struct {
		name  string
		value time.Duration
		step  time.Duration
		want  string
	}{
		{"zero seconds", 0, 0, "0s"},
		{"zero with minute step", 0, time.Minute, "0m"},
		{"zero with hour step", 0, time.Hour, "0h"},
		{"seconds only", 5 * time.Second, 0, "5s"},
		{"exact minute", time.Minute, 0, "1m"},
		{"exact hour", time.Hour, 0, "1h"},
		{"mixed", time.Hour + 2*time.Minute + 5*time.Second, 0, "1h 2m 5s"},
		{"hours and seconds", time.Hour + 5*time.Second, 0, "1h 5s"},
		{"half a second", 500 * time.Millisecond, 500 * time.Millisecond, "0.5s"},
		{"second and a half", 1500 * time.Millisecond, 500 * time.Millisecond, "1.5s"},
		{"hours and a fraction", time.Hour + 500*time.Millisecond, 0, "1h 0.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewTime("Duration", &TimeOpts{Default: tt.value, Step: tt.step})
			if err != nil {
				t.Fatalf("NewTime() failed: %v", err)
			}
			got, ok := it.ValueString()
			if !ok {
				t.Fatal("ValueString() ok = false")
			}
			if got != tt.want {
				t.Errorf("ValueString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeItemDelta(t *testing.T) {
	it, err := NewTime("Duration", &TimeOpts{Step: time.Minute, Max: 5 * time.Minute})
	if err != nil {
		t.Fatalf("NewTime() failed: %v", err)
	}

	it.HandleDelta(2)
	if it.Value() != 2*time.Minute {
		t.Errorf("value = %v, want 2m", it.Value())
	}
	it.HandleDelta(10)
	if it.Value() != 5*time.Minute {
		t.Errorf("value = %v, want clamped 5m", it.Value())
	}
	it.HandleDelta(-100)
	if it.Value() != 0 {
		t.Errorf("value = %v, want clamped 0", it.Value())
	}
}

func TestTimeItemInvalidOpts(t *testing.T) {
	if _, err := NewTime("d", &TimeOpts{Step: -time.Second}); err == nil {
		t.Error("expected error for negative step")
	}
	if _, err := NewTime("d", &TimeOpts{Default: -time.Second}); err == nil {
		t.Error("expected error for negative default")
	}
	if _, err := NewTime("d", &TimeOpts{Default: time.Hour, Max: time.Minute}); err == nil {
		t.Error("expected error for default above maximum")
	}
}

func TestToggleItem(t *testing.T) {
	it := NewToggle("Sound", false)

	if got, _ := it.ValueString(); got != "[ ]" {
		t.Errorf("ValueString() = %q, want %q", got, "[ ]")
	}

	a, ok := it.HandlePress().(IgnoreAction)
	if !ok {
		t.Fatalf("HandlePress() = %T, want IgnoreAction", it.HandlePress())
	}
	if !a.Changed {
		t.Error("press did not report a change")
	}
	if !it.Value() {
		t.Error("press did not flip the value")
	}
	if got, _ := it.ValueString(); got != "[x]" {
		t.Errorf("ValueString() = %q, want %q", got, "[x]")
	}
}

func TestSelectItem(t *testing.T) {
	it, err := NewSelect("Mode", []string{"slow", "fast", "turbo"}, nil)
	if err != nil {
		t.Fatalf("NewSelect() failed: %v", err)
	}

	if it.Value() != "slow" {
		t.Errorf("initial value = %q, want %q", it.Value(), "slow")
	}
	it.HandleDelta(2)
	if it.Value() != "turbo" {
		t.Errorf("value = %q, want %q", it.Value(), "turbo")
	}
	it.HandleDelta(1) // wraps forward
	if it.Value() != "slow" {
		t.Errorf("value = %q, want wrap to %q", it.Value(), "slow")
	}
	it.HandleDelta(-1) // wraps backward
	if it.Value() != "turbo" {
		t.Errorf("value = %q, want wrap to %q", it.Value(), "turbo")
	}

	if _, ok := it.HandlePress().(ActivationChangeAction); !ok {
		t.Error("press without CycleOnPress should enter edit mode")
	}
}

func TestSelectItemCycleOnPress(t *testing.T) {
	it, err := NewSelect("Mode", []string{"slow", "fast"}, &SelectOpts{CycleOnPress: true})
	if err != nil {
		t.Fatalf("NewSelect() failed: %v", err)
	}

	a, ok := it.HandlePress().(IgnoreAction)
	if !ok {
		t.Fatal("press with CycleOnPress should not enter edit mode")
	}
	if !a.Changed {
		t.Error("cycling press did not report a change")
	}
	if it.Value() != "fast" {
		t.Errorf("value = %q, want %q", it.Value(), "fast")
	}
}

func TestSelectItemValidation(t *testing.T) {
	if _, err := NewSelect("Mode", nil, nil); err == nil {
		t.Error("expected error for empty values")
	}
	if _, err := NewSelect("Mode", []string{"a"}, &SelectOpts{Default: "b"}); err == nil {
		t.Error("expected error for unknown default")
	}

	it, err := NewSelect("Mode", []string{"a", "b"}, &SelectOpts{Default: "b"})
	if err != nil {
		t.Fatalf("NewSelect() failed: %v", err)
	}
	if it.Value() != "b" {
		t.Errorf("value = %q, want %q", it.Value(), "b")
	}
}

func TestFinalItem(t *testing.T) {
	it := NewFinal("Exit", "bye")

	v, err := it.Serialize()
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	if v != false {
		t.Errorf("Serialize() before press = %v, want false", v)
	}

	a, ok := it.HandlePress().(ExitAction)
	if !ok {
		t.Fatalf("HandlePress() = %T, want ExitAction", it.HandlePress())
	}
	if a.Value != "bye" {
		t.Errorf("exit value = %v, want %q", a.Value, "bye")
	}

	v, _ = it.Serialize()
	if v != true {
		t.Errorf("Serialize() after press = %v, want true", v)
	}
}

func TestCallbackItem(t *testing.T) {
	disp := newFakeDisplay(128, 64)

	var got *Menu
	var during any
	it := NewCallback("BEEP", func(m *Menu) {
		got = m
		data, err := m.Serialize()
		if err != nil {
			t.Errorf("Serialize() inside callback failed: %v", err)
			return
		}
		during = data["BEEP"]
	})

	m, err := New([]Item{it}, testOpts(disp, &fakeEncoder{}, testButton()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	it.HandlePress()
	if got != m {
		t.Error("callback did not receive its menu")
	}
	if during != true {
		t.Errorf("Serialize() during callback = %v, want true", during)
	}

	v, _ := it.Serialize()
	if v != false {
		t.Errorf("Serialize() after callback = %v, want false", v)
	}
}

func TestCallbackItemNilFunc(t *testing.T) {
	disp := newFakeDisplay(128, 64)
	_, err := New([]Item{NewCallback("BEEP", nil)}, testOpts(disp, &fakeEncoder{}, testButton()))
	if err == nil {
		t.Fatal("expected error but didn't get one")
	}
	if err.Error() != `menu: nil callback for item "BEEP"` {
		t.Errorf("New() error = %q", err)
	}
}

func TestTitleAndBackItems(t *testing.T) {
	title := NewTitle("=== Demo ===")
	if title.Selectable() {
		t.Error("titles must not be selectable")
	}
	if _, err := title.Serialize(); !errors.Is(err, ErrUnserializable) {
		t.Error("titles must not serialize")
	}

	back := NewBack("")
	if back.Text() != "Back" {
		t.Errorf("default back text = %q, want %q", back.Text(), "Back")
	}
	if !back.Selectable() {
		t.Error("back items must be selectable")
	}
	if _, err := back.Serialize(); !errors.Is(err, ErrUnserializable) {
		t.Error("back items must not serialize")
	}

	custom := NewBack("<- return")
	if custom.Text() != "<- return" {
		t.Errorf("back text = %q, want %q", custom.Text(), "<- return")
	}
}
