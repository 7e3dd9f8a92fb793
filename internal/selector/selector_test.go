package selector

import "testing"

func machine() *Machine {
	// 2020..2024, committed selection 2023.
	return NewMachine([]int{2020, 2021, 2022, 2023, 2024}, 2023)
}

func TestMachineOpening(t *testing.T) {
	t.Run("Activate Focuses Committed Selection", func(t *testing.T) {
		m := machine()

		if _, ok := m.Transition(Event{Kind: Activate}); ok {
			t.Error("opening must not emit a selection")
		}
		if !m.IsOpen() {
			t.Fatal("expected machine open after Activate")
		}
		if got := m.FocusedIndex(); got != 3 {
			t.Errorf("FocusedIndex() = %d, want 3 (index of 2023)", got)
		}
	})

	t.Run("Non-Activate Events Ignored While Closed", func(t *testing.T) {
		m := machine()
		for _, kind := range []EventKind{ArrowDown, ArrowUp, Home, End, Enter, Escape, Tab} {
			if _, ok := m.Transition(Event{Kind: kind}); ok {
				t.Errorf("event %v emitted a selection while closed", kind)
			}
			if m.IsOpen() {
				t.Fatalf("event %v opened the machine", kind)
			}
		}
	})
}

func TestMachineFocusMovement(t *testing.T) {
	open := func() *Machine {
		m := machine()
		m.Transition(Event{Kind: Activate})
		return m
	}

	t.Run("ArrowDown Clamps At Last", func(t *testing.T) {
		m := open()
		for i := 0; i < 10; i++ {
			m.Transition(Event{Kind: ArrowDown})
		}
		if got := m.FocusedIndex(); got != 4 {
			t.Errorf("FocusedIndex() = %d, want 4", got)
		}
	})

	t.Run("ArrowUp Clamps At Zero", func(t *testing.T) {
		m := open()
		for i := 0; i < 10; i++ {
			m.Transition(Event{Kind: ArrowUp})
		}
		if got := m.FocusedIndex(); got != 0 {
			t.Errorf("FocusedIndex() = %d, want 0", got)
		}
	})

	t.Run("Home And End Regardless Of Prior Focus", func(t *testing.T) {
		m := open()
		m.Transition(Event{Kind: ArrowUp})

		m.Transition(Event{Kind: Home})
		if got := m.FocusedIndex(); got != 0 {
			t.Errorf("after Home, FocusedIndex() = %d, want 0", got)
		}

		m.Transition(Event{Kind: End})
		if got := m.FocusedIndex(); got != 4 {
			t.Errorf("after End, FocusedIndex() = %d, want 4", got)
		}
	})

	t.Run("Hover Sets Focus", func(t *testing.T) {
		m := open()
		m.Transition(Event{Kind: Hover, Index: 1})
		if got := m.FocusedIndex(); got != 1 {
			t.Errorf("FocusedIndex() = %d, want 1", got)
		}

		// Out-of-range hovers are ignored.
		m.Transition(Event{Kind: Hover, Index: 99})
		if got := m.FocusedIndex(); got != 1 {
			t.Errorf("out-of-range hover moved focus to %d", got)
		}
	})
}

func TestMachineCommitAndDismiss(t *testing.T) {
	t.Run("Enter Commits Focused Option", func(t *testing.T) {
		m := machine()
		m.Transition(Event{Kind: Activate})
		m.Transition(Event{Kind: ArrowUp}) // focus 2022

		year, ok := m.Transition(Event{Kind: Enter})
		if !ok || year != 2022 {
			t.Fatalf("Enter emitted (%d, %v), want (2022, true)", year, ok)
		}
		if m.IsOpen() {
			t.Error("expected machine closed after Enter")
		}
		if got := m.Selected(); got != 2022 {
			t.Errorf("Selected() = %d, want 2022", got)
		}
	})

	t.Run("ClickOption Commits That Option", func(t *testing.T) {
		m := machine()
		m.Transition(Event{Kind: Activate})

		year, ok := m.Transition(Event{Kind: ClickOption, Index: 0})
		if !ok || year != 2020 {
			t.Fatalf("ClickOption emitted (%d, %v), want (2020, true)", year, ok)
		}
		if m.IsOpen() {
			t.Error("expected machine closed after click")
		}
	})

	t.Run("Escape Keeps Prior Selection", func(t *testing.T) {
		m := machine()
		m.Transition(Event{Kind: Activate})
		m.Transition(Event{Kind: ArrowDown})

		if _, ok := m.Transition(Event{Kind: Escape}); ok {
			t.Error("Escape must not emit a selection")
		}
		if m.IsOpen() {
			t.Error("expected machine closed after Escape")
		}
		if got := m.Selected(); got != 2023 {
			t.Errorf("Selected() = %d, want unchanged 2023", got)
		}
	})

	t.Run("Tab And ClickOutside Dismiss", func(t *testing.T) {
		for _, kind := range []EventKind{Tab, ClickOutside} {
			m := machine()
			m.Transition(Event{Kind: Activate})
			if _, ok := m.Transition(Event{Kind: kind}); ok {
				t.Errorf("event %v emitted a selection", kind)
			}
			if m.IsOpen() {
				t.Errorf("event %v left the machine open", kind)
			}
			if got := m.Selected(); got != 2023 {
				t.Errorf("event %v changed selection to %d", kind, got)
			}
		}
	})

	t.Run("Reopen Focuses New Selection", func(t *testing.T) {
		m := machine()
		m.Transition(Event{Kind: Activate})
		m.Transition(Event{Kind: Home})
		m.Transition(Event{Kind: Enter}) // commit 2020

		m.Transition(Event{Kind: Activate})
		if got := m.FocusedIndex(); got != 0 {
			t.Errorf("FocusedIndex() on reopen = %d, want 0", got)
		}
	})
}

func TestMachineAccessibility(t *testing.T) {
	t.Run("Trigger Attributes", func(t *testing.T) {
		m := machine()

		closed := m.Trigger()
		if closed.Role != "combobox" || closed.HasPopup != "listbox" {
			t.Errorf("trigger attrs = %+v", closed)
		}
		if closed.Expanded {
			t.Error("aria-expanded must be false while closed")
		}
		if closed.ActiveDescendant != "" {
			t.Error("aria-activedescendant must be empty while closed")
		}
		if closed.Controls != m.ListboxID() {
			t.Errorf("aria-controls = %q, want %q", closed.Controls, m.ListboxID())
		}

		m.Transition(Event{Kind: Activate})
		m.Transition(Event{Kind: Home})
		open := m.Trigger()
		if !open.Expanded {
			t.Error("aria-expanded must be true while open")
		}
		if open.ActiveDescendant != m.OptionID(0) {
			t.Errorf("aria-activedescendant = %q, want %q", open.ActiveDescendant, m.OptionID(0))
		}
	})

	t.Run("Option Selected Tracks Commit Not Focus", func(t *testing.T) {
		m := machine()
		m.Transition(Event{Kind: Activate})
		m.Transition(Event{Kind: Home}) // focus 2020, commit still 2023

		options := m.Options()
		for _, opt := range options {
			if opt.Role != "option" {
				t.Errorf("option %d role = %q", opt.Year, opt.Role)
			}
			wantSelected := opt.Year == 2023
			if opt.Selected != wantSelected {
				t.Errorf("option %d aria-selected = %v, want %v", opt.Year, opt.Selected, wantSelected)
			}
		}
		if !options[0].Focused {
			t.Error("option 2020 should carry transient focus")
		}
	})
}
