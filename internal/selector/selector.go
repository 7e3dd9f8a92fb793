// package selector implements the year combobox state machine
package selector

import (
	"fmt"
)

// EventKind enumerates the inputs the combobox reacts to. The names follow
// the interactions of the original control: keyboard keys, pointer hover
// and clicks, and focus leaving the widget.
type EventKind int

const (
	// Activate opens the listbox (click, Enter, Space, ArrowDown or
	// ArrowUp on the trigger while closed).
	Activate EventKind = iota
	// ArrowDown moves focus down one option while open.
	ArrowDown
	// ArrowUp moves focus up one option while open.
	ArrowUp
	// Home focuses the first option.
	Home
	// End focuses the last option.
	End
	// Hover focuses option Index (mouse-enter).
	Hover
	// Enter commits the focused option and closes.
	Enter
	// ClickOption commits option Index and closes.
	ClickOption
	// Escape closes without committing.
	Escape
	// Tab closes without committing; focus moves on in tab order.
	Tab
	// ClickOutside closes without committing.
	ClickOutside
)

// Event is one input to the machine. Index is only meaningful for Hover and
// ClickOption.
type Event struct {
	Kind  EventKind
	Index int
}

// Machine is the combobox state machine for year selection.
//
// It owns only UI state: whether the listbox is open, which option holds
// keyboard focus, and the committed selection. The available years are
// derived from the validator range at construction and ordered ascending.
//
// Transitions are pure with respect to the outside world: Transition
// mutates the machine and reports whether a selection was emitted; wiring
// the emission to URL state and fetching is the caller's job.
type Machine struct {
	years    []int
	open     bool
	focused  int
	selected int // index into years
	idPrefix string
}

// NewMachine creates a closed machine over the given ascending years with
// the committed selection at selectedYear. An unknown selectedYear falls
// back to the newest year.
func NewMachine(availableYears []int, selectedYear int) *Machine {
	m := &Machine{
		years:    append([]int(nil), availableYears...),
		selected: len(availableYears) - 1,
		idPrefix: "year-option",
	}
	for i, y := range m.years {
		if y == selectedYear {
			m.selected = i
			break
		}
	}
	return m
}

// IsOpen reports whether the listbox is showing.
func (m *Machine) IsOpen() bool { return m.open }

// FocusedIndex returns the option holding keyboard focus (meaningful while
// open).
func (m *Machine) FocusedIndex() int { return m.focused }

// Years returns the available years, ascending.
func (m *Machine) Years() []int {
	return append([]int(nil), m.years...)
}

// Selected returns the committed year.
func (m *Machine) Selected() int {
	return m.years[m.selected]
}

// SetSelected moves the committed selection to year if it is available.
// Used when the year changes from outside the combobox (deep link, back
// navigation).
func (m *Machine) SetSelected(year int) {
	for i, y := range m.years {
		if y == year {
			m.selected = i
			return
		}
	}
}

// Transition feeds one event through the machine. When the event commits a
// selection it returns (year, true); every other transition returns
// (0, false). Prior selection is untouched by dismissals.
func (m *Machine) Transition(ev Event) (emitted int, ok bool) {
	last := len(m.years) - 1

	if !m.open {
		if ev.Kind == Activate {
			// Focus lands on the committed selection when opening.
			m.open = true
			m.focused = m.selected
		}
		return 0, false
	}

	switch ev.Kind {
	case ArrowDown:
		if m.focused < last {
			m.focused++
		}
	case ArrowUp:
		if m.focused > 0 {
			m.focused--
		}
	case Home:
		m.focused = 0
	case End:
		m.focused = last
	case Hover:
		if ev.Index >= 0 && ev.Index <= last {
			m.focused = ev.Index
		}
	case Enter:
		m.open = false
		m.selected = m.focused
		return m.years[m.selected], true
	case ClickOption:
		if ev.Index >= 0 && ev.Index <= last {
			m.open = false
			m.selected = ev.Index
			return m.years[m.selected], true
		}
	case Escape, Tab, ClickOutside:
		m.open = false
	}

	return 0, false
}

// TriggerAttrs is the accessibility contract of the combobox trigger. It is
// part of the machine's public behavior, produced as data so any rendering
// adapter can expose it.
type TriggerAttrs struct {
	Role             string // "combobox"
	HasPopup         string // "listbox"
	Expanded         bool
	Controls         string // listbox element id
	ActiveDescendant string // focused option id while open, empty otherwise
}

// OptionAttrs is the accessibility contract of one listbox option.
type OptionAttrs struct {
	ID       string
	Role     string // "option"
	Selected bool   // true only for the committed selection
	Focused  bool   // transient keyboard focus, distinct from Selected
	Year     int
}

// ListboxID returns the element id the trigger's aria-controls references.
func (m *Machine) ListboxID() string {
	return m.idPrefix + "-listbox"
}

// OptionID returns the element id of option i.
func (m *Machine) OptionID(i int) string {
	return fmt.Sprintf("%s-%d", m.idPrefix, m.years[i])
}

// Trigger returns the current trigger attributes.
func (m *Machine) Trigger() TriggerAttrs {
	attrs := TriggerAttrs{
		Role:     "combobox",
		HasPopup: "listbox",
		Expanded: m.open,
		Controls: m.ListboxID(),
	}
	if m.open {
		attrs.ActiveDescendant = m.OptionID(m.focused)
	}
	return attrs
}

// Options returns the per-option attributes in ascending year order.
func (m *Machine) Options() []OptionAttrs {
	options := make([]OptionAttrs, len(m.years))
	for i, y := range m.years {
		options[i] = OptionAttrs{
			ID:       m.OptionID(i),
			Role:     "option",
			Selected: i == m.selected,
			Focused:  m.open && i == m.focused,
			Year:     y,
		}
	}
	return options
}
