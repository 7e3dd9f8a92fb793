package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/navstate"
	"github.com/hollowlog/yearshelf/internal/selector"
	"github.com/hollowlog/yearshelf/internal/tasks"
	"github.com/hollowlog/yearshelf/internal/years"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GalleryView ViewState = iota
	YearSelectView
)

// sectionTitle maps a category to its gallery section heading.
var sectionTitle = map[models.Category]string{
	models.CategoryBook:   "Books",
	models.CategoryScreen: "Movies & TV",
	models.CategoryMusic:  "Music",
	models.CategoryGame:   "Games",
}

// Model represents the TUI application state.
//
// The model composes the year machinery: the combobox machine owns the year
// picker, the binder mirrors the selection into query state, and the
// coordinator owns per-category fetch state. Update only routes between them.
type Model struct {
	ctx         context.Context
	view        ViewState
	coordinator *tasks.FetchCoordinator
	binder      *navstate.Binder
	machine     *selector.Machine
	width       int
	height      int
	lists       map[models.Category]list.Model
	active      int // index into models.Categories
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// initially selected year comes from the binder's query state, so a deep
// link like "?year=2023" opens on that year.
func NewModel(ctx context.Context, coordinator *tasks.FetchCoordinator, binder *navstate.Binder, rng years.Range) *Model {
	return &Model{
		ctx:         ctx,
		view:        GalleryView,
		coordinator: coordinator,
		binder:      binder,
		machine:     selector.NewMachine(rng.Available(), binder.ReadYear()),
		lists:       make(map[models.Category]list.Model),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init selects the deep-linked (or current) year and kicks off its fetches.
func (m *Model) Init() tea.Cmd {
	return m.commitYear(m.binder.ReadYear())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for category, l := range m.lists {
			l.SetSize(m.sectionWidth(), m.sectionHeight())
			m.lists[category] = l
		}
		return m, nil

	case fetchResultMsg:
		m.applyEvents(m.coordinator.Apply(msg.result))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case YearSelectView:
			return m.handleYearSelectKeys(msg)
		default:
			return m.handleGalleryKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.view == YearSelectView {
		return m.renderYearSelect()
	}
	return m.renderGallery()
}

// commitYear makes year the selection everywhere: the combobox, the query
// state (one history entry), and the coordinator. Returns the fetch commands
// for a cache miss, nil on a hit.
func (m *Model) commitYear(year int) tea.Cmd {
	m.machine.SetSelected(year)
	m.binder.WriteYear(year)

	requests, events := m.coordinator.Select(year)
	m.applyEvents(events)
	return m.issueFetches(requests)
}

// issueFetches turns pending requests into one command per category.
func (m *Model) issueFetches(requests []tasks.FetchRequest) tea.Cmd {
	if len(requests) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(requests))
	for i, req := range requests {
		req := req
		cmds[i] = func() tea.Msg {
			return fetchResultMsg{result: m.coordinator.Fetch(m.ctx, req)}
		}
	}
	return tea.Batch(cmds...)
}

// applyEvents folds coordinator events into the rendered lists.
func (m *Model) applyEvents(events []tasks.Event) {
	for _, ev := range events {
		if ev.Kind != tasks.EventCategoryStateChanged {
			continue
		}
		if ev.State.Phase == tasks.PhaseReady {
			m.lists[ev.Category] = newRecordList(
				sectionTitle[ev.Category], ev.State.Records,
				m.sectionWidth(), m.sectionHeight(),
			)
		} else {
			delete(m.lists, ev.Category)
		}
	}
}

func (m *Model) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.year):
		m.machine.Transition(selector.Event{Kind: selector.Activate})
		m.view = YearSelectView
		return m, nil

	case key.Matches(msg, m.keys.historyB):
		// Back restores query state without pushing a new entry. The year
		// was usually fetched before so the cache answers synchronously,
		// but a miss still hands back requests to issue.
		if year, ok := m.binder.Back(); ok {
			m.machine.SetSelected(year)
			requests, events := m.coordinator.Select(year)
			m.applyEvents(events)
			return m, m.issueFetches(requests)
		}
		return m, nil

	case key.Matches(msg, m.keys.retry):
		category := models.Categories[m.active]
		if m.coordinator.State(category).Phase == tasks.PhaseError {
			req, events := m.coordinator.Retry(category)
			m.applyEvents(events)
			return m, m.issueFetches([]tasks.FetchRequest{req})
		}
		return m, nil

	case key.Matches(msg, m.keys.left):
		if m.active > 0 {
			m.active--
		}
		return m, nil

	case key.Matches(msg, m.keys.right):
		if m.active < len(models.Categories)-1 {
			m.active++
		}
		return m, nil
	}

	// Remaining keys scroll the active section's list.
	category := models.Categories[m.active]
	if l, ok := m.lists[category]; ok {
		var cmd tea.Cmd
		l, cmd = l.Update(msg)
		m.lists[category] = l
		return m, cmd
	}
	return m, nil
}

// handleYearSelectKeys drives the combobox machine. The listbox renders
// newest year first, so visual down moves toward older years and the
// machine's index directions are inverted here.
func (m *Model) handleYearSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.down):
		m.machine.Transition(selector.Event{Kind: selector.ArrowUp})
		return m, nil

	case key.Matches(msg, m.keys.up):
		m.machine.Transition(selector.Event{Kind: selector.ArrowDown})
		return m, nil

	case key.Matches(msg, m.keys.top):
		m.machine.Transition(selector.Event{Kind: selector.End})
		return m, nil

	case key.Matches(msg, m.keys.bottom):
		m.machine.Transition(selector.Event{Kind: selector.Home})
		return m, nil

	case key.Matches(msg, m.keys.enter):
		year, ok := m.machine.Transition(selector.Event{Kind: selector.Enter})
		m.view = GalleryView
		if !ok {
			return m, nil
		}
		return m, m.commitYear(year)

	case key.Matches(msg, m.keys.back):
		m.machine.Transition(selector.Event{Kind: selector.Escape})
		m.view = GalleryView
		return m, nil
	}

	return m, nil
}

func (m *Model) sectionWidth() int {
	if m.width == 0 {
		return 30
	}
	return m.width/len(models.Categories) - 2
}

func (m *Model) sectionHeight() int {
	if m.height == 0 {
		return 20
	}
	return m.height - 8
}

func (m *Model) renderGallery() string {
	title := styles.title.Render(fmt.Sprintf("Yearshelf · %d", m.machine.Selected()))

	sections := make([]string, 0, len(models.Categories))
	for i, category := range models.Categories {
		sections = append(sections, m.renderSection(category, i == m.active))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sections...)

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.year, m.keys.left, m.keys.right, m.keys.retry, m.keys.historyB, m.keys.quit,
	})

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderSection(category models.Category, active bool) string {
	heading := sectionTitle[category]
	if active {
		heading = styles.focused.Render("▸ " + heading)
	} else {
		heading = styles.help.Render("  " + heading)
	}

	var body string
	state := m.coordinator.State(category)
	switch state.Phase {
	case tasks.PhaseLoading:
		body = styles.warn.Render("Loading…")
	case tasks.PhaseError:
		body = styles.err.Render(state.Message) + "\n" + styles.help.Render("press r to retry")
	case tasks.PhaseReady:
		if len(state.Records) == 0 {
			body = styles.help.Render("Nothing here.")
		} else if l, ok := m.lists[category]; ok {
			body = l.View()
		}
	}

	section := heading + "\n" + body
	return lipgloss.NewStyle().Width(m.sectionWidth()).Padding(0, 1).Render(section)
}

func (m *Model) renderYearSelect() string {
	title := styles.title.Render("Select year")

	options := m.machine.Options()
	var b strings.Builder
	// Newest first.
	for i := len(options) - 1; i >= 0; i-- {
		opt := options[i]
		line := fmt.Sprintf("  %d", opt.Year)
		if opt.Selected {
			line += " " + styles.selected.Render("✓")
		}
		if opt.Focused {
			line = styles.focused.Render("›" + line[1:])
		}
		b.WriteString(line + "\n")
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.up, m.keys.down, m.keys.enter, m.keys.back, m.keys.quit,
	})

	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}
