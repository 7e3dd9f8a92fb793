package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hollowlog/yearshelf/internal/tasks"
)

// fetchResultMsg carries one completed category fetch back into Update.
type fetchResultMsg struct {
	result tasks.FetchResult
}

var _ tea.Msg = fetchResultMsg{}
