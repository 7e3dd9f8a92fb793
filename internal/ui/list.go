package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/hollowlog/yearshelf/internal/models"
)

var _ list.Item = recordItem{}

// recordItem wraps [models.CategoryRecord] to implement [list.Item].
type recordItem struct {
	record models.CategoryRecord
}

func (i recordItem) FilterValue() string { return i.record.Item.DisplayTitle }
func (i recordItem) Title() string       { return i.record.Item.DisplayTitle }
func (i recordItem) Description() string {
	created, err := i.record.CreatedAt()
	if err != nil {
		return "completed " + i.record.CreatedTime
	}
	return "completed " + created.Format("Jan 2, 2006")
}

// newRecordList builds the bubbles list for one category's records.
func newRecordList(title string, records []models.CategoryRecord, width, height int) list.Model {
	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = recordItem{record: record}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
