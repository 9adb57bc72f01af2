package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cratedig/internal/models"
	"github.com/desertthunder/cratedig/internal/scrape"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecordListView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	view       ViewState
	store      scrape.Store
	width      int
	height     int
	recordList list.Model
	records    []models.PlaylistRecord
	selected   *models.PlaylistRecord
	err        error
	help       help.Model
	keys       keyMap
}

type recordsLoadedMsg struct {
	table *models.ResultTable
	err   error
}

// NewModel creates a new TUI model backed by the given result store.
func NewModel(store scrape.Store) *Model {
	return &Model{
		view:  RecordListView,
		store: store,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by loading the results workbook.
func (m *Model) Init() tea.Cmd {
	return m.loadRecords()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.recordList.Width() == 0 {
			m.recordList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RecordListView:
			return m.handleRecordListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.records = msg.table.Records
		items := make([]list.Item, len(m.records))
		for i, rec := range m.records {
			items[i] = recordItem{record: rec}
		}
		m.recordList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.recordList.Title = fmt.Sprintf("Scraped Playlists (%d)", len(m.records))
		m.recordList.SetSize(m.width-4, m.height-8)
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RecordListView:
		return m.renderRecordList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

// Err returns the error that terminated the TUI, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) handleRecordListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadRecords()
	case "enter":
		selected := m.recordList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(recordItem); ok {
				rec := item.record
				m.selected = &rec
				m.view = DetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = RecordListView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == RecordListView {
		m.recordList, cmd = m.recordList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		table, err := m.store.Load()
		return recordsLoadedMsg{table: table, err: err}
	}
}

func (m *Model) renderRecordList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.reload, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.recordList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No record selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.PlaylistName)
	info := fmt.Sprintf(
		"\nPlaylist ID: %s\nSongs: %d\nQuery: %q\nLanguage: %s\nCaptured: %s\n",
		m.selected.PlaylistID,
		m.selected.NumSongs,
		m.selected.Query,
		m.selected.Language,
		m.selected.Timestamp,
	)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
