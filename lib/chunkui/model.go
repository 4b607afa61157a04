// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/render"
)

// FocusRegion identifies which pane receives navigation keys.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList FocusRegion = iota

	// FocusDetail means navigation keys scroll the detail viewport.
	FocusDetail
)

const (
	minListWidth = 24
	headerHeight = 1
)

// Model is the bubbletea model for the chunk browser. The document is
// read once; the browser never modifies it.
type Model struct {
	path   string
	chunks []*png.Chunk
	rows   []render.ChunkRow

	// visible holds indices into rows that pass the filter, and
	// cursor is a position in visible.
	visible    []int
	cursor     int
	listOffset int

	focus  FocusRegion
	filter FilterModel
	detail viewport.Model
	help   help.Model
	keys   KeyMap
	theme  render.Theme

	width  int
	height int
}

// NewModel builds a browser for document, which was read from path.
func NewModel(path string, document *png.Document) Model {
	rows := render.Rows(document)
	model := Model{
		path:   path,
		chunks: document.Chunks(),
		rows:   rows,
		detail: viewport.New(0, 0),
		help:   help.New(),
		keys:   DefaultKeyMap,
		theme:  render.DefaultTheme,
	}
	model.applyFilter()
	return model
}

// Selected returns the row under the cursor. ok is false when the
// filter matches nothing.
func (model Model) Selected() (render.ChunkRow, bool) {
	if len(model.visible) == 0 {
		return render.ChunkRow{}, false
	}
	return model.rows[model.visible[model.cursor]], true
}

// Visible returns the number of rows that pass the filter.
func (model Model) Visible() int { return len(model.visible) }

// Focus returns the pane that receives navigation keys.
func (model Model) Focus() FocusRegion { return model.focus }

// Init implements tea.Model.
func (model Model) Init() tea.Cmd { return nil }

// Update implements tea.Model. Keyboard events go to the filter input
// while it is active, otherwise to the focused pane.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width, model.height = message.Width, message.Height
		model.layout()
		return model, nil

	case tea.KeyMsg:
		if model.filter.Active {
			return model.handleFilterKeys(message)
		}
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.FocusToggle):
			if model.focus == FocusList {
				model.focus = FocusDetail
			} else {
				model.focus = FocusList
			}
		case key.Matches(message, model.keys.FilterActivate):
			model.filter.Active = true
			model.focus = FocusList
			model.layout()
		case key.Matches(message, model.keys.FilterClear):
			model.filter.Clear()
			model.applyFilter()
		case key.Matches(message, model.keys.Help):
			model.help.ShowAll = !model.help.ShowAll
			model.layout()
		case model.focus == FocusDetail:
			var command tea.Cmd
			model.detail, command = model.detail.Update(message)
			return model, command
		default:
			model.handleListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case key.Matches(message, model.keys.FilterClear):
		model.filter.Clear()
		model.applyFilter()
	case message.Type == tea.KeyEnter:
		model.filter.Active = false
	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter()
		}
	case message.Type == tea.KeySpace:
		model.filter.HandleRune(' ')
		model.applyFilter()
	case message.Type == tea.KeyRunes:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilter()
	}
	model.layout()
	return model, nil
}

func (model *Model) handleListKeys(message tea.KeyMsg) {
	previous := model.cursor
	switch {
	case key.Matches(message, model.keys.Up):
		model.cursor--
	case key.Matches(message, model.keys.Down):
		model.cursor++
	case key.Matches(message, model.keys.PageUp):
		model.cursor -= max(1, model.bodyHeight())
	case key.Matches(message, model.keys.PageDown):
		model.cursor += max(1, model.bodyHeight())
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		model.cursor = len(model.visible) - 1
	}
	model.cursor = max(0, min(model.cursor, len(model.visible)-1))
	if model.cursor != previous {
		model.scrollToCursor()
		model.refreshDetail()
	}
}

// applyFilter recomputes the visible rows, keeping the selected chunk
// selected when it still matches.
func (model *Model) applyFilter() {
	selected, hadSelection := model.Selected()
	model.visible = model.filter.Apply(model.rows)
	model.cursor = 0
	if hadSelection {
		for position, index := range model.visible {
			if index == selected.Index {
				model.cursor = position
				break
			}
		}
	}
	model.scrollToCursor()
	model.refreshDetail()
}

func (model *Model) scrollToCursor() {
	height := max(1, model.bodyHeight())
	if model.cursor < model.listOffset {
		model.listOffset = model.cursor
	}
	if model.cursor >= model.listOffset+height {
		model.listOffset = model.cursor - height + 1
	}
	model.listOffset = max(0, model.listOffset)
}

func (model *Model) refreshDetail() {
	row, ok := model.Selected()
	if !ok {
		model.detail.SetContent("no chunks match the filter")
	} else {
		model.detail.SetContent(Detail(model.chunks[row.Index], row, model.detail.Width))
	}
	model.detail.GotoTop()
}

// layout sizes both panes to the window.
func (model *Model) layout() {
	listWidth := model.listWidth()
	model.detail.Width = max(0, model.width-listWidth-1)
	model.detail.Height = max(0, model.bodyHeight())
	model.scrollToCursor()
	model.refreshDetail()
}

func (model Model) listWidth() int {
	return min(model.width, max(minListWidth, model.width*2/5))
}

func (model Model) footerHeight() int {
	height := lipgloss.Height(model.help.View(model.keys))
	if model.filter.Active || model.filter.Input != "" {
		height++
	}
	return height
}

func (model Model) bodyHeight() int {
	return model.height - headerHeight - model.footerHeight()
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Title)
	faint := lipgloss.NewStyle().Foreground(model.theme.Faint)

	header := title.Render("pngme") + " " + model.path + " " +
		faint.Render(fmt.Sprintf("%d of %d chunks", len(model.visible), len(model.rows)))

	separator := faint.Render(strings.TrimSuffix(strings.Repeat("│\n", max(1, model.bodyHeight())), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, model.listView(), separator, model.detail.View())

	sections := []string{ansi.Truncate(header, model.width, "…"), body}
	if model.filter.Active || model.filter.Input != "" {
		cursor := ""
		if model.filter.Active {
			cursor = "█"
		}
		sections = append(sections, "/"+model.filter.Input+cursor)
	}
	sections = append(sections, model.help.View(model.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (model Model) listView() string {
	width := model.listWidth()
	height := max(1, model.bodyHeight())
	critical := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Critical)
	ancillary := lipgloss.NewStyle().Foreground(model.theme.Ancillary)
	invalid := lipgloss.NewStyle().Foreground(model.theme.Error)
	selected := lipgloss.NewStyle().Reverse(true)
	if model.focus == FocusDetail {
		selected = selected.Faint(true)
	}

	indexWidth := len(fmt.Sprint(len(model.rows) - 1))
	lines := make([]string, 0, height)
	for position := model.listOffset; position < len(model.visible) && len(lines) < height; position++ {
		row := model.rows[model.visible[position]]
		typeStyle := ancillary
		if row.Critical {
			typeStyle = critical
		}
		if row.Invalid {
			typeStyle = invalid
		}
		summary := strings.ReplaceAll(row.Summary, "\n", "; ")
		line := fmt.Sprintf("%*d %s %s", indexWidth, row.Index, typeStyle.Render(row.Type.String()), summary)
		line = ansi.Truncate(line, width, "…")
		if gap := width - ansi.StringWidth(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}
		if position == model.cursor {
			line = selected.Render(ansi.Strip(line))
		}
		lines = append(lines, line)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
