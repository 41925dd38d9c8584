// Package tui renders the inventory view-model as a terminal screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ratio1/grocery_manager_go/internal/httpx"
	"github.com/Ratio1/grocery_manager_go/pkg/grocery"
	"github.com/Ratio1/grocery_manager_go/pkg/inventory"
)

type focus int

const (
	focusName focus = iota
	focusPrice
	focusDescription
	focusQuantity
	focusSubmit
	focusSearch
	focusTable
	focusCount
)

const title = "Grocery Inventory Management"

// Model is the bubbletea model for the inventory screen.
type Model struct {
	ctx context.Context
	vm  *inventory.ViewModel

	inputs  []textinput.Model
	search  textinput.Model
	table   table.Model
	visible []grocery.Item

	focus     focus
	status    string
	statusErr bool
	pending   int
	width     int
}

// New returns a model bound to vm. Requests are issued with ctx.
func New(ctx context.Context, vm *inventory.ViewModel) Model {
	m := Model{
		ctx:    ctx,
		vm:     vm,
		inputs: newFieldInputs(),
		search: newSearchInput(),
		table:  newItemTable(),
	}
	m.search.SetValue(vm.SearchFilter())
	syncInputs(m.inputs, vm.Draft())
	m.setFocus(focusName)
	m.refreshRows()
	m.pending = 1
	m.setStatus("Loading…")
	return m
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadCmd(m.ctx, m.vm))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if h := msg.Height - 22; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case loadedMsg:
		m.pending--
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(fmt.Sprintf("Loaded %d items", len(m.vm.Items())))
		}
		m.refreshRows()
		return m, nil

	case savedMsg:
		m.pending--
		if msg.err != nil {
			m.setError(msg.err)
		} else if msg.editing {
			m.setStatus("Item updated")
		} else {
			m.setStatus("Item added")
		}
		syncInputs(m.inputs, m.vm.Draft())
		m.refreshRows()
		return m, nil

	case deletedMsg:
		m.pending--
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(fmt.Sprintf("Item %s deleted", msg.id))
		}
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+r":
		return m, m.startLoad()
	case "esc":
		switch {
		case m.vm.Editing():
			m.vm.CancelEdit()
			syncInputs(m.inputs, m.vm.Draft())
			m.setStatus("Edit cancelled")
		case !m.vm.Draft().IsZero():
			m.vm.CancelEdit()
			syncInputs(m.inputs, m.vm.Draft())
			m.setStatus("Form cleared")
		}
		return m, nil
	}

	switch {
	case m.focus <= focusQuantity:
		if msg.Type == tea.KeyEnter {
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		field := inventory.Fields()[m.focus]
		if err := m.vm.UpdateDraft(field, m.inputs[m.focus].Value()); err != nil {
			m.setError(err)
		}
		return m, cmd

	case m.focus == focusSubmit:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return m, m.submit()
		}
		return m, nil

	case m.focus == focusSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.vm.SetSearchFilter(m.search.Value())
		m.refreshRows()
		return m, cmd

	default:
		switch msg.String() {
		case "e", "enter":
			if it, ok := m.selected(); ok {
				m.vm.BeginEdit(it)
				syncInputs(m.inputs, m.vm.Draft())
				m.setFocus(focusName)
				m.setStatus("Editing " + it.Name)
			}
			return m, nil
		case "d", "delete":
			if it, ok := m.selected(); ok {
				m.pending++
				m.setStatus("Deleting " + it.Name + "…")
				return m, deleteCmd(m.ctx, m.vm, it.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

// submit validates the draft locally and only then dispatches the write.
func (m *Model) submit() tea.Cmd {
	if err := m.vm.Draft().Validate(); err != nil {
		m.setError(err)
		return nil
	}
	editing := m.vm.Editing()
	m.pending++
	m.setStatus("Saving…")
	return submitCmd(m.ctx, m.vm, editing)
}

func (m *Model) startLoad() tea.Cmd {
	m.pending++
	m.setStatus("Loading…")
	return loadCmd(m.ctx, m.vm)
}

func (m *Model) selected() (grocery.Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return grocery.Item{}, false
	}
	return m.visible[i], true
}

func (m *Model) refreshRows() {
	m.visible = m.vm.VisibleItems()
	m.table.SetRows(itemRows(m.visible))
	if c := m.table.Cursor(); c >= len(m.visible) && len(m.visible) > 0 {
		m.table.SetCursor(len(m.visible) - 1)
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	for i := range m.inputs {
		if focus(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if f == focusSearch {
		m.search.Focus()
	} else {
		m.search.Blur()
	}
	if f == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = errorText(err), true
}

// errorText prefers the backend's own message for status errors.
func errorText(err error) string {
	var httpErr *httpx.HTTPError
	if errors.As(err, &httpErr) {
		var opErr *inventory.OpError
		if errors.As(err, &opErr) {
			return fmt.Sprintf("%s failed: %d %s", opErr.Op, httpErr.StatusCode, httpErr.Message())
		}
		return fmt.Sprintf("%d %s", httpErr.StatusCode, httpErr.Message())
	}
	return err.Error()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for i, f := range inventory.Fields() {
		label := labelStyle
		if m.focus == focus(i) {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	button := addButtonStyle.Render("Add Item")
	if m.vm.Editing() {
		button = updateButtonStyle.Render("Update Item")
	}
	marker := "  "
	if m.focus == focusSubmit {
		marker = buttonFocusMarker.Render("▸ ")
	}
	b.WriteString(sectionStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, marker, button)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(m.search.View()))
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(placeholderStyle.Render("No items found"))
	} else {
		b.WriteString(sectionStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.pending > 0 && !m.statusErr {
		b.WriteString(statusStyle.Render(fmt.Sprintf("[%d pending] ", m.pending)))
	}
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) helpText() string {
	parts := []string{"tab/shift+tab focus", "enter submit"}
	if m.focus == focusTable {
		parts = []string{"↑/↓ select", "e edit", "d delete"}
	}
	switch {
	case m.vm.Editing():
		parts = append(parts, "esc cancel edit")
	case !m.vm.Draft().IsZero():
		parts = append(parts, "esc clear form")
	}
	return strings.Join(append(parts, "ctrl+r reload", "ctrl+c quit"), " • ")
}
