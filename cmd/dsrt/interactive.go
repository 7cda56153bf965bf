package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/TyedeeGit/dsk/abi"
	"github.com/TyedeeGit/dsk/heap"
	"github.com/TyedeeGit/dsk/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	heapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3C3C3C"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxEvents = 8

type modelState int

const (
	stateBrowse modelState = iota
	stateInput
)

// row is one live object as listed in the inspector.
type row struct {
	simple *heap.SimpleObject
	term   *heap.TermObject
}

type inspectorModel struct {
	rt        *runtime.Runtime
	input     textinput.Model
	rows      []row
	events    []string
	unsub     []func()
	err       error
	deinitErr error
	selected  int
	state     modelState
}

func newInspectorModel(maxNodes int) *inspectorModel {
	rt := runtime.NewWithConfig(&runtime.Config{MaxDescriptorNodes: maxNodes})

	ti := textinput.New()
	ti.Placeholder = "{i32, [4]n8} or a byte count"
	ti.Prompt = "allocate: "
	ti.Width = 40

	m := &inspectorModel{rt: rt, input: ti}
	record := heap.ObserverFunc(m.record)
	m.unsub = append(m.unsub, rt.Simple().Subscribe(record), rt.Terms().Subscribe(record))
	return m
}

func (m *inspectorModel) record(e heap.Event) {
	var line string
	switch e.Type {
	case heap.EventMoved:
		line = fmt.Sprintf("%s: moved %d -> %d", e.Strategy, e.From, e.Index)
	default:
		line = fmt.Sprintf("%s: %s #%d (%d bytes)", e.Strategy, e.Type, e.Index, e.Size)
	}
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m *inspectorModel) refresh() {
	m.rows = m.rows[:0]
	m.rt.Simple().Each(func(o *heap.SimpleObject) bool {
		m.rows = append(m.rows, row{simple: o})
		return true
	})
	m.rt.Terms().Each(func(o *heap.TermObject) bool {
		m.rows = append(m.rows, row{term: o})
		return true
	})
	if m.selected >= len(m.rows) {
		m.selected = max(len(m.rows)-1, 0)
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateInput {
		switch key.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.state = stateBrowse
			m.input.Blur()
			m.input.Reset()
			return m, nil
		case "enter":
			m.err = m.allocate(m.input.Value())
			m.state = stateBrowse
			m.input.Blur()
			m.input.Reset()
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case "a":
		m.state = stateInput
		m.err = nil
		return m, m.input.Focus()
	case "d":
		m.err = m.deleteSelected()
		m.refresh()
	}
	return m, nil
}

// allocate treats a bare number as a simple block and anything else as a
// descriptor for the term heap.
func (m *inspectorModel) allocate(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		_, err := m.rt.Simple().Allocate(heap.Single(n))
		return errors.Wrapf(err, "allocate %d bytes", n)
	}

	terms := m.rt.Terms()
	shape, err := abi.Parse(terms.Arena(), text)
	if err != nil {
		return errors.Wrap(err, "parse descriptor")
	}
	_, err = terms.Allocate(shape)
	return errors.Wrapf(err, "allocate %s", text)
}

func (m *inspectorModel) deleteSelected() error {
	if len(m.rows) == 0 {
		return nil
	}
	r := m.rows[m.selected]
	if r.simple != nil {
		return errors.Wrap(m.rt.Simple().Delete(r.simple), "delete simple object")
	}
	return errors.Wrap(m.rt.Terms().Delete(r.term), "delete term object")
}

func (m *inspectorModel) quit() (tea.Model, tea.Cmd) {
	for _, unsub := range m.unsub {
		unsub()
	}
	m.deinitErr = m.rt.Deinit()
	return m, tea.Quit
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DSRT Heap Inspector"))
	b.WriteString(" ")
	b.WriteString(m.rt.State().String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d/%d   %s %d/%d\n\n",
		heapStyle.Render("simple"), m.rt.Simple().Len(), m.rt.Simple().Cap(),
		heapStyle.Render("term"), m.rt.Terms().Len(), m.rt.Terms().Cap())

	if len(m.rows) == 0 {
		b.WriteString("  (no live objects)\n")
	}
	for i, r := range m.rows {
		line := m.formatRow(r)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		for _, e := range m.events {
			b.WriteString(eventStyle.Render(e))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateInput {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter allocate • esc back"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • a allocate • d delete • q quit"))
	}
	return b.String()
}

func (m *inspectorModel) formatRow(r row) string {
	if r.simple != nil {
		return fmt.Sprintf("simple #%d %s", r.simple.Index,
			typeStyle.Render(r.simple.Allocator.String()))
	}
	shape, err := abi.Format(m.rt.Terms().Arena(), r.term.Shape)
	if err != nil {
		shape = "?"
	}
	return fmt.Sprintf("term   #%d %s %d bytes", r.term.Index,
		typeStyle.Render(shape), len(r.term.Data))
}

func runInteractive(maxNodes int) error {
	m := newInspectorModel(maxNodes)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.deinitErr
}
