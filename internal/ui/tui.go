// Package ui provides an optional terminal interface for browsing and
// editing the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todocli/internal/todo"
)

// RunTUI starts the interactive task list on the given storage file.
func RunTUI(ctx context.Context, todoPath string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(todoPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

type tuiModel struct {
	todoPath string
	list     todo.List
	cursor   int
	showHelp bool
	notice   string // transient line shown under the list
	fatalErr error  // load/save failure that should end the program
}

func newTUIModel(todoPath string) *tuiModel {
	return &tuiModel{todoPath: todoPath}
}

func (m *tuiModel) Init() tea.Cmd {
	m.reload()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "x", " ":
		m.toggleComplete()
	case "d":
		m.deleteCurrent()
	case "r", "f5":
		m.reload()
	case "h", "?":
		m.showHelp = !m.showHelp
	}

	if m.fatalErr != nil {
		return m, tea.Quit
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.fatalErr != nil {
		b.WriteString("Error:\n")
		b.WriteString("  " + m.fatalErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if len(m.list) == 0 {
		b.WriteString("  No tasks. Use 'todo add <description>' to create one.\n\n")
	} else {
		for i, task := range m.list {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %d: %s [%s]\n", cursor, i, task.Description, task.Marker()))
		}
		b.WriteString("\n")
	}

	done := 0
	for _, task := range m.list {
		if task.Completed {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("%d tasks, %d done\n\n", len(m.list), done))

	if m.notice != "" {
		b.WriteString(m.notice + "\n\n")
	}

	writeFooter(&b)
	return b.String()
}

func (m *tuiModel) reload() {
	list, err := todo.Load(m.todoPath)
	if err != nil {
		m.fatalErr = err
		return
	}
	m.list = list
	m.clampCursor()
	m.notice = ""
}

func (m *tuiModel) toggleComplete() {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return
	}
	m.list[m.cursor].Completed = !m.list[m.cursor].Completed
	m.persist()
	if m.fatalErr == nil {
		if m.list[m.cursor].Completed {
			m.notice = fmt.Sprintf("Task '%s' marked as complete", m.list[m.cursor].Description)
		} else {
			m.notice = fmt.Sprintf("Task '%s' marked as pending", m.list[m.cursor].Description)
		}
	}
}

func (m *tuiModel) deleteCurrent() {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return
	}
	removed, err := m.list.Remove(m.cursor)
	if err != nil {
		// Cursor is clamped to the list, so this only trips on an empty list.
		return
	}
	m.persist()
	if m.fatalErr == nil {
		m.notice = fmt.Sprintf("Removed: %s", removed.Description)
	}
	m.clampCursor()
}

func (m *tuiModel) persist() {
	if err := m.list.Save(m.todoPath); err != nil {
		m.fatalErr = err
	}
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.list) {
		m.cursor = len(m.list) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func writeTitle(b *strings.Builder) {
	title := "todocli"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  up/k, down/j Move cursor\n")
	b.WriteString("  x, space     Toggle completion\n")
	b.WriteString("  d            Delete task\n")
	b.WriteString("  r, F5        Reload from disk\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
