package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

// NotesPane lists notes, pinned first, and supports quick capture.
type NotesPane struct {
	repos  *repo.Set
	styles *Styles
	keys   KeyMap

	notes  []entity.Note
	cursor int
	adding bool
	input  textinput.Model

	width  int
	height int
}

func NewNotesPane(repos *repo.Set, styles *Styles, keys KeyMap) *NotesPane {
	ti := textinput.New()
	ti.Placeholder = "note title"
	ti.CharLimit = 200
	return &NotesPane{repos: repos, styles: styles, keys: keys, input: ti}
}

func (p *NotesPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.input.Width = w - 8
}

func (p *NotesPane) Adding() bool { return p.adding }

func (p *NotesPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err == nil {
			p.notes = sortNotes(msg.notes)
			if p.cursor >= len(p.notes) {
				p.cursor = len(p.notes) - 1
			}
			if p.cursor < 0 {
				p.cursor = 0
			}
		}
		return nil
	case tea.KeyMsg:
		if p.adding {
			return p.updateAdding(msg)
		}
		return p.updateList(msg)
	}
	return nil
}

// sortNotes floats pinned notes to the top, preserving stored order
// within each group.
func sortNotes(notes []entity.Note) []entity.Note {
	out := make([]entity.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsPinned {
			out = append(out, n)
		}
	}
	for _, n := range notes {
		if !n.IsPinned {
			out = append(out, n)
		}
	}
	return out
}

func (p *NotesPane) updateAdding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.adding = false
		p.input.Reset()
		return nil
	case key.Matches(msg, p.keys.Confirm):
		title := strings.TrimSpace(p.input.Value())
		p.adding = false
		p.input.Reset()
		return createNoteCmd(p.repos, repo.NoteDraft{Title: title})
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *NotesPane) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.notes)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Add):
		p.adding = true
		p.input.Focus()
		return textinput.Blink
	case key.Matches(msg, p.keys.Pin), key.Matches(msg, p.keys.Toggle):
		if n, ok := p.selected(); ok {
			return togglePinCmd(p.repos, n.ID)
		}
	case key.Matches(msg, p.keys.Delete):
		if n, ok := p.selected(); ok {
			return deleteNoteCmd(p.repos, n.ID)
		}
	}
	return nil
}

func (p *NotesPane) selected() (entity.Note, bool) {
	if p.cursor < 0 || p.cursor >= len(p.notes) {
		return entity.Note{}, false
	}
	return p.notes[p.cursor], true
}

func (p *NotesPane) View(focused bool) string {
	s := p.styles
	var b strings.Builder

	b.WriteString(s.PaneTitleStyle.Render(fmt.Sprintf("Notes %d", len(p.notes))))
	b.WriteString("\n")

	if p.adding {
		b.WriteString(s.InputPromptStyle.Render("new: "))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	if len(p.notes) == 0 && !p.adding {
		b.WriteString(s.HelpStyle.Render("no notes, press a to add"))
	}

	for i, n := range p.notes {
		marker := "  "
		if focused && i == p.cursor {
			marker = s.SelectedStyle.Render("> ")
		}
		line := marker
		if n.IsPinned {
			line += s.PinnedStyle.Render("★ ")
		}
		line += truncate(n.Title, p.width-16)
		if n.WordCount > 0 {
			line += " " + s.HelpStyle.Render(fmt.Sprintf("%dw", n.WordCount))
		}
		if len(n.Tags) > 0 {
			line += " " + s.TagStyle.Render("#"+n.Tags[0])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	frame := s.PaneStyle
	if focused {
		frame = s.PaneFocusedStyle
	}
	return frame.Width(p.width).Height(p.height).Render(strings.TrimRight(b.String(), "\n"))
}
