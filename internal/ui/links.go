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

type linkAddStep int

const (
	linkStepTitle linkAddStep = iota
	linkStepURL
)

// LinksPane lists saved links and records visits.
type LinksPane struct {
	repos  *repo.Set
	styles *Styles
	keys   KeyMap

	links   []entity.Link
	cursor  int
	adding  bool
	addStep linkAddStep
	title   string
	input   textinput.Model

	width  int
	height int
}

func NewLinksPane(repos *repo.Set, styles *Styles, keys KeyMap) *LinksPane {
	ti := textinput.New()
	ti.Placeholder = "link title"
	ti.CharLimit = 200
	return &LinksPane{repos: repos, styles: styles, keys: keys, input: ti}
}

func (p *LinksPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.input.Width = w - 8
}

func (p *LinksPane) Adding() bool { return p.adding }

func (p *LinksPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case linksLoadedMsg:
		if msg.err == nil {
			p.links = msg.links
			if p.cursor >= len(p.links) {
				p.cursor = len(p.links) - 1
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

func (p *LinksPane) updateAdding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.resetAdd()
		return nil
	case key.Matches(msg, p.keys.Confirm):
		val := strings.TrimSpace(p.input.Value())
		switch p.addStep {
		case linkStepTitle:
			if val == "" {
				p.resetAdd()
				return nil
			}
			p.title = val
			p.addStep = linkStepURL
			p.input.Reset()
			p.input.Placeholder = "url"
			return nil
		case linkStepURL:
			if val == "" {
				return nil
			}
			d := repo.LinkDraft{Title: p.title, URL: val}
			p.resetAdd()
			return createLinkCmd(p.repos, d)
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *LinksPane) resetAdd() {
	p.adding = false
	p.addStep = linkStepTitle
	p.title = ""
	p.input.Reset()
	p.input.Placeholder = "link title"
}

func (p *LinksPane) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.links)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Add):
		p.adding = true
		p.input.Focus()
		return textinput.Blink
	case key.Matches(msg, p.keys.Open), key.Matches(msg, p.keys.Toggle):
		if l, ok := p.selected(); ok {
			return visitLinkCmd(p.repos, l.ID)
		}
	case key.Matches(msg, p.keys.Delete):
		if l, ok := p.selected(); ok {
			return deleteLinkCmd(p.repos, l.ID)
		}
	}
	return nil
}

func (p *LinksPane) selected() (entity.Link, bool) {
	if p.cursor < 0 || p.cursor >= len(p.links) {
		return entity.Link{}, false
	}
	return p.links[p.cursor], true
}

func (p *LinksPane) View(focused bool) string {
	s := p.styles
	var b strings.Builder

	b.WriteString(s.PaneTitleStyle.Render(fmt.Sprintf("Links %d", len(p.links))))
	b.WriteString("\n")

	if p.adding {
		prompt := "title: "
		if p.addStep == linkStepURL {
			prompt = "url: "
		}
		b.WriteString(s.InputPromptStyle.Render(prompt))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	if len(p.links) == 0 && !p.adding {
		b.WriteString(s.HelpStyle.Render("no links, press a to add"))
	}

	for i, l := range p.links {
		marker := "  "
		if focused && i == p.cursor {
			marker = s.SelectedStyle.Render("> ")
		}
		line := marker + truncate(l.Title, p.width-14)
		if l.VisitCount > 0 {
			line += " " + s.VisitStyle.Render(fmt.Sprintf("(%d)", l.VisitCount))
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
