package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/log"
	"github.com/rubiojr/fhsearch/pkg/render"
	"github.com/rubiojr/fhsearch/pkg/search"
)

const helpLine = "tab/shift+tab: move • enter: search • ctrl+r: reset • pgup/pgdn: page • esc: quit"

// fetchedMsg carries the result of the fetch started for ticket.
type fetchedMsg struct {
	ticket search.Ticket
	res    search.Result
	err    error
}

// Model is the bubbletea model of the search page.
type Model struct {
	ctx     context.Context
	view    *search.View
	fetcher *search.Fetcher
	logger  *log.Logger

	inputs []textinput.Model
	focus  int
	width  int
}

// New returns a model reading from source. ctx bounds every fetch.
func New(ctx context.Context, source search.Source) Model {
	inputs := make([]textinput.Model, len(funeralhomes.FormFields))
	for i, field := range funeralhomes.FormFields {
		ti := textinput.New()
		ti.Placeholder = field.Label()
		ti.CharLimit = 120
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		ctx:     ctx,
		view:    search.NewView(),
		fetcher: search.NewFetcher(source),
		logger:  log.ForService("tui"),
		inputs:  inputs,
	}
}

// State returns the current search state.
func (m Model) State() search.State {
	return m.view.Snapshot()
}

// Init starts the initial unfiltered fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(m.view.Begin()))
}

func (m Model) fetch(t search.Ticket) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		res, err := fetcher.Fetch(ctx, t.Query)
		return fetchedMsg{ticket: t, res: res, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case fetchedMsg:
		out := m.view.Apply(msg.ticket, msg.res, msg.err)
		switch {
		case !out.Applied:
			m.logger.Debugf("Dropped stale result for generation %d", msg.ticket.Generation())
		case msg.err != nil:
			m.logger.Warnf("Fetch failed: %v", msg.err)
		case out.Refetch != nil:
			m.logger.Debugf("Page past the end, clamping to page %d", out.Refetch.Query.Page)
			return m, m.fetch(*out.Refetch)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			return m, m.fetch(m.view.Submit())
		case "ctrl+r":
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			return m, m.fetch(m.view.Reset())
		case "pgdown", "ctrl+n":
			if t, ok := m.view.Next(); ok {
				return m, m.fetch(t)
			}
			return m, nil
		case "pgup", "ctrl+p":
			if t, ok := m.view.Prev(); ok {
				return m, m.fetch(t)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.view.SetPending(funeralhomes.FormFields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

// setFocus moves the focus to input i, wrapping around.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// View renders the page.
func (m Model) View() string {
	state := m.view.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render(render.Title))
	b.WriteString("\n\n")

	for i, field := range funeralhomes.FormFields {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(field.Label()))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	summary := mutedStyle.Render(render.Summary(state.PageSize, state.Total))
	if state.HasFilters {
		summary = chipStyle.Render(render.FiltersChip) + " " + summary
	}
	b.WriteString(summary)
	b.WriteString("\n")

	if state.Error != "" {
		b.WriteString(errorStyle.Render(state.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	pager := lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton("‹ Prev", state.CanPrev), "  ",
		renderButton("Next ›", state.CanNext),
	)
	b.WriteString(mutedStyle.Render(render.PageLine(state.Page, state.PageCount)) + "  " + pager)
	b.WriteString("\n\n")

	cols := columns(m.width)
	switch state.Body() {
	case search.BodyLoading:
		blocks := make([]string, render.LoadingPlaceholders)
		for i := range blocks {
			blocks[i] = renderPlaceholder()
		}
		b.WriteString(grid(blocks, cols))
	case search.BodyEmpty:
		b.WriteString(mutedStyle.Render(render.EmptyMessage))
	default:
		cards := render.Cards(state.Rows)
		blocks := make([]string, len(cards))
		for i, card := range cards {
			blocks[i] = renderCard(card)
		}
		b.WriteString(grid(blocks, cols))
	}
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render(render.ShowingLine(len(state.Rows))) + "  " + pager)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpLine))
	b.WriteString("\n")

	return b.String()
}

// Run starts the program on the alternate screen and blocks until the user
// quits.
func Run(ctx context.Context, source search.Source) error {
	p := tea.NewProgram(New(ctx, source), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
