package cmd

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/fhsearch/pkg/render"
	"github.com/rubiojr/fhsearch/pkg/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("32")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)

	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// formatCard renders one card for the terminal.
func formatCard(card render.Card) string {
	var content strings.Builder

	content.WriteString(nameStyle.Render(card.Name))
	content.WriteString("  ")
	content.WriteString(metaStyle.Render("ID " + strconv.FormatInt(card.ID, 10)))

	chips := card.Chips
	if card.Cluster != "" {
		chips = append(chips[:len(chips):len(chips)], card.Cluster)
	}
	if len(chips) > 0 {
		content.WriteString("\n")
		content.WriteString(chipStyle.Render(strings.Join(chips, " · ")))
	}

	if !card.Address.Empty() {
		content.WriteString("\n")
		if card.Address.Line1 != "" {
			content.WriteString("\n" + card.Address.Line1)
		}
		if card.Address.Line2 != "" {
			content.WriteString("\n" + metaStyle.Render(card.Address.Line2))
		}
	}

	if card.HasContact() {
		content.WriteString("\n")
	}
	if card.Phone != "" {
		content.WriteString("\nTel. " + card.Phone)
	}
	if card.Website != "" {
		content.WriteString("\n" + urlStyle.Render(card.Website))
	}

	return cardStyle.Render(content.String())
}

// formatSearchOutput renders a fetched page the way the search page lays it
// out: summary, page line, cards and the footer line.
func formatSearchOutput(q search.Query, res search.Result) string {
	var output strings.Builder

	output.WriteString(titleStyle.Render(render.Title))
	output.WriteString("\n")

	summary := render.Summary(search.PageSize, res.Total)
	if q.Filters.Active() {
		summary += " " + render.FiltersChip + "."
	}
	output.WriteString(summaryStyle.Render(summary))
	output.WriteString("\n")

	output.WriteString(render.PageLine(q.Page, search.PageCount(res.Total)))
	output.WriteString("\n\n")

	if len(res.Rows) == 0 {
		output.WriteString(noDataStyle.Render(render.EmptyMessage))
		output.WriteString("\n")
		return output.String()
	}

	for _, card := range render.Cards(res.Rows) {
		output.WriteString(formatCard(card))
		output.WriteString("\n")
	}
	output.WriteString(metaStyle.Render(render.ShowingLine(len(res.Rows))))
	output.WriteString("\n")

	return output.String()
}
