package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/fhsearch/pkg/render"
)

const (
	cardWidth  = 38
	maxColumns = 3
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	labelStyle        = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("245"))
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("86")).Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("250")).
			Padding(0, 1)

	clusterChipStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	buttonStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginRight(1)

	placeholderStyle = cardStyle.
				Height(5).
				BorderForeground(lipgloss.Color("236")).
				Foreground(lipgloss.Color("236"))

	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	websiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true)
)

// columns returns how many cards fit side by side in width.
func columns(width int) int {
	n := width / (cardWidth + 3)
	if n < 1 {
		return 1
	}
	if n > maxColumns {
		return maxColumns
	}
	return n
}

// grid lays out blocks in rows of cols.
func grid(blocks []string, cols int) string {
	var rows []string
	for i := 0; i < len(blocks); i += cols {
		end := min(i+cols, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(card render.Card) string {
	var b strings.Builder

	b.WriteString(nameStyle.Render(card.Name))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render("ID " + strconv.FormatInt(card.ID, 10)))

	if len(card.Chips) > 0 || card.Cluster != "" {
		chips := make([]string, 0, len(card.Chips)+1)
		for _, c := range card.Chips {
			chips = append(chips, chipStyle.Render(c))
		}
		if card.Cluster != "" {
			chips = append(chips, clusterChipStyle.Render(card.Cluster))
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(chips, " "))
	}

	if card.Address.Line1 != "" {
		b.WriteString("\n" + card.Address.Line1)
	}
	if card.Address.Line2 != "" {
		b.WriteString("\n" + mutedStyle.Render(card.Address.Line2))
	}

	if card.HasContact() {
		b.WriteString("\n" + mutedStyle.Render(strings.Repeat("─", cardWidth-2)))
	}
	if card.Phone != "" {
		b.WriteString("\n" + card.Phone)
	}
	if card.Website != "" {
		b.WriteString("\n" + websiteStyle.Render(card.Website))
	}

	return cardStyle.Render(b.String())
}

func renderPlaceholder() string {
	return placeholderStyle.Render(strings.Repeat("░", cardWidth-4))
}

func renderButton(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return disabledButtonStyle.Render(label)
}
