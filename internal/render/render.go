// Package render formats strategy tables for terminal output.
package render

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack-solver/blackjack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	codeStyles = map[blackjack.Code]lipgloss.Style{
		blackjack.CodeStand:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		blackjack.CodeHit:         lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		blackjack.CodeDouble:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		blackjack.CodeDoubleHit:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		blackjack.CodeDoubleStand: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		blackjack.CodeSplit:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		blackjack.CodeSplitHit:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		blackjack.CodeSurrender:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// Renderer writes strategy tables as aligned text. With Styled set the
// cells are colored per action; otherwise the output is plain text suitable
// for files and pipes.
type Renderer struct {
	Styled bool
}

// Tables renders all three strategy grids plus the rule line and legend.
func (r Renderer) Tables(t *blackjack.Tables) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", r.styleTitle(t.Rules().String()))

	r.grid(&buf, "Hard Totals", hardRows(t))
	fmt.Fprintln(&buf)
	r.grid(&buf, "Soft Totals", softRows(t))
	fmt.Fprintln(&buf)
	r.grid(&buf, "Pairs", pairRows(t))

	fmt.Fprintf(&buf, "\n%s\n", blackjack.Legend)
	return buf.String()
}

type row struct {
	label string
	codes []blackjack.Code
}

func hardRows(t *blackjack.Tables) []row {
	var rows []row
	for total := 5; total <= 21; total++ {
		r := row{label: fmt.Sprintf("%d", total)}
		for _, up := range blackjack.Ranks {
			r.codes = append(r.codes, t.Hard(total, up))
		}
		rows = append(rows, r)
	}
	return rows
}

func softRows(t *blackjack.Tables) []row {
	var rows []row
	for other := blackjack.Two; other <= blackjack.Nine; other++ {
		r := row{label: fmt.Sprintf("A,%s", other)}
		for _, up := range blackjack.Ranks {
			r.codes = append(r.codes, t.Soft(other, up))
		}
		rows = append(rows, r)
	}
	return rows
}

func pairRows(t *blackjack.Tables) []row {
	var rows []row
	for _, pair := range blackjack.Ranks {
		r := row{label: fmt.Sprintf("%s,%s", pair, pair)}
		for _, up := range blackjack.Ranks {
			r.codes = append(r.codes, t.Pair(pair, up))
		}
		rows = append(rows, r)
	}
	return rows
}

func (r Renderer) grid(buf *bytes.Buffer, title string, rows []row) {
	fmt.Fprintf(buf, "%s\n", r.styleHeader(title))

	w := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, r.styleLabel(""))
	for _, up := range blackjack.Ranks {
		fmt.Fprintf(w, "\t%s", r.styleHeader(up.String()))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprint(w, r.styleLabel(row.label))
		for _, code := range row.codes {
			fmt.Fprintf(w, "\t%s", r.styleCode(code))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func (r Renderer) styleTitle(s string) string {
	if !r.Styled {
		return s
	}
	return titleStyle.Render(s)
}

func (r Renderer) styleHeader(s string) string {
	if !r.Styled {
		return s
	}
	return headerStyle.Render(s)
}

func (r Renderer) styleLabel(s string) string {
	if !r.Styled {
		return s
	}
	return labelStyle.Render(s)
}

func (r Renderer) styleCode(c blackjack.Code) string {
	if !r.Styled {
		return string(c)
	}
	if style, ok := codeStyles[c]; ok {
		return style.Render(string(c))
	}
	return string(c)
}
