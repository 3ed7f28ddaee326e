package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")).
			Width(14)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	copyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// reporter renders results either with lipgloss styles or as plain text.
type reporter struct {
	styled bool
}

func (r reporter) render(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r reporter) scenario(sc Scenario) string {
	return fmt.Sprintf("%s tag=%d content=%v, append %q to tag, content[%d] += %d",
		r.render(titleStyle, "Scenario"), sc.Tag, sc.Content, sc.Suffix, sc.Index, sc.Delta)
}

func (r reporter) result(res result, wantTag int, wantContent []int) string {
	name := res.strategy
	if r.styled {
		name = nameStyle.Render(name)
	} else {
		name = fmt.Sprintf("%-14s", name)
	}

	if res.err != nil {
		return name + " " + r.render(errorStyle, "error: "+res.err.Error())
	}

	storage := r.render(okStyle, "storage kept")
	if res.duplicated {
		storage = r.render(copyStyle, "storage duplicated")
	}

	check := ""
	if res.tag != wantTag || !slices.Equal(res.content, wantContent) {
		check = " " + r.render(errorStyle, "unexpected value")
	}

	return fmt.Sprintf("%s tag=%d content=%v  %s (%d copies)%s",
		name, res.tag, res.content, storage, res.copies, check)
}

func (r reporter) linear(res linearResult) string {
	window := r.render(okStyle, "poisoned")
	if !res.poisoned {
		window = r.render(errorStyle, "not poisoned")
	}
	return fmt.Sprintf("%s %d -> %d, window bytes %x (%s)",
		r.render(titleStyle, "Linear memory"), res.before, res.after, res.window, window)
}

func (r reporter) write(w io.Writer, sc Scenario, results []result) error {
	wantTag, wantContent, err := sc.expected()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(r.scenario(sc))
	b.WriteString("\n\n")
	for _, res := range results {
		b.WriteString(r.result(res, wantTag, wantContent))
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())
	return err
}
