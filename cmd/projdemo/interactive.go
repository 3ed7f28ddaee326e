package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type modelState int

const (
	stateEdit modelState = iota
	stateShowResult
)

type interactiveModel struct {
	err      error
	results  []result
	inputs   []textinput.Model
	scenario Scenario
	focusIdx int
	state    modelState
}

const (
	inputSuffix = iota
	inputIndex
	inputDelta
)

func newInteractiveModel(sc Scenario) *interactiveModel {
	m := &interactiveModel{scenario: sc, state: stateEdit}

	fields := []struct {
		prompt string
		value  string
	}{
		inputSuffix: {"tag suffix: ", sc.Suffix},
		inputIndex:  {"content index: ", strconv.Itoa(sc.Index)},
		inputDelta:  {"content delta: ", strconv.Itoa(sc.Delta)},
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.prompt
		ti.SetValue(f.value)
		ti.Width = 20
		if i == 0 {
			ti.Focus()
		}
		m.inputs = append(m.inputs, ti)
	}
	return m
}

type resultsMsg struct {
	err     error
	results []result
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "tab":
			if m.state == stateEdit {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil

		case "enter":
			switch m.state {
			case stateEdit:
				return m, m.runScenario
			case stateShowResult:
				m.state = stateEdit
				m.results = nil
				m.err = nil
			}
			return m, nil

		case "esc":
			if m.state == stateShowResult {
				m.state = stateEdit
				m.results = nil
				m.err = nil
			}
			return m, nil
		}

	case resultsMsg:
		m.results = msg.results
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateEdit {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// edited returns the scenario with the values from the input fields.
func (m *interactiveModel) edited() (Scenario, error) {
	sc := m.scenario
	sc.Suffix = m.inputs[inputSuffix].Value()

	index, err := strconv.Atoi(strings.TrimSpace(m.inputs[inputIndex].Value()))
	if err != nil {
		return sc, fmt.Errorf("index: %w", err)
	}
	delta, err := strconv.Atoi(strings.TrimSpace(m.inputs[inputDelta].Value()))
	if err != nil {
		return sc, fmt.Errorf("delta: %w", err)
	}
	sc.Index, sc.Delta = index, delta
	return sc, sc.validate()
}

func (m *interactiveModel) runScenario() tea.Msg {
	sc, err := m.edited()
	if err != nil {
		return resultsMsg{err: err}
	}
	return resultsMsg{results: runAll(sc)}
}

func (m *interactiveModel) View() string {
	rep := reporter{styled: true}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Mutable projection"))
	b.WriteString(fmt.Sprintf(" tag=%d content=%v\n\n", m.scenario.Tag, m.scenario.Content))

	switch m.state {
	case stateEdit:
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • ctrl+c quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			sc, _ := m.edited()
			wantTag, wantContent, err := sc.expected()
			if err != nil {
				b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			} else {
				for _, res := range m.results {
					b.WriteString(rep.result(res, wantTag, wantContent))
					b.WriteString("\n")
				}
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • q quit"))
	}

	return b.String()
}

func runInteractive(sc Scenario) error {
	p := tea.NewProgram(newInteractiveModel(sc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
