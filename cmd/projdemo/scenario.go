package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/projection/errors"
)

// Scenario describes one tag-and-content mutation applied by every
// strategy.
type Scenario struct {
	Suffix  string `yaml:"suffix"`
	Content []int  `yaml:"content"`
	Tag     int    `yaml:"tag"`
	Index   int    `yaml:"index"`
	Delta   int    `yaml:"delta"`
}

// defaultScenario is {tag: 3, content: [1, 2, 3]} with "3" appended to the
// tag and 1 added to content[0].
func defaultScenario() Scenario {
	return Scenario{
		Tag:     3,
		Content: []int{1, 2, 3},
		Suffix:  "3",
		Index:   0,
		Delta:   1,
	}
}

// loadScenario reads a YAML scenario. Fields missing from the file keep
// their default values.
func loadScenario(path string) (Scenario, error) {
	sc := defaultScenario()
	if path == "" {
		return sc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sc, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read scenario "+path)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse scenario "+path)
	}
	return sc, sc.validate()
}

func (s Scenario) validate() error {
	if len(s.Content) == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "scenario content must not be empty")
	}
	if s.Index < 0 || s.Index >= len(s.Content) {
		return errors.New(errors.PhaseConfig, errors.KindOutOfBounds).
			Path("index").
			Value(s.Index).
			Detail("index %d out of bounds (length %d)", s.Index, len(s.Content)).
			Build()
	}
	return nil
}
