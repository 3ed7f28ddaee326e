package main

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/wippyai/projection/errors"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenario_Default(t *testing.T) {
	sc, err := loadScenario("")
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	if sc.Tag != 3 || !slices.Equal(sc.Content, []int{1, 2, 3}) || sc.Suffix != "3" || sc.Delta != 1 {
		t.Errorf("default scenario = %+v", sc)
	}
}

func TestLoadScenario_File(t *testing.T) {
	path := writeScenario(t, "tag: 7\ncontent: [5, 6]\nindex: 1\n")

	sc, err := loadScenario(path)
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	if sc.Tag != 7 || sc.Index != 1 {
		t.Errorf("scenario = %+v", sc)
	}
	if !slices.Equal(sc.Content, []int{5, 6}) {
		t.Errorf("content = %v, want [5 6]", sc.Content)
	}
	if sc.Suffix != "3" || sc.Delta != 1 {
		t.Errorf("missing fields should keep defaults: %+v", sc)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		kind errors.Kind
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), errors.KindInvalidInput},
		{"bad yaml", writeScenario(t, "tag: [unclosed"), errors.KindInvalidData},
		{"empty content", writeScenario(t, "content: []\n"), errors.KindInvalidInput},
		{"index out of range", writeScenario(t, "index: 3\n"), errors.KindOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScenario(tt.path)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind}) {
				t.Errorf("err = %v, want config/%s", err, tt.kind)
			}
		})
	}
}

func TestScenario_Expected(t *testing.T) {
	tag, content, err := defaultScenario().expected()
	if err != nil {
		t.Fatalf("expected: %v", err)
	}
	if tag != 33 || !slices.Equal(content, []int{2, 2, 3}) {
		t.Errorf("expected = %d %v, want 33 [2 2 3]", tag, content)
	}

	sc := defaultScenario()
	sc.Suffix = "x"
	if _, _, err := sc.expected(); err == nil {
		t.Error("expected error for non-numeric suffix")
	}
}
