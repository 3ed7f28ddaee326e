package main

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/projection"
	"github.com/wippyai/projection/linmem"
)

func TestExecute_ReturnsErrors(t *testing.T) {
	t.Cleanup(func() {
		projection.SetLogger(zap.NewNop())
		linmem.SetLogger(zap.NewNop())
	})

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"--lens"}, "unknown flag"},
		{"missing scenario", []string{"--scenario", missing}, "missing.yaml"},
		{"missing scenario verbose", []string{"-v", "--scenario", missing}, "missing.yaml"},
		{"unknown strategy", []string{"--plain", "--strategy", "lens"}, `unknown strategy "lens"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
