package guard

import (
	"errors"
	"testing"
)

func TestCall(t *testing.T) {
	sentinel := errors.New("sentinel")

	tests := []struct {
		name    string
		fn      func() (int, error)
		want    int
		wantErr string
	}{
		{"value", func() (int, error) { return 7, nil }, 7, ""},
		{"error", func() (int, error) { return 0, sentinel }, 0, "sentinel"},
		{"panic error", func() (int, error) { panic(sentinel) }, 0, "sentinel"},
		{"panic value", func() (int, error) { panic("bad view") }, 0, "rebuild panicked: bad view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Call(tt.fn)
			if got != tt.want {
				t.Errorf("Call() = %d, want %d", got, tt.want)
			}
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCall_PanicKeepsErrorIdentity(t *testing.T) {
	sentinel := errors.New("sentinel")
	_, err := Call(func() (string, error) { panic(sentinel) })
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName[int](); got != "int" {
		t.Errorf("TypeName[int]() = %q", got)
	}
	if got := TypeName[*[]string](); got != "*[]string" {
		t.Errorf("TypeName[*[]string]() = %q", got)
	}
}
