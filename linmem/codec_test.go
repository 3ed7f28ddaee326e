package linmem

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/projection/errors"
)

func roundTrip[T comparable](t *testing.T, c Codec[T], v T) {
	t.Helper()
	buf := make([]byte, c.Size())
	c.Encode(v, buf)
	got, err := c.Decode(buf)
	if err != nil {
		t.Fatalf("Decode(%v): %v", v, err)
	}
	if got != v {
		t.Errorf("round trip of %v gave %v", v, got)
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 33, math.MaxUint32} {
		roundTrip(t, Uint32, v)
	}
	for _, v := range []int64{0, -1, math.MinInt64, math.MaxInt64} {
		roundTrip(t, Int64, v)
	}
	for _, v := range []float64{0, -2.5, math.Inf(1), math.SmallestNonzeroFloat64} {
		roundTrip(t, Float64, v)
	}
	roundTrip(t, Bool, true)
	roundTrip(t, Bool, false)
}

func TestCodecs_LittleEndian(t *testing.T) {
	buf := make([]byte, 4)
	Uint32.Encode(0x01020304, buf)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("encoded = %x, want %x", buf, want)
		}
	}
}

func TestBool_InvalidByte(t *testing.T) {
	_, err := Bool.Decode([]byte{PoisonByte})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindInvalidData}) {
		t.Errorf("err = %v, want invalid_data", err)
	}
}
