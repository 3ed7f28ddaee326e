package linmem

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/projection/errors"
)

// Codec encodes values of T into fixed-size little-endian byte regions.
type Codec[T any] interface {
	// Size returns the encoded size in bytes.
	Size() uint32

	// Encode writes v into dst, which has length Size().
	Encode(v T, dst []byte)

	// Decode reads a value from src, which has length Size().
	Decode(src []byte) (T, error)
}

// Built-in codecs.
var (
	Uint32  Codec[uint32]  = uint32Codec{}
	Int64   Codec[int64]   = int64Codec{}
	Float64 Codec[float64] = float64Codec{}
	Bool    Codec[bool]    = boolCodec{}
)

type uint32Codec struct{}

func (uint32Codec) Size() uint32 { return 4 }

func (uint32Codec) Encode(v uint32, dst []byte) {
	binary.LittleEndian.PutUint32(dst, v)
}

func (uint32Codec) Decode(src []byte) (uint32, error) {
	return binary.LittleEndian.Uint32(src), nil
}

type int64Codec struct{}

func (int64Codec) Size() uint32 { return 8 }

func (int64Codec) Encode(v int64, dst []byte) {
	binary.LittleEndian.PutUint64(dst, uint64(v))
}

func (int64Codec) Decode(src []byte) (int64, error) {
	return int64(binary.LittleEndian.Uint64(src)), nil
}

type float64Codec struct{}

func (float64Codec) Size() uint32 { return 8 }

func (float64Codec) Encode(v float64, dst []byte) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
}

func (float64Codec) Decode(src []byte) (float64, error) {
	return math.Float64frombits(binary.LittleEndian.Uint64(src)), nil
}

type boolCodec struct{}

func (boolCodec) Size() uint32 { return 1 }

func (boolCodec) Encode(v bool, dst []byte) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
}

func (boolCodec) Decode(src []byte) (bool, error) {
	switch src[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.New(errors.PhaseMemory, errors.KindInvalidData).
			GoType("bool").
			Value(src[0]).
			Detail("byte %#x is not a bool", src[0]).
			Build()
	}
}
