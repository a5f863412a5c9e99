package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthRoundTrip(t *testing.T) {
	widths := []Width{WidthByte, WidthQuarter, WidthHalf, WidthWord}
	values := []uint64{0, 1, 42, 255, 256, 65535, 65536, 1<<32 - 1, 1 << 32, ^uint64(0)}

	for _, w := range widths {
		for _, v := range values {
			regs := NewRegisterFile()
			regs.Set(RA, w, v)

			want := w.Truncate(v)
			require.Equal(t, want, regs.Get(RA, w), "width %v value %d", w, v)
			require.Equal(t, want, regs.Read(RA), "full cell should be zero-extended for width %v", w)
		}
	}
}

func TestOverflowAdd(t *testing.T) {
	r, ovf := WidthByte.OverflowAdd(255, 1)
	assert.Equal(t, uint64(0), r)
	assert.True(t, ovf)

	r, ovf = WidthByte.OverflowAdd(10, 5)
	assert.Equal(t, uint64(15), r)
	assert.False(t, ovf)
}

func TestOverflowSub(t *testing.T) {
	r, ovf := WidthByte.OverflowSub(0, 1)
	assert.Equal(t, uint64(255), r)
	assert.True(t, ovf)

	r, ovf = WidthByte.OverflowSub(5, 5)
	assert.Equal(t, uint64(0), r)
	assert.False(t, ovf)
}

func TestOverflowMul(t *testing.T) {
	r, ovf := WidthByte.OverflowMul(16, 16)
	assert.Equal(t, uint64(0), r)
	assert.True(t, ovf)

	r, ovf = WidthByte.OverflowMul(2, 3)
	assert.Equal(t, uint64(6), r)
	assert.False(t, ovf)
}

func TestOverflowDivRemNeverOverflow(t *testing.T) {
	r, ovf := WidthWord.OverflowDiv(10, 3)
	assert.Equal(t, uint64(3), r)
	assert.False(t, ovf)

	r, ovf = WidthWord.OverflowRem(10, 3)
	assert.Equal(t, uint64(1), r)
	assert.False(t, ovf)
}

func TestIsZeroIsSigned(t *testing.T) {
	assert.True(t, WidthByte.IsZero(0))
	assert.True(t, WidthByte.IsZero(256)) // truncated to 0
	assert.False(t, WidthByte.IsZero(1))

	assert.True(t, WidthByte.IsSigned(0x80))
	assert.False(t, WidthByte.IsSigned(0x7F))
	assert.True(t, WidthWord.IsSigned(1<<63))
}

func TestBytesRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	WidthWord.ToBytes(0x1122334455667788, buf)
	assert.Equal(t, uint64(0x1122334455667788), WidthWord.FromBytes(buf))

	buf2 := make([]byte, 2)
	WidthQuarter.ToBytes(0xBEEF, buf2)
	assert.Equal(t, []byte{0xEF, 0xBE}, buf2)
}
