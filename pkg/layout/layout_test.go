package layout

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestLayoutSize(t *testing.T) {
	testCases := []struct {
		name   string
		layout Layout
		want   int
	}{
		{
			name:   "empty layout",
			layout: New("Empty"),
			want:   0,
		},
		{
			name:   "glucose reading shape",
			layout: New("EGV", U32, U32, U16, U8, U16),
			want:   13,
		},
		{
			name:   "calibration header shape",
			layout: New("Cal", U32, U32, F64, F64, F64, U8, U8, U8, F64, I8),
			want:   44,
		},
		{
			name:   "byte string field",
			layout: New("XML", U32, U32, Bytes(490), U16),
			want:   500,
		},
		{
			name:   "signed fields",
			layout: New("Sensor", U32, U32, U32, U32, I16, U16),
			want:   20,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.layout.Size(); got != tc.want {
				t.Errorf("Size() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestUnpack_ValuesInOrder(t *testing.T) {
	l := New("Mixed", U32, U16, I16, U8, I8, F64, Bytes(3))

	buf := make([]byte, 0, l.Size())
	buf = binary.LittleEndian.AppendUint32(buf, 0xDEADBEEF)
	buf = binary.LittleEndian.AppendUint16(buf, 0x1234)
	buf = binary.LittleEndian.AppendUint16(buf, 0xFFFF) // int16 -1
	buf = append(buf, 0x7F)
	buf = append(buf, 0x80) // int8 -128
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(0.75))
	buf = append(buf, 'a', 'b', 'c')

	values, err := l.Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	if got := values[0].(uint32); got != 0xDEADBEEF {
		t.Errorf("field 0 = %#x, want 0xDEADBEEF", got)
	}
	if got := values[1].(uint16); got != 0x1234 {
		t.Errorf("field 1 = %#x, want 0x1234", got)
	}
	if got := values[2].(int16); got != -1 {
		t.Errorf("field 2 = %d, want -1", got)
	}
	if got := values[3].(uint8); got != 0x7F {
		t.Errorf("field 3 = %#x, want 0x7F", got)
	}
	if got := values[4].(int8); got != -128 {
		t.Errorf("field 4 = %d, want -128", got)
	}
	if got := values[5].(float64); got != 0.75 {
		t.Errorf("field 5 = %v, want 0.75", got)
	}
	if got := values[6].([]byte); !bytes.Equal(got, []byte("abc")) {
		t.Errorf("field 6 = %q, want abc", got)
	}
}

func TestUnpack_ShortBuffer(t *testing.T) {
	l := New("Short", U32, U32)

	if _, err := l.Unpack(make([]byte, 7)); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestUnpack_ByteStringIsCopy(t *testing.T) {
	l := New("Copy", Bytes(4))
	buf := []byte{1, 2, 3, 4}

	values, err := l.Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	buf[0] = 99
	if got := values[0].([]byte); got[0] != 1 {
		t.Error("unpacked byte string aliases the input buffer")
	}
}
