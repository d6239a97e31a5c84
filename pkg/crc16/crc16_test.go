package crc16

import (
	"bytes"
	"testing"
)

func TestChecksum_KnownVectors(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0x0000,
		},
		{
			name: "check string",
			data: []byte("123456789"),
			want: 0x31C3,
		},
		{
			name: "single zero byte",
			data: []byte{0x00},
			want: 0x0000,
		},
		{
			name: "single 0xFF byte",
			data: []byte{0xFF},
			want: 0x1EF0,
		},
		{
			name: "letter A",
			data: []byte("A"),
			want: 0x58E5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.data); got != tc.want {
				t.Errorf("Checksum(%q) = 0x%04X, want 0x%04X", tc.data, got, tc.want)
			}
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	data := bytes.Repeat([]byte{0xA5, 0x5A, 0x00, 0xFF}, 64)
	if Checksum(data) != Checksum(data) {
		t.Error("checksum is not deterministic")
	}
}

func TestChecksum_SingleBitSensitivity(t *testing.T) {
	data := []byte("glucose page record")
	base := Checksum(data)

	for i := range data {
		corrupted := append([]byte(nil), data...)
		corrupted[i] ^= 0x01
		if Checksum(corrupted) == base {
			t.Errorf("flipping byte %d did not change the checksum", i)
		}
	}
}

func TestUpdate_MatchesWholeBuffer(t *testing.T) {
	a := []byte("header bytes")
	b := []byte("trailing span")

	whole := Checksum(append(append([]byte(nil), a...), b...))
	split := Update(Checksum(a), b)
	if whole != split {
		t.Errorf("Update mismatch: whole=0x%04X split=0x%04X", whole, split)
	}
}
