package records

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/opencgm/pagedec/pkg/crc16"
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// Decoded is the capability set shared by every record variant.
type Decoded interface {
	// Raw returns the record's raw byte slice. The slice borrows the
	// caller's page buffer and must not be mutated.
	Raw() []byte
	// Export returns the record's named fields in declaration order,
	// with calendar times rendered as ISO-8601 strings.
	Export(devicetime.Epoch) *Export
}

// Record holds the raw slice one record was decoded from together with
// its ordered value tuple. Records are read-only after decoding.
type Record struct {
	raw  []byte
	data []any
}

// Raw returns the raw byte slice the record was decoded from.
func (r *Record) Raw() []byte {
	return r.raw
}

// Hex returns the raw bytes as a lowercase hex string.
func (r *Record) Hex() string {
	return hex.EncodeToString(r.raw)
}

// Typed tuple access. Layouts are fixed per variant, so the kind at
// each position is known at the call site.

func (r *Record) u8(i int) uint8    { return r.data[i].(uint8) }
func (r *Record) i8(i int) int8     { return r.data[i].(int8) }
func (r *Record) u16(i int) uint16  { return r.data[i].(uint16) }
func (r *Record) i16(i int) int16   { return r.data[i].(int16) }
func (r *Record) u32(i int) uint32  { return r.data[i].(uint32) }
func (r *Record) f64(i int) float64 { return r.data[i].(float64) }
func (r *Record) bytes(i int) []byte { return r.data[i].([]byte) }

// decodeFixed slices record index out of buf per the layout, unpacks
// its fields and verifies the trailing little-endian 16-bit checksum
// over all preceding bytes. It is a pure function of its inputs.
func decodeFixed(buf []byte, l layout.Layout, index int) (Record, error) {
	if err := checkLayout(l); err != nil {
		return Record{}, err
	}
	if index < 0 {
		return Record{}, &ConfigError{Record: l.Name(), Reason: fmt.Sprintf("negative record index %d", index)}
	}

	size := l.Size()
	offset := index * size
	if len(buf) < offset+size {
		return Record{}, &MalformedRecordError{
			Record: l.Name(),
			Reason: fmt.Sprintf("record %d needs bytes [%d:%d], buffer holds %d", index, offset, offset+size, len(buf)),
		}
	}

	raw := buf[offset : offset+size]
	values, err := l.Unpack(raw)
	if err != nil {
		return Record{}, err
	}

	want := binary.LittleEndian.Uint16(raw[size-2:])
	got := crc16.Checksum(raw[:size-2])
	if want != got {
		return Record{}, &CrcError{Record: l.Name(), Want: want, Got: got}
	}

	return Record{raw: raw, data: values}, nil
}

// checkLayout rejects an undefined layout before any data is touched.
// This is a programmer defect, not a data-integrity failure.
func checkLayout(l layout.Layout) error {
	if l.NumFields() == 0 || l.Size() == 0 {
		return &ConfigError{Record: l.Name(), Reason: "layout declares no fields"}
	}
	return nil
}

// TimestampedRecord adds the two universally-present leading fields:
// system time (device uptime relative) and display time (user facing,
// drift adjustable). Both are independent second counts converted
// through the same epoch; calendar times are recomputed per call and
// never cached.
type TimestampedRecord struct {
	Record
}

// SystemSecs returns the raw system-time second count.
func (r *TimestampedRecord) SystemSecs() uint32 {
	return r.u32(0)
}

// DisplaySecs returns the raw display-time second count.
func (r *TimestampedRecord) DisplaySecs() uint32 {
	return r.u32(1)
}

// SystemTime converts the system-time count to calendar time.
func (r *TimestampedRecord) SystemTime(e devicetime.Epoch) time.Time {
	return e.Time(r.SystemSecs())
}

// DisplayTime converts the display-time count to calendar time.
func (r *TimestampedRecord) DisplayTime(e devicetime.Epoch) time.Time {
	return e.Time(r.DisplaySecs())
}

// exportBase starts an export with the two universal time fields.
func (r *TimestampedRecord) exportBase(e devicetime.Epoch) *Export {
	out := NewExport()
	out.Set("system_time", e.ISO(r.SystemSecs()))
	out.Set("display_time", e.ISO(r.DisplaySecs()))
	return out
}

// lookup resolves a raw integer against a fixed symbol table. Index 0
// conventionally means none/undefined and maps to the empty symbol.
// Out-of-range values are reported as not ok, never a panic.
func lookup(table []string, raw int) (string, bool) {
	if raw < 0 || raw >= len(table) {
		return "", false
	}
	return table[raw], true
}

// exportEnum writes an enumerated field: its symbol when the raw value
// maps, UNKNOWN when it does not, and the raw integer alongside so no
// information is dropped.
func exportEnum(out *Export, name string, table []string, raw int) {
	sym, ok := lookup(table, raw)
	switch {
	case !ok:
		out.Set(name, "UNKNOWN")
	case sym == "":
		out.Set(name, nil)
	default:
		out.Set(name, sym)
	}
	out.Set(name+"_value", raw)
}
