package records

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/opencgm/pagedec/pkg/crc16"
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// Generation selects the total on-disk size of a calibration record.
// The header layout is identical across generations; only the size of
// the span reserved for sub-records differs, and the page context, not
// the record itself, says which one applies.
type Generation uint8

const (
	GenerationLegacy Generation = iota
	GenerationRev2
)

const (
	calibrationLegacySize = 148
	calibrationRev2Size   = 249
)

func (g Generation) String() string {
	switch g {
	case GenerationLegacy:
		return "legacy"
	case GenerationRev2:
		return "rev2"
	}
	return fmt.Sprintf("Generation(%d)", uint8(g))
}

// RecordSize returns the total fixed size of a calibration record for
// this generation.
func (g Generation) RecordSize() int {
	if g == GenerationLegacy {
		return calibrationLegacySize
	}
	return calibrationRev2Size
}

// ParseGeneration maps a configuration string to a generation flag.
func ParseGeneration(s string) (Generation, error) {
	switch s {
	case "legacy":
		return GenerationLegacy, nil
	case "rev2", "":
		return GenerationRev2, nil
	}
	return 0, fmt.Errorf("unknown page format generation %q", s)
}

var (
	calibrationLayout = layout.New("Calibration",
		layout.U32, // system time
		layout.U32, // display time
		layout.F64, // slope
		layout.F64, // intercept
		layout.F64, // scale
		layout.U8,  // unknown
		layout.U8,  // unknown
		layout.U8,  // unknown
		layout.F64, // decay
		layout.I8,  // sub-record count
	)
	subCalLayout = layout.New("SubCal",
		layout.U32, // entered time
		layout.U32, // meter value
		layout.U32, // sensor value
		layout.U32, // applied time
		layout.U8,  // unknown
	)
)

// CalibrationRecord is the variable-length calibration set: a fixed
// header followed by a run-time-determined number of sub-records, with
// a single checksum spanning the whole record.
type CalibrationRecord struct {
	TimestampedRecord
	generation Generation
	subcals    []*SubCalRecord
}

// DecodeCalibration decodes the calibration record at the given index.
// The generation flag is supplied by the surrounding page context; the
// record does not describe its own size.
//
// Decoding runs in a fixed order: header fields first (no checksum
// yet), then the sub-record span bounds check, then the sub-records,
// and only then the checksum over every byte of the record except its
// trailing two. A bounds violation is a MalformedRecordError, detected
// before any checksum arithmetic. A checksum mismatch anywhere in the
// span, sub-record bytes included, fails the whole record.
func DecodeCalibration(buf []byte, index int, gen Generation) (*CalibrationRecord, error) {
	if err := checkLayout(calibrationLayout); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, &ConfigError{Record: calibrationLayout.Name(), Reason: fmt.Sprintf("negative record index %d", index)}
	}

	size := gen.RecordSize()
	offset := index * size
	if len(buf) < offset+size {
		return nil, &MalformedRecordError{
			Record: calibrationLayout.Name(),
			Reason: fmt.Sprintf("record %d needs bytes [%d:%d], buffer holds %d", index, offset, offset+size, len(buf)),
		}
	}
	raw := buf[offset : offset+size]

	headerSize := calibrationLayout.Size()
	values, err := calibrationLayout.Unpack(raw[:headerSize])
	if err != nil {
		return nil, err
	}

	rec := &CalibrationRecord{
		TimestampedRecord: TimestampedRecord{Record{raw: raw, data: values}},
		generation:        gen,
	}

	numsub := int(rec.i8(9))
	subSize := subCalLayout.Size()
	if numsub < 0 {
		return nil, &MalformedRecordError{
			Record: calibrationLayout.Name(),
			Reason: fmt.Sprintf("negative sub-record count %d", numsub),
		}
	}
	if headerSize+numsub*subSize+2 > size {
		return nil, &MalformedRecordError{
			Record: calibrationLayout.Name(),
			Reason: fmt.Sprintf("%d sub-records span %d bytes past the %d-byte record", numsub, headerSize+numsub*subSize+2-size, size),
		}
	}

	rec.subcals = make([]*SubCalRecord, 0, numsub)
	for i := 0; i < numsub; i++ {
		start := headerSize + i*subSize
		sub, err := decodeSubCal(raw[start : start+subSize])
		if err != nil {
			return nil, err
		}
		rec.subcals = append(rec.subcals, sub)
	}

	want := binary.LittleEndian.Uint16(raw[size-2:])
	got := crc16.Checksum(raw[:size-2])
	if want != got {
		return nil, &CrcError{Record: calibrationLayout.Name(), Want: want, Got: got}
	}

	return rec, nil
}

// Generation returns the size generation the record was decoded with.
func (r *CalibrationRecord) Generation() Generation {
	return r.generation
}

// Slope returns the calibration slope coefficient.
func (r *CalibrationRecord) Slope() float64 {
	return r.f64(2)
}

// Intercept returns the calibration intercept coefficient.
func (r *CalibrationRecord) Intercept() float64 {
	return r.f64(3)
}

// Scale returns the calibration scale coefficient.
func (r *CalibrationRecord) Scale() float64 {
	return r.f64(4)
}

// Decay returns the calibration decay parameter.
func (r *CalibrationRecord) Decay() float64 {
	return r.f64(8)
}

// NumSub returns the declared sub-record count.
func (r *CalibrationRecord) NumSub() int {
	return int(r.i8(9))
}

// SubRecords returns the decoded sub-calibration records, in on-disk
// order. The slice is owned by the record; callers must not mutate it.
func (r *CalibrationRecord) SubRecords() []*SubCalRecord {
	return r.subcals
}

func (r *CalibrationRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("slope", r.Slope())
	out.Set("intercept", r.Intercept())
	out.Set("scale", r.Scale())
	out.Set("decay", r.Decay())
	out.Set("numsub", r.NumSub())
	out.Set("raw", r.Hex())
	subs := make([]*Export, 0, len(r.subcals))
	for _, sub := range r.subcals {
		subs = append(subs, sub.Export(e))
	}
	out.Set("subrecords", subs)
	return out
}

// SubCalRecord is one nested calibration measurement. It has no
// checksum of its own; integrity is covered by the parent record's
// whole-span checksum. It is decoded only from a parent-owned slice,
// never from a page offset.
type SubCalRecord struct {
	Record
}

func decodeSubCal(raw []byte) (*SubCalRecord, error) {
	values, err := subCalLayout.Unpack(raw)
	if err != nil {
		return nil, err
	}
	return &SubCalRecord{Record{raw: raw, data: values}}, nil
}

// EnteredSecs returns the second count the measurement was entered at.
func (r *SubCalRecord) EnteredSecs() uint32 {
	return r.u32(0)
}

// MeterValue returns the meter-side glucose measurement.
func (r *SubCalRecord) MeterValue() uint32 {
	return r.u32(1)
}

// SensorValue returns the sensor-side raw measurement.
func (r *SubCalRecord) SensorValue() uint32 {
	return r.u32(2)
}

// AppliedSecs returns the second count the calibration was applied at.
func (r *SubCalRecord) AppliedSecs() uint32 {
	return r.u32(3)
}

// Entered converts the entered count to calendar time.
func (r *SubCalRecord) Entered(e devicetime.Epoch) time.Time {
	return e.Time(r.EnteredSecs())
}

// Applied converts the applied count to calendar time.
func (r *SubCalRecord) Applied(e devicetime.Epoch) time.Time {
	return e.Time(r.AppliedSecs())
}

func (r *SubCalRecord) Export(e devicetime.Epoch) *Export {
	out := NewExport()
	out.Set("entered", e.ISO(r.EnteredSecs()))
	out.Set("meter", r.MeterValue())
	out.Set("sensor", r.SensorValue())
	out.Set("applied", e.ISO(r.AppliedSecs()))
	return out
}
