package records

import (
	"time"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

var meterLayout = layout.New("MeterRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U16, // calibration glucose entered on the meter
	layout.U32, // meter time
	layout.U16, // crc
)

// MeterRecord is a meter-sourced calibration entry. This earlier layout
// carries no record-type discriminant on disk; the type is the fixed
// constant 1.
type MeterRecord struct {
	TimestampedRecord
}

// DecodeMeter decodes the meter record at the given index.
func DecodeMeter(buf []byte, index int) (*MeterRecord, error) {
	rec, err := decodeFixed(buf, meterLayout, index)
	if err != nil {
		return nil, err
	}
	return &MeterRecord{TimestampedRecord{rec}}, nil
}

// CalibGlucose returns the glucose value entered on the meter.
func (r *MeterRecord) CalibGlucose() uint16 {
	return r.u16(2)
}

// MeterSecs returns the raw meter-time second count.
func (r *MeterRecord) MeterSecs() uint32 {
	return r.u32(3)
}

// MeterTime converts the meter-time count to calendar time.
func (r *MeterRecord) MeterTime(e devicetime.Epoch) time.Time {
	return e.Time(r.MeterSecs())
}

// RecordType returns the fixed discriminant for this layout.
func (r *MeterRecord) RecordType() uint8 {
	return 1
}

// TestNum is always zero for this layout; the field does not exist on
// disk.
func (r *MeterRecord) TestNum() uint32 {
	return 0
}

func (r *MeterRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("calib_glucose", r.CalibGlucose())
	out.Set("meter_time", e.ISO(r.MeterSecs()))
	out.Set("record_type", r.RecordType())
	out.Set("test_num", r.TestNum())
	return out
}

var g5MeterLayout = layout.New("G5MeterRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U16, // calibration glucose
	layout.U8,  // record type discriminant
	layout.U32, // meter time
	layout.U32, // test number and unknown low byte, combined
	layout.U16, // crc
)

// G5MeterRecord is the later-generation meter calibration entry with an
// explicit record-type discriminant and a combined test-number field.
type G5MeterRecord struct {
	TimestampedRecord
}

// DecodeG5Meter decodes the G5 meter record at the given index.
func DecodeG5Meter(buf []byte, index int) (*G5MeterRecord, error) {
	rec, err := decodeFixed(buf, g5MeterLayout, index)
	if err != nil {
		return nil, err
	}
	return &G5MeterRecord{TimestampedRecord{rec}}, nil
}

// CalibGlucose returns the glucose value entered on the meter.
func (r *G5MeterRecord) CalibGlucose() uint16 {
	return r.u16(2)
}

// RecordType returns the on-disk record-type discriminant. 1 marks a
// user calibration entry at time of entry (test number 0xFFFFFF), 3 one
// carrying a real test number shortly after entry.
func (r *G5MeterRecord) RecordType() uint8 {
	return r.u8(3)
}

// MeterSecs returns the raw meter-time second count.
func (r *G5MeterRecord) MeterSecs() uint32 {
	return r.u32(4)
}

// MeterTime converts the meter-time count to calendar time.
func (r *G5MeterRecord) MeterTime(e devicetime.Epoch) time.Time {
	return e.Time(r.MeterSecs())
}

// RawTestNum returns the combined field: test number in the upper three
// bytes, a byte of unknown purpose in the lowest.
func (r *G5MeterRecord) RawTestNum() uint32 {
	return r.u32(5)
}

// TestNum returns the test number, masked to its significant bytes. It
// corresponds to the test numbers on EGV records.
func (r *G5MeterRecord) TestNum() uint32 {
	return (r.RawTestNum() >> 8) & TestNumMask
}

// Unknown returns the low byte of the combined field, preserved for
// forward compatibility.
func (r *G5MeterRecord) Unknown() uint8 {
	return uint8(r.RawTestNum() & 0xFF)
}

func (r *G5MeterRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("calib_glucose", r.CalibGlucose())
	out.Set("record_type", r.RecordType())
	out.Set("meter_time", e.ISO(r.MeterSecs()))
	out.Set("test_num", r.TestNum())
	out.Set("unknown", r.Unknown())
	return out
}
