package records

import (
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// Bit masks for the packed glucose and trend fields.
const (
	// EGVValueMask extracts the 13-bit glucose magnitude from the raw
	// 16-bit glucose field.
	EGVValueMask = 0x1FFF
	// EGVDisplayOnlyMask flags readings the receiver showed to the user
	// without committing them as sensor values.
	EGVDisplayOnlyMask = 0x8000
	// EGVTrendArrowMask keeps the significant low nibble of the trend byte.
	EGVTrendArrowMask = 0x0F
	// TestNumMask drops the top byte of a combined test-number field.
	// Test numbers increase monotonically but restart at zero when a
	// new transmitter is inserted.
	TestNumMask = 0x00FFFFFF
)

// TrendArrows maps the trend nibble to its symbol.
var TrendArrows = []string{
	"NONE", "DOUBLE_UP", "SINGLE_UP", "FORTY_FIVE_UP", "FLAT",
	"FORTY_FIVE_DOWN", "SINGLE_DOWN", "DOUBLE_DOWN", "NOT_COMPUTABLE",
	"RATE_OUT_OF_RANGE",
}

// SpecialGlucoseValues maps sentinel magnitudes to the device state
// they denote. A magnitude present here is not a glucose reading and
// must not be treated as one.
var SpecialGlucoseValues = map[uint16]string{
	1:  "SENSOR_NOT_ACTIVE",
	2:  "MINIMAL_DEVIATION",
	3:  "NO_ANTENNA",
	5:  "SENSOR_NOT_CALIBRATED",
	6:  "COUNTS_DEVIATION",
	9:  "ABSOLUTE_DEVIATION",
	10: "POWER_DEVIATION",
	12: "BAD_RF",
}

var egvLayout = layout.New("EGVRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U16, // glucose, packed with display-only flag
	layout.U8,  // trend arrow, low nibble significant
	layout.U16, // crc
)

// EGVRecord is one estimated glucose value reading.
type EGVRecord struct {
	TimestampedRecord
}

// DecodeEGV decodes the EGV record at the given index of a page buffer.
func DecodeEGV(buf []byte, index int) (*EGVRecord, error) {
	rec, err := decodeFixed(buf, egvLayout, index)
	if err != nil {
		return nil, err
	}
	return &EGVRecord{TimestampedRecord{rec}}, nil
}

// FullGlucose returns the raw 16-bit glucose field including flag bits.
func (r *EGVRecord) FullGlucose() uint16 {
	return r.u16(2)
}

// FullTrend returns the raw trend byte including insignificant bits.
func (r *EGVRecord) FullTrend() uint8 {
	return r.u8(3)
}

// DisplayOnly reports whether the reading carried the display-only flag.
func (r *EGVRecord) DisplayOnly() bool {
	return r.FullGlucose()&EGVDisplayOnlyMask != 0
}

// Glucose returns the 13-bit glucose magnitude. Callers must check
// IsSpecial before treating it as a clinical reading.
func (r *EGVRecord) Glucose() uint16 {
	return r.FullGlucose() & EGVValueMask
}

// SpecialMeaning returns the symbolic device state a sentinel magnitude
// denotes, and whether the magnitude is such a sentinel.
func (r *EGVRecord) SpecialMeaning() (string, bool) {
	meaning, ok := SpecialGlucoseValues[r.Glucose()]
	return meaning, ok
}

// IsSpecial reports whether the magnitude is a sentinel rather than a
// glucose reading.
func (r *EGVRecord) IsSpecial() bool {
	_, ok := r.SpecialMeaning()
	return ok
}

// TrendValue returns the significant low nibble of the trend byte.
func (r *EGVRecord) TrendValue() uint8 {
	return r.FullTrend() & EGVTrendArrowMask
}

// TrendArrow returns the trend symbol, if the nibble maps to one.
func (r *EGVRecord) TrendArrow() (string, bool) {
	return lookup(TrendArrows, int(r.TrendValue()))
}

func (r *EGVRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	exportGlucose(out, r.Glucose(), r.IsSpecial(), r.DisplayOnly())
	exportEnum(out, "trend_arrow", TrendArrows, int(r.TrendValue()))
	return out
}

// exportGlucose writes the glucose field: the sentinel symbol when the
// magnitude is special, the numeric magnitude otherwise.
func exportGlucose(out *Export, glucose uint16, special, displayOnly bool) {
	if special {
		out.Set("glucose", SpecialGlucoseValues[glucose])
	} else {
		out.Set("glucose", glucose)
	}
	out.Set("is_special", special)
	out.Set("display_only", displayOnly)
}

var (
	g5EGVLayout = layout.New("G5EGVRecord",
		layout.U32, // system time
		layout.U32, // display time
		layout.U16, // glucose
		layout.U32, // meter time
		layout.U8,  // unknown
		layout.U32, // test number, top byte insignificant
		layout.U8,  // trend arrow
		layout.U8,  // unknown
		layout.U16, // zero on G5, realtime glucose on G6
		layout.U16, // crc
	)
	g6EGVLayout = layout.New("G6EGVRecord",
		layout.U32, layout.U32, layout.U16, layout.U32, layout.U8,
		layout.U32, layout.U8, layout.U8, layout.U16, layout.U16,
	)
)

// G5EGVRecord is the later-generation glucose reading. It shares the
// packed glucose semantics of EGVRecord and adds a meter time, a
// wraparound-tolerant test sequence number and a realtime field.
type G5EGVRecord struct {
	TimestampedRecord
}

// DecodeG5EGV decodes the G5 EGV record at the given index.
func DecodeG5EGV(buf []byte, index int) (*G5EGVRecord, error) {
	rec, err := decodeFixed(buf, g5EGVLayout, index)
	if err != nil {
		return nil, err
	}
	return &G5EGVRecord{TimestampedRecord{rec}}, nil
}

func (r *G5EGVRecord) FullGlucose() uint16 {
	return r.u16(2)
}

// MeterSecs returns the raw meter-time second count.
func (r *G5EGVRecord) MeterSecs() uint32 {
	return r.u32(3)
}

// TestNum returns the test sequence number with the insignificant top
// byte masked off.
func (r *G5EGVRecord) TestNum() uint32 {
	return r.u32(5) & TestNumMask
}

func (r *G5EGVRecord) FullTrend() uint8 {
	return r.u8(6)
}

// Realtime returns the unsmoothed glucose field. G5 receivers store
// zero here; G6 receivers store the realtime value.
func (r *G5EGVRecord) Realtime() uint16 {
	return r.u16(8)
}

func (r *G5EGVRecord) DisplayOnly() bool {
	return r.FullGlucose()&EGVDisplayOnlyMask != 0
}

func (r *G5EGVRecord) Glucose() uint16 {
	return r.FullGlucose() & EGVValueMask
}

func (r *G5EGVRecord) SpecialMeaning() (string, bool) {
	meaning, ok := SpecialGlucoseValues[r.Glucose()]
	return meaning, ok
}

func (r *G5EGVRecord) IsSpecial() bool {
	_, ok := r.SpecialMeaning()
	return ok
}

func (r *G5EGVRecord) TrendValue() uint8 {
	return r.FullTrend() & EGVTrendArrowMask
}

func (r *G5EGVRecord) TrendArrow() (string, bool) {
	return lookup(TrendArrows, int(r.TrendValue()))
}

func (r *G5EGVRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	exportGlucose(out, r.Glucose(), r.IsSpecial(), r.DisplayOnly())
	exportEnum(out, "trend_arrow", TrendArrows, int(r.TrendValue()))
	out.Set("test_num", r.TestNum())
	out.Set("realtime", r.Realtime())
	return out
}

// G6EGVRecord shares the G5 layout; the realtime field carries the
// unsmoothed glucose value.
type G6EGVRecord struct {
	G5EGVRecord
}

// DecodeG6EGV decodes the G6 EGV record at the given index.
func DecodeG6EGV(buf []byte, index int) (*G6EGVRecord, error) {
	rec, err := decodeFixed(buf, g6EGVLayout, index)
	if err != nil {
		return nil, err
	}
	return &G6EGVRecord{G5EGVRecord{TimestampedRecord{rec}}}, nil
}
