package records

import (
	"time"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// SessionStates indexes the raw session-state byte. Index 0 means no
// state recorded.
var SessionStates = []string{
	"", "REMOVED", "EXPIRED", "RESIDUAL_DEVIATION",
	"COUNTS_DEVIATION", "SECOND_SESSION", "OFF_TIME_LOSS",
	"STARTED", "BAD_TRANSMITTER", "MANUFACTURING_MODE",
	"UNKNOWN1", "UNKNOWN2", "UNKNOWN3", "UNKNOWN4", "UNKNOWN5",
	"UNKNOWN6", "UNKNOWN7", "UNKNOWN8",
}

// insertionTimeSentinel marks an insertion time the receiver did not
// record; the system time stands in for it.
const insertionTimeSentinel = 0xFFFFFFFF

var insertionLayout = layout.New("InsertionRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U32, // insertion time, 0xFFFFFFFF when unset
	layout.U8,  // session state
	layout.U16, // crc
)

// InsertionRecord marks a sensor insertion or session event.
type InsertionRecord struct {
	TimestampedRecord
}

// DecodeInsertion decodes the insertion record at the given index.
func DecodeInsertion(buf []byte, index int) (*InsertionRecord, error) {
	rec, err := decodeFixed(buf, insertionLayout, index)
	if err != nil {
		return nil, err
	}
	return &InsertionRecord{TimestampedRecord{rec}}, nil
}

// InsertionSecs returns the raw insertion-time field, sentinel included.
func (r *InsertionRecord) InsertionSecs() uint32 {
	return r.u32(2)
}

// EffectiveInsertionSecs returns the insertion-time count with the
// unset sentinel substituted by the system time, bit-for-bit.
func (r *InsertionRecord) EffectiveInsertionSecs() uint32 {
	secs := r.InsertionSecs()
	if secs == insertionTimeSentinel {
		return r.SystemSecs()
	}
	return secs
}

// InsertionTime converts the effective insertion count to calendar time.
func (r *InsertionRecord) InsertionTime(e devicetime.Epoch) time.Time {
	return e.Time(r.EffectiveInsertionSecs())
}

// StateValue returns the raw session-state byte.
func (r *InsertionRecord) StateValue() uint8 {
	return r.u8(3)
}

// SessionState returns the session-state symbol, if the raw byte maps
// to one.
func (r *InsertionRecord) SessionState() (string, bool) {
	return lookup(SessionStates, int(r.StateValue()))
}

func (r *InsertionRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("insertion_time", e.ISO(r.EffectiveInsertionSecs()))
	exportEnum(out, "session_state", SessionStates, int(r.StateValue()))
	return out
}

var g5InsertionLayout = layout.New("G5InsertionRecord",
	layout.U32,      // system time
	layout.U32,      // display time
	layout.U32,      // insertion time
	layout.U8,       // session state
	layout.U32,      // session number
	layout.Bytes(6), // paired transmitter id
	layout.U16,      // crc
)

// G5InsertionRecord adds the session number and the paired transmitter
// id to the insertion event.
type G5InsertionRecord struct {
	InsertionRecord
}

// DecodeG5Insertion decodes the G5 insertion record at the given index.
func DecodeG5Insertion(buf []byte, index int) (*G5InsertionRecord, error) {
	rec, err := decodeFixed(buf, g5InsertionLayout, index)
	if err != nil {
		return nil, err
	}
	return &G5InsertionRecord{InsertionRecord{TimestampedRecord{rec}}}, nil
}

// Number returns the session number.
func (r *G5InsertionRecord) Number() uint32 {
	return r.u32(4)
}

// TransmitterPaired returns the 6-byte paired transmitter id as text.
func (r *G5InsertionRecord) TransmitterPaired() string {
	return byteStringText(r.bytes(5))
}

func (r *G5InsertionRecord) Export(e devicetime.Epoch) *Export {
	out := r.InsertionRecord.Export(e)
	out.Set("number", r.Number())
	out.Set("transmitter_paired", r.TransmitterPaired())
	return out
}
