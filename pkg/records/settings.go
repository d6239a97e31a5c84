package records

import (
	"encoding/hex"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// User settings records expose the receiver's alert configuration.
// Several positions have unknown purpose; they are preserved as opaque
// exported values rather than discarded, so newer firmware revisions
// can be inspected without re-decoding pages.

var g5SettingsLayout = layout.New("G5UserSettings",
	layout.U32,      // system time
	layout.U32,      // display time
	layout.U32,      // unknown
	layout.U32,      // unknown
	layout.Bytes(6), // paired transmitter id
	layout.U32,      // unknown
	layout.U16,      // high alert threshold
	layout.U16,      // high alert repeat interval
	layout.U16,      // low alert threshold
	layout.U16,      // low alert repeat interval
	layout.U16,      // rise rate threshold
	layout.U16,      // fall rate threshold
	layout.U16,      // out-of-range alert
	layout.U16,      // unknown
	layout.U8,       // sound profile
	layout.U8,       // unknown
	layout.U32,      // unknown
	layout.U16,      // crc
)

// G5UserSettings is the 50-byte user settings record.
type G5UserSettings struct {
	TimestampedRecord
}

// DecodeG5UserSettings decodes the G5 settings record at the given index.
func DecodeG5UserSettings(buf []byte, index int) (*G5UserSettings, error) {
	rec, err := decodeFixed(buf, g5SettingsLayout, index)
	if err != nil {
		return nil, err
	}
	return &G5UserSettings{TimestampedRecord{rec}}, nil
}

// TransmitterPaired returns the 6-byte paired transmitter id as text.
func (r *G5UserSettings) TransmitterPaired() string {
	return byteStringText(r.bytes(4))
}

// HighAlert returns the high glucose alert threshold.
func (r *G5UserSettings) HighAlert() uint16 {
	return r.u16(6)
}

// HighRepeat returns the high alert repeat interval.
func (r *G5UserSettings) HighRepeat() uint16 {
	return r.u16(7)
}

// LowAlert returns the low glucose alert threshold.
func (r *G5UserSettings) LowAlert() uint16 {
	return r.u16(8)
}

// LowRepeat returns the low alert repeat interval.
func (r *G5UserSettings) LowRepeat() uint16 {
	return r.u16(9)
}

// RiseRate returns the rate-of-change rise threshold.
func (r *G5UserSettings) RiseRate() uint16 {
	return r.u16(10)
}

// FallRate returns the rate-of-change fall threshold.
func (r *G5UserSettings) FallRate() uint16 {
	return r.u16(11)
}

// OutOfRangeAlert returns the out-of-range alert setting.
func (r *G5UserSettings) OutOfRangeAlert() uint16 {
	return r.u16(12)
}

// SoundsType returns the sound profile code.
func (r *G5UserSettings) SoundsType() uint8 {
	return r.u8(14)
}

func (r *G5UserSettings) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("transmitter_paired", r.TransmitterPaired())
	out.Set("high_alert", r.HighAlert())
	out.Set("high_repeat", r.HighRepeat())
	out.Set("low_alert", r.LowAlert())
	out.Set("low_repeat", r.LowRepeat())
	out.Set("rise_rate", r.RiseRate())
	out.Set("fall_rate", r.FallRate())
	out.Set("out_of_range_alert", r.OutOfRangeAlert())
	out.Set("sounds_type", r.SoundsType())
	out.Set("unknown2", r.u32(2))
	out.Set("unknown3", r.u32(3))
	out.Set("unknown5", r.u32(5))
	out.Set("unknown13", r.u16(13))
	out.Set("unknown15", r.u8(15))
	out.Set("unknown16", r.u32(16))
	return out
}

var g6SettingsLayout = layout.New("G6UserSettings",
	layout.U32,      // system time
	layout.U32,      // display time
	layout.U32,      // unknown
	layout.U32,      // unknown
	layout.Bytes(6), // paired transmitter id
	layout.U32,      // unknown
	layout.U16,      // high alert threshold
	layout.U16,      // high alert repeat interval
	layout.U16,      // low alert threshold
	layout.U16,      // low alert repeat interval
	layout.U16,      // rise rate threshold
	layout.U16,      // fall rate threshold
	layout.U16,      // out-of-range alert
	layout.U16,      // unknown
	layout.U8,       // sound profile
	layout.U8,       // unknown
	layout.U16,      // urgent low soon repeat interval
	layout.U8,       // unknown
	layout.Bytes(4), // sensor code
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U8,       // unknown
	layout.U16,      // crc
)

// G6UserSettings is the 60-byte user settings record. The alert fields
// sit at the same positions as the G5 layout; the tail adds the urgent
// low soon repeat and the sensor code.
type G6UserSettings struct {
	G5UserSettings
}

// DecodeG6UserSettings decodes the G6 settings record at the given index.
func DecodeG6UserSettings(buf []byte, index int) (*G6UserSettings, error) {
	rec, err := decodeFixed(buf, g6SettingsLayout, index)
	if err != nil {
		return nil, err
	}
	return &G6UserSettings{G5UserSettings{TimestampedRecord{rec}}}, nil
}

// UrgentLowSoonRepeat returns the urgent-low-soon alert repeat interval.
func (r *G6UserSettings) UrgentLowSoonRepeat() uint16 {
	return r.u16(16)
}

// SensorCode returns the 4-byte sensor pairing code as text.
func (r *G6UserSettings) SensorCode() string {
	return byteStringText(r.bytes(18))
}

func (r *G6UserSettings) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("transmitter_paired", r.TransmitterPaired())
	out.Set("high_alert", r.HighAlert())
	out.Set("high_repeat", r.HighRepeat())
	out.Set("low_alert", r.LowAlert())
	out.Set("low_repeat", r.LowRepeat())
	out.Set("rise_rate", r.RiseRate())
	out.Set("fall_rate", r.FallRate())
	out.Set("out_of_range_alert", r.OutOfRangeAlert())
	out.Set("sounds_type", r.SoundsType())
	out.Set("urgent_low_soon_repeat", r.UrgentLowSoonRepeat())
	out.Set("sensor_code", r.SensorCode())
	out.Set("unknown2", r.u32(2))
	out.Set("unknown3", r.u32(3))
	out.Set("unknown5", r.u32(5))
	out.Set("unknown13", r.u16(13))
	out.Set("unknown15", r.u8(15))
	out.Set("unknown17", r.u8(17))
	out.Set("unknown_tail", hex.EncodeToString(r.tailBytes()))
	return out
}

// tailBytes collects the seven trailing unknown bytes.
func (r *G6UserSettings) tailBytes() []byte {
	tail := make([]byte, 0, 7)
	for i := 19; i <= 25; i++ {
		tail = append(tail, r.u8(i))
	}
	return tail
}
