package records

import (
	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

var sensorLayout = layout.New("SensorRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U32, // unfiltered raw signal
	layout.U32, // filtered raw signal
	layout.I16, // rssi
	layout.U16, // crc
)

// SensorRecord carries the raw sensor signal behind a glucose reading.
type SensorRecord struct {
	TimestampedRecord
}

// DecodeSensor decodes the sensor record at the given index.
func DecodeSensor(buf []byte, index int) (*SensorRecord, error) {
	rec, err := decodeFixed(buf, sensorLayout, index)
	if err != nil {
		return nil, err
	}
	return &SensorRecord{TimestampedRecord{rec}}, nil
}

// Unfiltered returns the raw unfiltered sensor signal.
func (r *SensorRecord) Unfiltered() uint32 {
	return r.u32(2)
}

// Filtered returns the smoothed sensor signal.
func (r *SensorRecord) Filtered() uint32 {
	return r.u32(3)
}

// RSSI returns the transmitter signal strength.
func (r *SensorRecord) RSSI() int16 {
	return r.i16(4)
}

func (r *SensorRecord) Export(e devicetime.Epoch) *Export {
	out := r.exportBase(e)
	out.Set("unfiltered", r.Unfiltered())
	out.Set("filtered", r.Filtered())
	out.Set("rssi", r.RSSI())
	return out
}
