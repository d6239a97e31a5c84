package records

import (
	"encoding/binary"
	"math"

	"github.com/opencgm/pagedec/pkg/crc16"
)

// packer builds record fixtures: little-endian fields appended in
// layout order, sealed with a valid trailing checksum.
type packer struct {
	buf []byte
}

func (p *packer) u8(v uint8) *packer {
	p.buf = append(p.buf, v)
	return p
}

func (p *packer) i8(v int8) *packer {
	return p.u8(uint8(v))
}

func (p *packer) u16(v uint16) *packer {
	p.buf = binary.LittleEndian.AppendUint16(p.buf, v)
	return p
}

func (p *packer) i16(v int16) *packer {
	return p.u16(uint16(v))
}

func (p *packer) u32(v uint32) *packer {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
	return p
}

func (p *packer) f64(v float64) *packer {
	p.buf = binary.LittleEndian.AppendUint64(p.buf, math.Float64bits(v))
	return p
}

func (p *packer) bytes(b []byte) *packer {
	p.buf = append(p.buf, b...)
	return p
}

func (p *packer) pad(n int) *packer {
	p.buf = append(p.buf, make([]byte, n)...)
	return p
}

// seal appends the checksum over everything packed so far.
func (p *packer) seal() []byte {
	return binary.LittleEndian.AppendUint16(p.buf, crc16.Checksum(p.buf))
}

// sealBad appends a deliberately wrong checksum.
func (p *packer) sealBad() []byte {
	return binary.LittleEndian.AppendUint16(p.buf, crc16.Checksum(p.buf)^0xFFFF)
}

func buildEGV(sys, disp uint32, glucose uint16, trend uint8) []byte {
	return (&packer{}).u32(sys).u32(disp).u16(glucose).u8(trend).seal()
}

func buildG5EGV(sys, disp uint32, glucose uint16, meterSecs uint32, testNum uint32, trend uint8, realtime uint16) []byte {
	return (&packer{}).
		u32(sys).u32(disp).u16(glucose).u32(meterSecs).
		u8(0).u32(testNum).u8(trend).u8(0).u16(realtime).
		seal()
}

func buildMeter(sys, disp uint32, calibGlucose uint16, meterSecs uint32) []byte {
	return (&packer{}).u32(sys).u32(disp).u16(calibGlucose).u32(meterSecs).seal()
}

func buildG5Meter(sys, disp uint32, calibGlucose uint16, recordType uint8, meterSecs, rawTestNum uint32) []byte {
	return (&packer{}).
		u32(sys).u32(disp).u16(calibGlucose).u8(recordType).
		u32(meterSecs).u32(rawTestNum).
		seal()
}

func buildInsertion(sys, disp, insertion uint32, state uint8) []byte {
	return (&packer{}).u32(sys).u32(disp).u32(insertion).u8(state).seal()
}

func buildG5Insertion(sys, disp, insertion uint32, state uint8, number uint32, transmitter []byte) []byte {
	return (&packer{}).
		u32(sys).u32(disp).u32(insertion).u8(state).
		u32(number).bytes(transmitter).
		seal()
}

func buildEvent(sys, disp uint32, eventType, subType uint8, eventSecs, value uint32) []byte {
	return (&packer{}).
		u32(sys).u32(disp).u8(eventType).u8(subType).
		u32(eventSecs).u32(value).
		seal()
}

func buildSensor(sys, disp, unfiltered, filtered uint32, rssi int16) []byte {
	return (&packer{}).
		u32(sys).u32(disp).u32(unfiltered).u32(filtered).i16(rssi).
		seal()
}

func buildXML(sys, disp uint32, payload string) []byte {
	p := (&packer{}).u32(sys).u32(disp).bytes([]byte(payload))
	return p.pad(490 - len(payload)).seal()
}

type calFixture struct {
	sys, disp                       uint32
	slope, intercept, scale, decay  float64
	subs                            []subCalFixture
	generation                      Generation
	declaredNumSub                  *int8 // overrides len(subs) when set
	corruptChecksum, corruptSubByte bool
}

type subCalFixture struct {
	entered, meter, sensor, applied uint32
}

// buildCalibration assembles a full fixed-size calibration record:
// 44-byte header, sub-record span, zero padding up to size-2, trailing
// checksum over everything before it.
func buildCalibration(f calFixture) []byte {
	numsub := int8(len(f.subs))
	if f.declaredNumSub != nil {
		numsub = *f.declaredNumSub
	}

	p := (&packer{}).
		u32(f.sys).u32(f.disp).
		f64(f.slope).f64(f.intercept).f64(f.scale).
		u8(0).u8(0).u8(0).
		f64(f.decay).i8(numsub)

	for _, sub := range f.subs {
		p.u32(sub.entered).u32(sub.meter).u32(sub.sensor).u32(sub.applied).u8(0)
	}

	size := f.generation.RecordSize()
	p.pad(size - 2 - len(p.buf))

	var out []byte
	if f.corruptChecksum {
		out = p.sealBad()
	} else {
		out = p.seal()
	}
	if f.corruptSubByte && len(f.subs) > 0 {
		out[calibrationLayout.Size()] ^= 0xFF
	}
	return out
}

func concat(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}
