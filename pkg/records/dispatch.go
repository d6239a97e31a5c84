package records

import "fmt"

// Type tags the closed set of concrete record layouts. The surrounding
// page context supplies it together with the buffer; record types are
// never inferred by probing bytes.
type Type uint8

const (
	TypeEGV Type = iota
	TypeG5EGV
	TypeG6EGV
	TypeMeter
	TypeG5Meter
	TypeInsertion
	TypeG5Insertion
	TypeEvent
	TypeSensor
	TypeG5UserSettings
	TypeG6UserSettings
	TypeXML
	TypeCalibration
	TypeLegacyCalibration
)

var typeNames = []string{
	"egv", "g5-egv", "g6-egv", "meter", "g5-meter",
	"insertion", "g5-insertion", "event", "sensor",
	"g5-settings", "g6-settings", "xml",
	"calibration", "legacy-calibration",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType maps a type name, as used in configuration and on the
// command line, to its tag.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if s == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", s)
}

// Size returns the total on-disk size of one record of this type.
func (t Type) Size() int {
	switch t {
	case TypeEGV:
		return egvLayout.Size()
	case TypeG5EGV:
		return g5EGVLayout.Size()
	case TypeG6EGV:
		return g6EGVLayout.Size()
	case TypeMeter:
		return meterLayout.Size()
	case TypeG5Meter:
		return g5MeterLayout.Size()
	case TypeInsertion:
		return insertionLayout.Size()
	case TypeG5Insertion:
		return g5InsertionLayout.Size()
	case TypeEvent:
		return eventLayout.Size()
	case TypeSensor:
		return sensorLayout.Size()
	case TypeG5UserSettings:
		return g5SettingsLayout.Size()
	case TypeG6UserSettings:
		return g6SettingsLayout.Size()
	case TypeXML:
		return xmlLayout.Size()
	case TypeCalibration:
		return GenerationRev2.RecordSize()
	case TypeLegacyCalibration:
		return GenerationLegacy.RecordSize()
	}
	return 0
}

// Decode decodes the record at the given index of a page buffer as the
// tagged type.
func Decode(t Type, buf []byte, index int) (Decoded, error) {
	switch t {
	case TypeEGV:
		return DecodeEGV(buf, index)
	case TypeG5EGV:
		return DecodeG5EGV(buf, index)
	case TypeG6EGV:
		return DecodeG6EGV(buf, index)
	case TypeMeter:
		return DecodeMeter(buf, index)
	case TypeG5Meter:
		return DecodeG5Meter(buf, index)
	case TypeInsertion:
		return DecodeInsertion(buf, index)
	case TypeG5Insertion:
		return DecodeG5Insertion(buf, index)
	case TypeEvent:
		return DecodeEvent(buf, index)
	case TypeSensor:
		return DecodeSensor(buf, index)
	case TypeG5UserSettings:
		return DecodeG5UserSettings(buf, index)
	case TypeG6UserSettings:
		return DecodeG6UserSettings(buf, index)
	case TypeXML:
		return DecodeXML(buf, index)
	case TypeCalibration:
		return DecodeCalibration(buf, index, GenerationRev2)
	case TypeLegacyCalibration:
		return DecodeCalibration(buf, index, GenerationLegacy)
	}
	return nil, fmt.Errorf("unknown record type %d", uint8(t))
}

// Types lists every decodable record type, in tag order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}
	return out
}
