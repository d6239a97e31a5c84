package records

import (
	"testing"

	"github.com/opencgm/pagedec/pkg/devicetime"
)

func TestTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), parsed, typ)
		}
	}
}

func TestParseType_Unknown(t *testing.T) {
	if _, err := ParseType("telemetry"); err == nil {
		t.Error("expected error for unknown type name")
	}
}

func TestTypeSizes(t *testing.T) {
	testCases := []struct {
		typ  Type
		want int
	}{
		{typ: TypeEGV, want: 13},
		{typ: TypeG5EGV, want: 25},
		{typ: TypeG6EGV, want: 25},
		{typ: TypeMeter, want: 16},
		{typ: TypeG5Meter, want: 21},
		{typ: TypeInsertion, want: 15},
		{typ: TypeG5Insertion, want: 25},
		{typ: TypeEvent, want: 20},
		{typ: TypeSensor, want: 20},
		{typ: TypeG5UserSettings, want: 50},
		{typ: TypeG6UserSettings, want: 60},
		{typ: TypeXML, want: 500},
		{typ: TypeCalibration, want: 249},
		{typ: TypeLegacyCalibration, want: 148},
	}

	for _, tc := range testCases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := tc.typ.Size(); got != tc.want {
				t.Errorf("Size() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDecode_DispatchesByTag(t *testing.T) {
	page := buildSensor(100, 200, 152000, 148500, -70)

	rec, err := Decode(TypeSensor, page, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	sensor, ok := rec.(*SensorRecord)
	if !ok {
		t.Fatalf("Decode returned %T, want *SensorRecord", rec)
	}
	if sensor.Unfiltered() != 152000 {
		t.Error("dispatched decode read wrong fields")
	}
}

func TestDecode_CalibrationGenerations(t *testing.T) {
	legacy := buildCalibration(calFixture{generation: GenerationLegacy})
	rev2 := buildCalibration(calFixture{generation: GenerationRev2})

	if _, err := Decode(TypeLegacyCalibration, legacy, 0); err != nil {
		t.Errorf("legacy dispatch: %v", err)
	}
	if _, err := Decode(TypeCalibration, rev2, 0); err != nil {
		t.Errorf("rev2 dispatch: %v", err)
	}
}

func TestXML_PayloadStripped(t *testing.T) {
	rec, err := DecodeXML(buildXML(100, 200, "<Device SerialNumber='SM12345'/>"), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.XMLData() != "<Device SerialNumber='SM12345'/>" {
		t.Errorf("XMLData() = %q", rec.XMLData())
	}

	out := rec.Export(devicetime.Receiver)
	if payload, _ := out.Get("xmldata"); payload != "<Device SerialNumber='SM12345'/>" {
		t.Errorf("xmldata = %v", payload)
	}
}
