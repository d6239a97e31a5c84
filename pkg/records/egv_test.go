package records

import (
	"testing"

	"github.com/opencgm/pagedec/pkg/devicetime"
)

func TestEGV_GlucoseMaskAndFlags(t *testing.T) {
	testCases := []struct {
		name        string
		raw         uint16
		glucose     uint16
		displayOnly bool
	}{
		{name: "plain reading", raw: 140, glucose: 140, displayOnly: false},
		{name: "display-only flag set", raw: 0x8000 | 140, glucose: 140, displayOnly: true},
		{name: "all magnitude bits", raw: 0x1FFF, glucose: 0x1FFF, displayOnly: false},
		{name: "flag bits above the magnitude", raw: 0xE000 | 250, glucose: 250, displayOnly: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := DecodeEGV(buildEGV(100, 200, tc.raw, 4), 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rec.Glucose() != tc.glucose {
				t.Errorf("Glucose() = %d, want %d", rec.Glucose(), tc.glucose)
			}
			if rec.DisplayOnly() != tc.displayOnly {
				t.Errorf("DisplayOnly() = %v, want %v", rec.DisplayOnly(), tc.displayOnly)
			}
		})
	}
}

func TestEGV_SpecialValues(t *testing.T) {
	rec, err := DecodeEGV(buildEGV(100, 200, 1, 0), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !rec.IsSpecial() {
		t.Fatal("magnitude 1 must be special")
	}
	meaning, ok := rec.SpecialMeaning()
	if !ok || meaning != "SENSOR_NOT_ACTIVE" {
		t.Errorf("SpecialMeaning() = %q, %v; want SENSOR_NOT_ACTIVE", meaning, ok)
	}

	// The consumer-facing export must not present the magnitude as a
	// clinical reading.
	out := rec.Export(devicetime.Receiver)
	glucose, _ := out.Get("glucose")
	if glucose != "SENSOR_NOT_ACTIVE" {
		t.Errorf("export glucose = %v, want the sentinel symbol", glucose)
	}
	if special, _ := out.Get("is_special"); special != true {
		t.Error("export is_special = false, want true")
	}
}

func TestEGV_NormalValueIsNotSpecial(t *testing.T) {
	rec, err := DecodeEGV(buildEGV(100, 200, 95, 4), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.IsSpecial() {
		t.Error("magnitude 95 reported special")
	}
	out := rec.Export(devicetime.Receiver)
	if glucose, _ := out.Get("glucose"); glucose != uint16(95) {
		t.Errorf("export glucose = %v (%T), want 95", glucose, glucose)
	}
}

func TestEGV_TrendArrow(t *testing.T) {
	testCases := []struct {
		name   string
		trend  uint8
		symbol string
		ok     bool
	}{
		{name: "flat", trend: 4, symbol: "FLAT", ok: true},
		{name: "high bits ignored", trend: 0xF0 | 4, symbol: "FLAT", ok: true},
		{name: "rate out of range", trend: 9, symbol: "RATE_OUT_OF_RANGE", ok: true},
		{name: "unmapped nibble", trend: 13, symbol: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := DecodeEGV(buildEGV(100, 200, 120, tc.trend), 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			symbol, ok := rec.TrendArrow()
			if ok != tc.ok || symbol != tc.symbol {
				t.Errorf("TrendArrow() = %q, %v; want %q, %v", symbol, ok, tc.symbol, tc.ok)
			}
		})
	}
}

func TestEGV_UnknownTrendSurvivesInExport(t *testing.T) {
	rec, err := DecodeEGV(buildEGV(100, 200, 120, 13), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	out := rec.Export(devicetime.Receiver)
	if symbol, _ := out.Get("trend_arrow"); symbol != "UNKNOWN" {
		t.Errorf("trend_arrow = %v, want UNKNOWN", symbol)
	}
	if raw, _ := out.Get("trend_arrow_value"); raw != 13 {
		t.Errorf("trend_arrow_value = %v, want 13", raw)
	}
}

func TestG5EGV_TestNumMasking(t *testing.T) {
	testCases := []struct {
		name string
		raw  uint32
		want uint32
	}{
		{name: "top byte stripped", raw: 0x12FFFFFF, want: 0x00FFFFFF},
		{name: "zero top byte unchanged", raw: 0x00ABCDEF, want: 0x00ABCDEF},
		{name: "all ones", raw: 0xFFFFFFFF, want: 0x00FFFFFF},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := DecodeG5EGV(buildG5EGV(100, 200, 120, 150, tc.raw, 4, 0), 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := rec.TestNum(); got != tc.want {
				t.Errorf("TestNum() = %#x, want %#x", got, tc.want)
			}
		})
	}
}

func TestG5EGV_FieldPositions(t *testing.T) {
	rec, err := DecodeG5EGV(buildG5EGV(500, 600, 0x8000|110, 550, 42, 0x05, 108), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if rec.Glucose() != 110 {
		t.Errorf("Glucose() = %d, want 110", rec.Glucose())
	}
	if !rec.DisplayOnly() {
		t.Error("display-only flag lost")
	}
	if rec.MeterSecs() != 550 {
		t.Errorf("MeterSecs() = %d, want 550", rec.MeterSecs())
	}
	if symbol, _ := rec.TrendArrow(); symbol != "FORTY_FIVE_DOWN" {
		t.Errorf("TrendArrow() = %q, want FORTY_FIVE_DOWN", symbol)
	}
	if rec.Realtime() != 108 {
		t.Errorf("Realtime() = %d, want 108", rec.Realtime())
	}
}

func TestG6EGV_RealtimeExported(t *testing.T) {
	rec, err := DecodeG6EGV(buildG5EGV(500, 600, 112, 550, 42, 4, 109), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	out := rec.Export(devicetime.Receiver)
	if realtime, _ := out.Get("realtime"); realtime != uint16(109) {
		t.Errorf("realtime = %v, want 109", realtime)
	}
	if testNum, _ := out.Get("test_num"); testNum != uint32(42) {
		t.Errorf("test_num = %v, want 42", testNum)
	}
}
