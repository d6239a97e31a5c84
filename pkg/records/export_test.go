package records

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/opencgm/pagedec/pkg/devicetime"
)

func TestExport_KeepsInsertionOrder(t *testing.T) {
	out := NewExport()
	out.Set("zulu", 1)
	out.Set("alpha", 2)
	out.Set("mike", 3)

	keys := out.Keys()
	want := []string{"zulu", "alpha", "mike"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestExport_OverwriteKeepsPosition(t *testing.T) {
	out := NewExport()
	out.Set("a", 1)
	out.Set("b", 2)
	out.Set("a", 3)

	if out.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", out.Len())
	}
	if v, _ := out.Get("a"); v != 3 {
		t.Errorf("a = %v, want 3", v)
	}
	if out.Keys()[0] != "a" {
		t.Error("overwrite moved the key")
	}
}

func TestExport_MarshalJSONOrdered(t *testing.T) {
	rec, err := DecodeEGV(buildEGV(300, 360, 140, 4), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	data, err := json.Marshal(rec.Export(devicetime.Receiver))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)

	// Base fields first, variant fields after, in declaration order.
	order := []string{"system_time", "display_time", "glucose", "is_special", "display_only", "trend_arrow"}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, `"`+key+`"`)
		if idx < 0 {
			t.Fatalf("key %s missing from %s", key, s)
		}
		if idx < last {
			t.Fatalf("key %s out of order in %s", key, s)
		}
		last = idx
	}

	// And the document must survive a round trip as an object.
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["system_time"] != "2009-01-01T00:05:00Z" {
		t.Errorf("system_time = %v", m["system_time"])
	}
}

func TestExport_CalibrationIncludesSubrecords(t *testing.T) {
	page := buildCalibration(calFixture{
		sys: 100, disp: 200, slope: 800,
		subs:       []subCalFixture{{entered: 10, meter: 95, sensor: 110000, applied: 40}},
		generation: GenerationRev2,
	})
	rec, err := DecodeCalibration(page, 0, GenerationRev2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	data, err := json.Marshal(rec.Export(devicetime.Receiver))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc struct {
		Numsub     int    `json:"numsub"`
		Raw        string `json:"raw"`
		Subrecords []struct {
			Meter  uint32 `json:"meter"`
			Sensor uint32 `json:"sensor"`
		} `json:"subrecords"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Numsub != 1 || len(doc.Subrecords) != 1 {
		t.Fatalf("subrecord accounting wrong: %+v", doc)
	}
	if doc.Subrecords[0].Meter != 95 || doc.Subrecords[0].Sensor != 110000 {
		t.Errorf("subrecord fields wrong: %+v", doc.Subrecords[0])
	}
	if len(doc.Raw) != 2*GenerationRev2.RecordSize() {
		t.Errorf("raw hex length = %d, want %d", len(doc.Raw), 2*GenerationRev2.RecordSize())
	}
}
