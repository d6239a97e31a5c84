package records

import (
	"time"

	"github.com/opencgm/pagedec/pkg/devicetime"
	"github.com/opencgm/pagedec/pkg/layout"
)

// EventTypes indexes the raw event-category byte.
var EventTypes = []string{
	"", "CARBS", "INSULIN", "HEALTH", "EXERCISE", "MAX_VALUE",
}

// EventSubTypes holds the per-category sub-category tables. Categories
// absent here have no sub-category interpretation.
var EventSubTypes = map[string][]string{
	"INSULIN": {"", "FAST", "LONG"},
	"HEALTH": {
		"", "ILLNESS", "STRESS", "HIGH_SYMPTOMS", "LOW_SYMPTOMS",
		"CYCLE", "ALCOHOL",
	},
	"EXERCISE": {"", "LIGHT", "MEDIUM", "HEAVY", "MAX_VALUE"},
}

var eventLayout = layout.New("EventRecord",
	layout.U32, // system time
	layout.U32, // display time
	layout.U8,  // event category
	layout.U8,  // sub-category, meaning depends on category
	layout.U32, // user-entered event time
	layout.U32, // event value
	layout.U16, // crc
)

// EventRecord is a user-entered discrete event: a meal, an insulin
// dose, a health note or exercise.
type EventRecord struct {
	TimestampedRecord
}

// DecodeEvent decodes the event record at the given index.
func DecodeEvent(buf []byte, index int) (*EventRecord, error) {
	rec, err := decodeFixed(buf, eventLayout, index)
	if err != nil {
		return nil, err
	}
	return &EventRecord{TimestampedRecord{rec}}, nil
}

// RawType returns the raw event-category byte.
func (r *EventRecord) RawType() uint8 {
	return r.u8(2)
}

// RawSubType returns the raw sub-category byte.
func (r *EventRecord) RawSubType() uint8 {
	return r.u8(3)
}

// EventSecs returns the user-entered event time count. The receiver
// treats it as the record's display time.
func (r *EventRecord) EventSecs() uint32 {
	return r.u32(4)
}

// DisplayTime converts the user-entered event time, which stands in for
// the display time on event records.
func (r *EventRecord) DisplayTime(e devicetime.Epoch) time.Time {
	return e.Time(r.EventSecs())
}

// RawValue returns the unscaled event value.
func (r *EventRecord) RawValue() uint32 {
	return r.u32(5)
}

// EventType returns the category symbol, if the raw byte maps to one.
func (r *EventRecord) EventType() (string, bool) {
	return lookup(EventTypes, int(r.RawType()))
}

// EventSubType returns the sub-category symbol. Only categories with a
// sub-category table yield one.
func (r *EventRecord) EventSubType() (string, bool) {
	category, ok := r.EventType()
	if !ok {
		return "", false
	}
	table, ok := EventSubTypes[category]
	if !ok {
		return "", false
	}
	return lookup(table, int(r.RawSubType()))
}

// EventValue returns the event value with category scaling applied:
// insulin doses are stored as hundredths of a unit.
func (r *EventRecord) EventValue() float64 {
	value := float64(r.RawValue())
	if category, _ := r.EventType(); category == "INSULIN" {
		value /= 100.0
	}
	return value
}

func (r *EventRecord) Export(e devicetime.Epoch) *Export {
	out := NewExport()
	out.Set("system_time", e.ISO(r.SystemSecs()))
	out.Set("display_time", e.ISO(r.EventSecs()))
	exportEnum(out, "event_type", EventTypes, int(r.RawType()))
	r.exportSubType(out)
	if category, _ := r.EventType(); category == "INSULIN" {
		out.Set("event_value", r.EventValue())
	} else {
		out.Set("event_value", r.RawValue())
	}
	return out
}

func (r *EventRecord) exportSubType(out *Export) {
	category, ok := r.EventType()
	if !ok {
		out.Set("event_sub_type", "UNKNOWN")
		out.Set("event_sub_type_value", int(r.RawSubType()))
		return
	}
	table, ok := EventSubTypes[category]
	if !ok {
		// Category carries no sub-category meaning.
		out.Set("event_sub_type", nil)
		out.Set("event_sub_type_value", int(r.RawSubType()))
		return
	}
	exportEnum(out, "event_sub_type", table, int(r.RawSubType()))
}
