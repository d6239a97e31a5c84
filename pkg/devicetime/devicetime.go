// Package devicetime converts receiver-relative second counts into
// calendar time.
//
// The receiver does not store absolute timestamps. Every record carries
// integer second counts measured from a fixed reference instant (the
// device epoch). Conversion is plain arithmetic; an Epoch is an explicit
// immutable value handed to callers so tests can substitute their own.
package devicetime

import "time"

// Epoch is the fixed reference instant all device second counts are
// measured from.
type Epoch struct {
	ref time.Time
}

// Receiver is the epoch used by production receivers: 2009-01-01 UTC.
var Receiver = NewEpoch(time.Date(2009, time.January, 1, 0, 0, 0, 0, time.UTC))

// NewEpoch returns an epoch anchored at the given instant.
func NewEpoch(ref time.Time) Epoch {
	return Epoch{ref: ref.UTC()}
}

// Ref returns the epoch's reference instant.
func (e Epoch) Ref() time.Time {
	return e.ref
}

// Time converts a device-relative second count to calendar time.
func (e Epoch) Time(secs uint32) time.Time {
	return e.ref.Add(time.Duration(secs) * time.Second)
}

// ISO renders a device-relative second count as an ISO-8601 string.
func (e Epoch) ISO(secs uint32) string {
	return e.Time(secs).Format(time.RFC3339)
}
