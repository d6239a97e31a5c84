package records

import "fmt"

// CrcError reports a checksum mismatch while decoding a record. The
// record's bytes are corrupt or the wrong layout was applied; retrying
// would reread identical bytes, so the caller decides whether to skip
// the record or abort the page.
type CrcError struct {
	Record string
	Want   uint16
	Got    uint16
}

func (e *CrcError) Error() string {
	return fmt.Sprintf("could not parse %s: crc mismatch: record says 0x%04X, computed 0x%04X", e.Record, e.Want, e.Got)
}

// ConfigError reports a programmer defect in a record variant's setup,
// such as an empty layout. It is detected before any data is touched
// and never depends on page contents.
type ConfigError struct {
	Record string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("record %s misconfigured: %s", e.Record, e.Reason)
}

// MalformedRecordError reports a structurally impossible record, such
// as a variable-length span overrunning the record bounds or a buffer
// too short for the requested index. It is detected before any checksum
// arithmetic, which distinguishes it from CrcError.
type MalformedRecordError struct {
	Record string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: %s", e.Record, e.Reason)
}
