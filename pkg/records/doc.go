// Package records decodes the typed records a receiver stores in its
// memory pages.
//
// Every record variant has a fixed little-endian binary layout with a
// trailing 16-bit checksum covering all preceding bytes. The one
// exception is the calibration set, whose fixed-size record embeds a
// run-time-determined number of nested sub-records ahead of the
// checksum.
//
// # Decoding
//
// A caller holds a raw page buffer and knows, from the page context,
// the record type and a zero-based record index:
//
//	rec, err := records.DecodeEGV(page, 3)
//	if err != nil {
//	    var crcErr *records.CrcError
//	    if errors.As(err, &crcErr) {
//	        // record bytes are corrupt; skip or abort the page
//	    }
//	    return err
//	}
//	if !rec.IsSpecial() {
//	    mgdl := rec.Glucose()
//	}
//
// Generic dispatch over the closed type set is available through
// Decode. For calibration records the caller must also supply the page
// format generation, which selects the total record size.
//
// # Exports
//
// Every variant exposes Export, a uniform mapping from field name to
// value with calendar times rendered as ISO-8601 strings. Exports keep
// insertion order and marshal to JSON in that order.
//
// # Errors
//
//   - CrcError: checksum mismatch; hard per-record failure.
//   - MalformedRecordError: structurally impossible record, detected
//     before any checksum arithmetic.
//   - ConfigError: programmer defect such as an empty layout.
//
// Enumerated fields whose raw integer has no symbolic mapping are not
// errors: accessors report the symbol as absent and exports render
// UNKNOWN next to the preserved raw value.
//
// # Concurrency
//
// All decoding is pure and synchronous over a borrowed buffer. Layouts
// and symbol tables are immutable; decoding any set of records from any
// number of goroutines needs no coordination.
package records
