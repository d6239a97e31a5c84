// Package layout describes the fixed binary layout of one record
// variant and unpacks raw bytes according to it.
//
// A Layout is an ordered sequence of typed fields with a fixed total
// byte size. Layouts are defined once per record variant, are immutable
// after construction, and are safe to share between goroutines. All
// multi-byte fields are little-endian.
package layout

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Kind identifies the wire type of a single field.
type Kind uint8

const (
	Uint8 Kind = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Float64
	ByteString
)

// Field is one typed slot in a layout. Len is only meaningful for
// ByteString fields.
type Field struct {
	Kind Kind
	Len  int
}

// Shorthand fields used by layout declarations.
var (
	U8  = Field{Kind: Uint8}
	I8  = Field{Kind: Int8}
	U16 = Field{Kind: Uint16}
	I16 = Field{Kind: Int16}
	U32 = Field{Kind: Uint32}
	I32 = Field{Kind: Int32}
	F64 = Field{Kind: Float64}
)

// Bytes declares a fixed-length byte string field of n bytes.
func Bytes(n int) Field {
	return Field{Kind: ByteString, Len: n}
}

// Width returns the encoded byte width of the field.
func (f Field) Width() int {
	switch f.Kind {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32:
		return 4
	case Float64:
		return 8
	case ByteString:
		return f.Len
	}
	return 0
}

// Layout is the immutable field-by-field description of one record
// variant's fixed binary region.
type Layout struct {
	name   string
	fields []Field
	size   int
}

// New builds a layout from an ordered field list. The name identifies
// the record variant in diagnostics.
func New(name string, fields ...Field) Layout {
	l := Layout{name: name, fields: fields}
	for _, f := range fields {
		l.size += f.Width()
	}
	return l
}

// Name returns the record variant name the layout belongs to.
func (l Layout) Name() string {
	return l.name
}

// Size returns the total encoded size in bytes.
func (l Layout) Size() int {
	return l.size
}

// NumFields returns the number of declared fields.
func (l Layout) NumFields() int {
	return len(l.fields)
}

// Unpack decodes buf into one value per field, in declaration order.
// Returned values are uint8, int8, uint16, int16, uint32, int32,
// float64 or []byte depending on the field kind. Byte string values are
// copies; the caller's buffer is never retained.
func (l Layout) Unpack(buf []byte) ([]any, error) {
	if len(buf) < l.size {
		return nil, fmt.Errorf("layout %s: need %d bytes, have %d", l.name, l.size, len(buf))
	}

	values := make([]any, 0, len(l.fields))
	off := 0
	for _, f := range l.fields {
		switch f.Kind {
		case Uint8:
			values = append(values, buf[off])
		case Int8:
			values = append(values, int8(buf[off]))
		case Uint16:
			values = append(values, binary.LittleEndian.Uint16(buf[off:]))
		case Int16:
			values = append(values, int16(binary.LittleEndian.Uint16(buf[off:])))
		case Uint32:
			values = append(values, binary.LittleEndian.Uint32(buf[off:]))
		case Int32:
			values = append(values, int32(binary.LittleEndian.Uint32(buf[off:])))
		case Float64:
			values = append(values, math.Float64frombits(binary.LittleEndian.Uint64(buf[off:])))
		case ByteString:
			b := make([]byte, f.Len)
			copy(b, buf[off:off+f.Len])
			values = append(values, b)
		}
		off += f.Width()
	}
	return values, nil
}
