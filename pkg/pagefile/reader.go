// Package pagefile streams records out of a page dump file: a flat
// capture of one record type's memory pages, fixed-size records back to
// back. It feeds the record decoder; it does not talk to a device.
package pagefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencgm/pagedec/pkg/records"
)

// ReaderConfig holds configuration for the page file reader.
type ReaderConfig struct {
	FilePath   string       // Path to the page dump
	Type       records.Type // Record type stored in the dump
	StartIndex int          // Record index to start reading from
}

// Reader provides sequential decoded access to the records in a dump.
type Reader struct {
	file   *os.File
	reader *bufio.Reader
	config ReaderConfig
	index  int
	size   int
}

// NewReader opens a page dump for the specified record type.
func NewReader(config ReaderConfig) (*Reader, error) {
	size := config.Type.Size()
	if size == 0 {
		return nil, fmt.Errorf("record type %s has no fixed size", config.Type)
	}

	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	if config.StartIndex > 0 {
		if _, err := file.Seek(int64(config.StartIndex)*int64(size), io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &Reader{
		file:   file,
		reader: bufio.NewReader(file),
		config: config,
		index:  config.StartIndex,
		size:   size,
	}, nil
}

// Next reads and decodes the next record. It returns io.EOF at a clean
// end of file; a trailing partial record is an error, not a silent
// drop. A decode failure advances past the bad record so the caller can
// choose to continue with the next one.
func (r *Reader) Next() (records.Decoded, error) {
	chunk := make([]byte, r.size)
	if _, err := io.ReadFull(r.reader, chunk); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated %s record at index %d", r.config.Type, r.index)
		}
		return nil, err
	}

	index := r.index
	r.index++

	rec, err := records.Decode(r.config.Type, chunk, 0)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", index, err)
	}
	return rec, nil
}

// Index returns the index of the next record to be read.
func (r *Reader) Index() int {
	return r.index
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Iterator returns a streaming iterator over the remaining records.
func (r *Reader) Iterator() *Iterator {
	return &Iterator{reader: r}
}

// Iterator wraps a Reader for for-loop style consumption. Iteration
// stops at the first error; Err distinguishes a failure from a clean
// end of file.
type Iterator struct {
	reader *Reader
	record records.Decoded
	err    error
}

// Next advances to the next record, reporting whether one is available.
func (it *Iterator) Next() bool {
	it.record, it.err = it.reader.Next()
	return it.err == nil
}

// Record returns the current record.
func (it *Iterator) Record() records.Decoded {
	return it.record
}

// Err returns the error that stopped iteration, or nil at end of file.
func (it *Iterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}
