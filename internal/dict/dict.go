// Package dict implements the phrase dictionary: a flat, append-only blob
// of NUL-terminated UTF-8 phrase strings addressed by byte offset, as
// produced alongside the phrase tree (SPEC_FULL.md §4.E, §6).
package dict

import (
	"errors"
	"fmt"

	"github.com/chewing/zhuyin-core/internal/mmapview"
)

// ErrCorruptDictionary is returned when an offset does not address the
// start of a NUL-terminated string within the blob.
var ErrCorruptDictionary = errors.New("dict: corrupt dictionary")

// Dict is a read-only view over a phrase dictionary file.
type Dict struct {
	view *mmapview.View
}

// Open memory-maps the phrase dictionary file at path.
func Open(path string) (*Dict, error) {
	view, err := mmapview.Open(path)
	if err != nil {
		return nil, err
	}
	return &Dict{view: view}, nil
}

// New wraps an already-loaded blob without mapping a file.
func New(data []byte) *Dict {
	return &Dict{view: mmapview.FromBytes(data)}
}

// Close releases the underlying mapping, if any.
func (d *Dict) Close() error {
	return d.view.Close()
}

// PhraseAt returns the NUL-terminated UTF-8 phrase string starting at
// offset. Bounds are checked against the blob length; ErrCorruptDictionary
// is returned if no terminator is found before the end of the blob
// (SPEC_FULL.md §4.E).
func (d *Dict) PhraseAt(offset uint32) (string, error) {
	start := int(offset)
	if start < 0 || start >= d.view.Len() {
		return "", fmt.Errorf("%w: offset %d out of range", ErrCorruptDictionary, offset)
	}
	end := d.view.IndexByte(start, 0)
	if end < 0 {
		return "", fmt.Errorf("%w: no terminator after offset %d", ErrCorruptDictionary, offset)
	}
	b, err := d.view.Bytes(start, end-start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDictionary, err)
	}
	return string(b), nil
}

// Encode concatenates phrases into the NUL-terminated blob format PhraseAt
// reads, returning each phrase's offset in the same order as the input.
// Used by tests and by any future migration tool writing this format.
func Encode(phrases []string) (blob []byte, offsets []uint32) {
	offsets = make([]uint32, len(phrases))
	for i, p := range phrases {
		offsets[i] = uint32(len(blob))
		blob = append(blob, p...)
		blob = append(blob, 0)
	}
	return blob, offsets
}
