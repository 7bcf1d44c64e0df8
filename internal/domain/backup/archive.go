package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// WriteArchive streams the dump as zstd-compressed JSON. The format is
// a single JSON document, so a restore tool can decompress and decode
// in one pass.
func WriteArchive(w io.Writer, dump *Dump) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("init zstd writer: %w", err)
	}

	if err := json.NewEncoder(enc).Encode(dump); err != nil {
		enc.Close()
		return fmt.Errorf("encode dump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush archive: %w", err)
	}
	return nil
}

// ReadArchive decodes a dump produced by WriteArchive.
func ReadArchive(r io.Reader) (*Dump, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("init zstd reader: %w", err)
	}
	defer dec.Close()

	var dump Dump
	if err := json.NewDecoder(dec).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	return &dump, nil
}
