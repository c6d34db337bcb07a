package launch

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Decode parses a TOML descriptor. Unknown keys are rejected so typos in a
// descriptor file surface instead of silently producing a default.
func Decode(data []byte) (Descriptor, error) {
	var d Descriptor
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrInvalidDescriptor, strict.String())
		}
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return Descriptor{}, fmt.Errorf("%w: line %d, column %d: %s", ErrInvalidDescriptor, row, col, decErr.Error())
		}
		return Descriptor{}, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	return d, nil
}

// LoadFile reads a descriptor file, applies WithDefaults and validates it.
func LoadFile(fsys afero.Fs, path string) (Descriptor, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read descriptor %q: %w", path, err)
	}

	d, err := Decode(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("descriptor %q: %w", path, err)
	}

	d = d.WithDefaults()
	if err := d.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("descriptor %q: %w", path, err)
	}
	return d, nil
}

// Encode renders d as TOML, the format LoadFile reads.
func Encode(d Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	return buf.Bytes(), nil
}
