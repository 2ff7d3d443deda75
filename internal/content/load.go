package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML override on top of the built-in defaults. A list in
// the document replaces the default list wholesale; a mapping such as hero
// is merged field by field, so fields it omits keep their defaults. Absent
// keys keep the default. Unknown keys are rejected.
func Parse(data []byte) (*Portfolio, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads and parses a YAML content file.
func LoadFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal renders a portfolio as YAML, in the same shape Parse accepts.
func Marshal(p *Portfolio) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("content: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("content: encode: %w", err)
	}
	return buf.Bytes(), nil
}
