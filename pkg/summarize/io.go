package summarize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadModelInfoFile reads a JSON model description file.
func ReadModelInfoFile(path string) (*ModelInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadModelInfo(f)
}

// ReadModelInfo decodes a JSON model description from an io.Reader.
func ReadModelInfo(r io.Reader) (*ModelInfo, error) {
	var m ModelInfo
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &m, nil
}

// MarshalSummary converts summary rows to JSON bytes.
func MarshalSummary(rows []SummaryRow) ([]byte, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}
