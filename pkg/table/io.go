package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// Table Serialization API
// =============================================================================

// MarshalTable converts a table to JSON bytes.
func MarshalTable(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTableTo(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalTable decodes JSON bytes into a table.
func UnmarshalTable(data []byte) (*Table, error) {
	return readTableFrom(bytes.NewReader(data))
}

// WriteTableFile writes a table to a JSON file.
// The file is created with 0644 permissions.
func WriteTableFile(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTableTo(t, f)
}

// WriteTable writes a table as JSON to an io.Writer.
func WriteTable(t *Table, w io.Writer) error {
	return writeTableTo(t, w)
}

// ReadTableFile reads a JSON file and returns the decoded table.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readTableFrom(f)
}

// ReadTable decodes a JSON table from an io.Reader.
func ReadTable(r io.Reader) (*Table, error) {
	return readTableFrom(r)
}

// wireTable is the JSON wire format.
type wireTable struct {
	Schema Schema   `json:"schema"`
	Levels []string `json:"levels,omitempty"`
	Rows   []Row    `json:"rows"`
}

func writeTableTo(t *Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wireTable{Schema: t.Schema, Levels: t.Levels, Rows: t.Rows}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readTableFrom(r io.Reader) (*Table, error) {
	var data wireTable
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &Table{Rows: data.Rows, Schema: data.Schema, Levels: data.Levels}, nil
}

// =============================================================================
// CSV Support
// =============================================================================

// ReadCSVFile reads a CSV file with a header row and returns a table.
// The schema is derived from the header columns.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads CSV data with a header row from an io.Reader.
//
// Recognized header columns (case-insensitive): x, y, parameter, effects,
// component, group. The x column is required; unknown columns are an error.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	var schema Schema
	hasX := false
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "x":
			hasX = true
		case "y":
			schema.HasY = true
		case "parameter":
			schema.HasParameter = true
		case "effects":
			schema.HasEffects = true
		case "component":
			schema.HasComponent = true
		case "group":
			schema.HasGroup = true
		default:
			return nil, fmt.Errorf("unknown column %q (expected x, y, parameter, effects, component, group)", h)
		}
		cols[i] = name
	}
	if !hasX {
		return nil, fmt.Errorf("missing required column x")
	}

	t := New(schema)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		var row Row
		for i, val := range record {
			switch cols[i] {
			case "x", "y":
				v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: parse %s value %q: %w", line, cols[i], val, err)
				}
				if cols[i] == "x" {
					row.X = v
				} else {
					row.Y = v
				}
			case "parameter":
				row.Parameter = val
			case "effects":
				row.Effects = val
			case "component":
				row.Component = val
			case "group":
				row.Group = val
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV writes the table as CSV with a header row.
// Only columns declared in the schema are emitted.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"x"}
	if t.Schema.HasY {
		header = append(header, "y")
	}
	if t.Schema.HasParameter {
		header = append(header, "parameter")
	}
	if t.Schema.HasEffects {
		header = append(header, "effects")
	}
	if t.Schema.HasComponent {
		header = append(header, "component")
	}
	if t.Schema.HasGroup {
		header = append(header, "group")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range t.Rows {
		record := []string{strconv.FormatFloat(r.X, 'g', -1, 64)}
		if t.Schema.HasY {
			record = append(record, strconv.FormatFloat(r.Y, 'g', -1, 64))
		}
		if t.Schema.HasParameter {
			record = append(record, r.Parameter)
		}
		if t.Schema.HasEffects {
			record = append(record, r.Effects)
		}
		if t.Schema.HasComponent {
			record = append(record, r.Component)
		}
		if t.Schema.HasGroup {
			record = append(record, r.Group)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
