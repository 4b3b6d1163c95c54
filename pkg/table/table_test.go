package table

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestFirstSeenLevels(t *testing.T) {
	rows := []Row{
		{X: 1, Parameter: "b"},
		{X: 2, Parameter: "a"},
		{X: 3, Parameter: "b"},
		{X: 4, Parameter: "c"},
		{X: 5, Parameter: "a"},
	}

	got := FirstSeenLevels(rows)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FirstSeenLevels = %v, want %v", got, want)
	}
}

func TestReverseLevels(t *testing.T) {
	in := []string{"a", "b", "c"}
	got := ReverseLevels(in)
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReverseLevels = %v, want %v", got, want)
	}

	// Input must not be modified.
	if !reflect.DeepEqual(in, []string{"a", "b", "c"}) {
		t.Errorf("ReverseLevels modified input: %v", in)
	}
}

func TestReverseLevelsEmpty(t *testing.T) {
	if got := ReverseLevels(nil); len(got) != 0 {
		t.Errorf("ReverseLevels(nil) = %v, want empty", got)
	}
}

func TestClone(t *testing.T) {
	orig := New(Schema{HasParameter: true})
	orig.Append(Row{X: 1, Parameter: "a"}, Row{X: 2, Parameter: "b"})
	orig.Relevel([]string{"b", "a"})

	c := orig.Clone()
	c.Rows[0].X = 99
	c.Levels[0] = "z"

	if orig.Rows[0].X != 1 {
		t.Error("Clone shares row storage with original")
	}
	if orig.Levels[0] != "b" {
		t.Error("Clone shares level storage with original")
	}
}

func TestParameters(t *testing.T) {
	tbl := New(Schema{HasParameter: true})
	tbl.Append(Row{X: 1, Parameter: "a"}, Row{X: 2, Parameter: "b"}, Row{X: 3, Parameter: "a"})

	got := tbl.Parameters()
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Parameters = %v, want [a b]", got)
	}

	// No parameter column declared.
	plain := New(Schema{})
	plain.Append(Row{X: 1, Parameter: "ignored"})
	if got := plain.Parameters(); got != nil {
		t.Errorf("Parameters without column = %v, want nil", got)
	}
}

func TestFilter(t *testing.T) {
	tbl := New(Schema{HasParameter: true})
	tbl.Append(Row{X: 1, Parameter: "a"}, Row{X: 2, Parameter: "b"}, Row{X: 3, Parameter: "a"})

	sub := tbl.Filter(func(r Row) bool { return r.Parameter == "a" })
	if sub.Len() != 2 {
		t.Fatalf("Filter len = %d, want 2", sub.Len())
	}
	if sub.Rows[1].X != 3 {
		t.Errorf("Filter preserved wrong rows: %+v", sub.Rows)
	}
	if tbl.Len() != 3 {
		t.Error("Filter modified original table")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tbl := New(Schema{HasY: true, HasParameter: true, HasEffects: true})
	tbl.Append(
		Row{X: 1.5, Y: 0.2, Parameter: "alpha", Effects: "fixed"},
		Row{X: 2.5, Y: 0.4, Parameter: "beta", Effects: "random"},
	)
	tbl.Relevel([]string{"beta", "alpha"})

	data, err := MarshalTable(tbl)
	if err != nil {
		t.Fatalf("MarshalTable error: %v", err)
	}

	back, err := UnmarshalTable(data)
	if err != nil {
		t.Fatalf("UnmarshalTable error: %v", err)
	}

	if !reflect.DeepEqual(back.Rows, tbl.Rows) {
		t.Errorf("rows changed in round trip:\n got %+v\nwant %+v", back.Rows, tbl.Rows)
	}
	if !reflect.DeepEqual(back.Levels, tbl.Levels) {
		t.Errorf("levels changed in round trip: got %v, want %v", back.Levels, tbl.Levels)
	}
	if back.Schema != tbl.Schema {
		t.Errorf("schema changed in round trip: got %+v, want %+v", back.Schema, tbl.Schema)
	}
}

func TestReadCSV(t *testing.T) {
	input := "x,parameter,effects\n1.5,a,fixed\n2.25,b,random\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	if !tbl.Schema.HasParameter || !tbl.Schema.HasEffects {
		t.Errorf("schema not derived from header: %+v", tbl.Schema)
	}
	if tbl.Schema.HasY || tbl.Schema.HasComponent {
		t.Errorf("schema has undeclared columns: %+v", tbl.Schema)
	}
	if tbl.Len() != 2 {
		t.Fatalf("len = %d, want 2", tbl.Len())
	}
	if tbl.Rows[1].X != 2.25 || tbl.Rows[1].Parameter != "b" || tbl.Rows[1].Effects != "random" {
		t.Errorf("row 1 = %+v", tbl.Rows[1])
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing x", "parameter\na\n"},
		{"unknown column", "x,weight\n1,2\n"},
		{"bad float", "x\nnot-a-number\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl := New(Schema{HasParameter: true, HasGroup: true})
	tbl.Append(
		Row{X: 0.5, Parameter: "a", Group: "g1"},
		Row{X: -1.25, Parameter: "b", Group: "g2"},
	)

	var buf bytes.Buffer
	if err := WriteCSV(tbl, &buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if !reflect.DeepEqual(back.Rows, tbl.Rows) {
		t.Errorf("rows changed in CSV round trip:\n got %+v\nwant %+v", back.Rows, tbl.Rows)
	}
	if back.Schema != tbl.Schema {
		t.Errorf("schema changed: got %+v, want %+v", back.Schema, tbl.Schema)
	}
}
