package domain

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"id", "title", "popularity"},
		[][]string{
			{"t1", "Song A", "40"},
			{"t2", "Song B", ""},
		},
	)
}

func TestTableGetSet(t *testing.T) {
	tbl := sampleTable()

	if got := tbl.Get(0, "title"); got != "Song A" {
		t.Fatalf("Get: got %q, want %q", got, "Song A")
	}
	if got := tbl.Get(0, "nope"); got != "" {
		t.Fatalf("Get missing column: got %q, want empty", got)
	}

	if err := tbl.Set(1, "popularity", "55"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := tbl.Get(1, "popularity"); got != "55" {
		t.Fatalf("Set round-trip: got %q", got)
	}

	if err := tbl.Set(0, "nope", "x"); err == nil {
		t.Fatal("Set on missing column: expected error")
	}
	if err := tbl.Set(9, "title", "x"); err == nil {
		t.Fatal("Set out of range: expected error")
	}
}

func TestTablePadsShortRows(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"}, [][]string{{"1"}})
	if len(tbl.Rows[0]) != 3 {
		t.Fatalf("row width: got %d, want 3", len(tbl.Rows[0]))
	}
	if got := tbl.Get(0, "c"); got != "" {
		t.Fatalf("padded cell: got %q, want empty", got)
	}
}

func TestEnsureColumns(t *testing.T) {
	tbl := sampleTable()
	tbl.EnsureColumns("popularity", "year")

	if !reflect.DeepEqual(tbl.Header, []string{"id", "title", "popularity", "year"}) {
		t.Fatalf("header: got %v", tbl.Header)
	}
	// Existing column untouched.
	if got := tbl.Get(0, "popularity"); got != "40" {
		t.Fatalf("existing column changed: got %q", got)
	}
	if got := tbl.Get(0, "year"); got != "" {
		t.Fatalf("new column: got %q, want empty", got)
	}
}

func TestDropColumn(t *testing.T) {
	tbl := sampleTable()
	tbl.DropColumn("title")

	if !reflect.DeepEqual(tbl.Header, []string{"id", "popularity"}) {
		t.Fatalf("header: got %v", tbl.Header)
	}
	if got := tbl.Get(0, "popularity"); got != "40" {
		t.Fatalf("cells shifted wrong: got %q", got)
	}
	// Dropping again is a no-op.
	tbl.DropColumn("title")
	if len(tbl.Header) != 2 {
		t.Fatalf("header after double drop: got %v", tbl.Header)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := sampleTable()
	clone := tbl.Clone()

	if err := clone.Set(0, "title", "changed"); err != nil {
		t.Fatalf("Set on clone: %v", err)
	}
	clone.EnsureColumns("extra")

	if got := tbl.Get(0, "title"); got != "Song A" {
		t.Fatalf("original mutated through clone: got %q", got)
	}
	if _, ok := tbl.ColumnIndex("extra"); ok {
		t.Fatal("original gained a column added to the clone")
	}
}

func TestCheckSchema(t *testing.T) {
	tbl := sampleTable()
	schema := Schema{Name: "test", Columns: []Column{
		{Name: "id", Type: TypeString, Required: true},
		{Name: "title", Type: TypeString, Required: true},
		{Name: "bpm", Type: TypeFloat},
	}}

	if err := tbl.CheckSchema(schema); err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}

	schema.Columns = append(schema.Columns, Column{Name: "lyrics", Required: true})
	if err := tbl.CheckSchema(schema); err == nil {
		t.Fatal("CheckSchema: expected error for missing required column")
	}
}
