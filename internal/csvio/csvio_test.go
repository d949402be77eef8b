package csvio

import (
	"strings"
	"testing"
)

func TestRead_Basic(t *testing.T) {
	in := "a,b,c\n1,2,3\n4,5,6\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(table.Header) != 3 {
		t.Fatalf("header = %v, want 3 columns", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "1" || table.Rows[1][2] != "6" {
		t.Errorf("unexpected cells: %v", table.Rows)
	}
}

func TestRead_DropsBlankRows(t *testing.T) {
	in := "a,b\n1,2\n,\n   ,  \n3,4\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2 (blank rows dropped)", len(table.Rows))
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	in := "a,b\n1,2\n\n\n3,4\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2 (blank lines skipped)", len(table.Rows))
	}
}

func TestRead_DropsBlankColumns(t *testing.T) {
	in := "a,,b\n1,,2\n3,,4\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(table.Header) != 2 {
		t.Fatalf("header = %v, want blank column dropped", table.Header)
	}
	if table.Header[0] != "a" || table.Header[1] != "b" {
		t.Errorf("header = %v", table.Header)
	}
	if table.Rows[0][1] != "2" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestRead_KeepsHeaderlessColumnWithValues(t *testing.T) {
	in := "a,\n1,x\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Header) != 2 {
		t.Errorf("column with values but no header should be kept: %v", table.Header)
	}
}

func TestRead_RaggedRowsPadded(t *testing.T) {
	in := "a,b,c\n1,2\n"
	table, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(table.Rows[0]) != 3 {
		t.Fatalf("row = %v, want padded to header width", table.Rows[0])
	}
	if table.Rows[0][2] != "" {
		t.Errorf("padded cell = %q, want empty", table.Rows[0][2])
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("Read of empty input should error")
	}
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  spaced  ", "spaced"},
		{"\ufeffbommed", "bommed"},
		{`="excel"`, "excel"},
		{"camelCase", "camelCase"},
	}

	for _, tt := range tests {
		if got := CleanHeader(tt.in); got != tt.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	table := &Table{Header: []string{"a", "b"}}
	idx := table.Index()
	if idx["a"] != 0 || idx["b"] != 1 {
		t.Errorf("Index() = %v", idx)
	}
}
