package listing

import (
	"testing"
	"time"
)

func numericValue(t *testing.T, s string) (float64, bool) {
	t.Helper()
	n := ToPgNumeric(s)
	if !n.Valid {
		return 0, false
	}
	f, err := n.Float64Value()
	if err != nil {
		t.Fatalf("Float64Value(%q): %v", s, err)
	}
	return f.Float64, true
}

func TestToPgText(t *testing.T) {
	if v := ToPgText("hello"); !v.Valid || v.String != "hello" {
		t.Errorf("ToPgText(hello) = %+v", v)
	}
	if v := ToPgText("  padded  "); !v.Valid || v.String != "padded" {
		t.Errorf("ToPgText should trim, got %+v", v)
	}
	for _, in := range []string{"", "   ", "\t"} {
		if v := ToPgText(in); v.Valid {
			t.Errorf("ToPgText(%q) should be NULL", in)
		}
	}
}

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"123.45", 123.45, true},
		{"$1,250,000", 1250000, true},
		{"-42", -42, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12.34.56", 0, false},
	}

	for _, tt := range tests {
		got, valid := numericValue(t, tt.in)
		if valid != tt.valid {
			t.Errorf("ToPgNumeric(%q).Valid = %v, want %v", tt.in, valid, tt.valid)
			continue
		}
		if valid && got != tt.want {
			t.Errorf("ToPgNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToPgInt8(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		valid bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{"1,200", 1200, true},
		{"3.5", 0, false},
		{"", 0, false},
		{"many", 0, false},
	}

	for _, tt := range tests {
		got := ToPgInt8(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgInt8(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if got.Valid && got.Int64 != tt.want {
			t.Errorf("ToPgInt8(%q) = %d, want %d", tt.in, got.Int64, tt.want)
		}
	}
}

func TestToPgDate(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Time
		valid bool
	}{
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-15 10:30:00", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"6/15/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"Jun 15, 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got := ToPgDate(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgDate(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if got.Valid && !got.Time.Equal(tt.want) {
			t.Errorf("ToPgDate(%q) = %v, want %v", tt.in, got.Time, tt.want)
		}
	}
}
