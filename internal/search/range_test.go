package search

import "testing"

func TestParseHeight(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5ft10", 70},
		{"5ft0", 60},
		{"6ft8", 80},
		{"4ft11", 59},
		{"under4ft10", 57},
		{"over6ft8", 80},
		{"", Unknown},
		{"unknown", Unknown},
		{"placeholder", Unknown},
		{"variable", Unknown},
		{"tall", Unknown},
		{"5feet10", Unknown},
		{"ft10", Unknown},
	}
	for _, tt := range tests {
		if got := ParseHeight(tt.in); got != tt.want {
			t.Errorf("ParseHeight(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseHeightRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"5ft2-6ft0", Range{62, 72}},
		{"4ft10-5ft2", Range{58, 62}},
		{"5ft10", Range{70, 70}},
		{"under4ft10", Range{57, 57}},
		{"over6ft8", Range{80, 80}},
		{"unknown", Range{Unknown, Unknown}},
		{"variable", Range{Unknown, Unknown}},
		{"", Range{Unknown, Unknown}},
		{"6ft0-5ft2", Range{62, 72}}, // inverted bounds are normalized
	}
	for _, tt := range tests {
		if got := ParseHeightRange(tt.in); got != tt.want {
			t.Errorf("ParseHeightRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"2015-2020", Range{2015, 2020}},
		{"2018", Range{2018, 2018}},
		{" 2018", Range{2018, 2018}},
		{"unknown", Range{Unknown, Unknown}},
		{"", Range{Unknown, Unknown}},
		{"198x", Range{Unknown, Unknown}},
	}
	for _, tt := range tests {
		if got := ParseYearRange(tt.in); got != tt.want {
			t.Errorf("ParseYearRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", Range{1, 5}, Range{1, 5}, true},
		{"contained", Range{1, 10}, Range{3, 4}, true},
		{"touching at endpoint", Range{1, 5}, Range{5, 9}, true},
		{"single shared point", Range{5, 5}, Range{5, 5}, true},
		{"disjoint below", Range{1, 2}, Range{3, 4}, false},
		{"disjoint above", Range{10, 12}, Range{3, 4}, false},
		{"partial overlap", Range{60, 66}, Range{64, 72}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestQueryRangeDefaults(t *testing.T) {
	r := queryRange(Unknown, Unknown)
	if r.Min != 0 {
		t.Errorf("unbounded query min = %d, want 0", r.Min)
	}
	if !r.Overlaps(Range{1900, 2100}) {
		t.Error("unbounded query range should overlap everything")
	}

	r = queryRange(64, Unknown)
	if r.Overlaps(Range{60, 63}) {
		t.Error("min-only query should exclude ranges entirely below it")
	}
	if !r.Overlaps(Range{60, 64}) {
		t.Error("min-only query should include ranges reaching it")
	}
}
