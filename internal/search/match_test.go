package search

import (
	"testing"

	"github.com/your-org/sightline/internal/models"
)

func TestPlateMatches(t *testing.T) {
	record := []string{"A", "B", "C", "D", "E", "F", "G"}

	tests := []struct {
		name   string
		query  []string
		record []string
		want   bool
	}{
		{"single known slot hit", []string{"", "", "C", "", "", "", ""}, record, true},
		{"single known slot miss", []string{"", "", "X", "", "", "", ""}, record, false},
		{"all wildcards", []string{"", "", "", "", "", "", ""}, record, true},
		{"full plate hit", []string{"A", "B", "C", "D", "E", "F", "G"}, record, true},
		{"one of several wrong", []string{"A", "B", "X", "", "", "", ""}, record, false},
		{"record without plate passes", []string{"A", "", "", "", "", "", ""}, nil, true},
		{"unknown record slot passes", []string{"A", "B", "C", "", "", "", ""},
			[]string{"A", "B", "", "", "", "", ""}, true},
		{"known record slot still excludes", []string{"A", "X", "C", "", "", "", ""},
			[]string{"A", "B", "", "", "", "", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plateMatches(tt.query, tt.record); got != tt.want {
				t.Errorf("plateMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A record with an attribute left unset matches any query value for it. This
// is the intentional recall-favoring policy, not an accident: partially
// filled records stay findable and the score keeps real matches on top.
func TestMissingFieldIsPermissive(t *testing.T) {
	noHair := models.Observation{Date: "2024-03-01", Time: "12:00"}
	brown := models.Observation{Date: "2024-03-01", Time: "12:00"}
	brown.Person.HairColor = "brown"
	black := models.Observation{Date: "2024-03-01", Time: "12:00"}
	black.Person.HairColor = "black"

	q := &Query{Person: PersonQuery{HairColor: "brown"}}

	if !matches(q, &noHair) {
		t.Error("record with no hairColor should match any hairColor query")
	}
	if !matches(q, &brown) {
		t.Error("exact hairColor match should pass")
	}
	if matches(q, &black) {
		t.Error("conflicting hairColor should be excluded")
	}

	// The permissive pass earns no attribute bonus.
	if s := score(q, &noHair); s != 0 {
		t.Errorf("permissive pass score = %d, want 0", s)
	}
	if s := score(q, &brown); s != attributeWeight {
		t.Errorf("exact match score = %d, want %d", s, attributeWeight)
	}
}

func TestBuildMatchesEitherHalf(t *testing.T) {
	legacy := models.Observation{}
	legacy.Person.Build = "medium-heavy"

	explicit := models.Observation{}
	explicit.Person.BuildPrimary = "medium"
	explicit.Person.BuildSecondary = "heavy"

	slim := models.Observation{}
	slim.Person.BuildPrimary = "slim"

	for _, term := range []string{"medium", "heavy"} {
		q := &Query{Person: PersonQuery{BuildPrimary: term}}
		if !matches(q, &legacy) {
			t.Errorf("legacy build %q should match query %q", legacy.Person.Build, term)
		}
		if !matches(q, &explicit) {
			t.Errorf("explicit build pair should match query %q", term)
		}
		if matches(q, &slim) {
			t.Errorf("build %q should not match query %q", slim.Person.BuildPrimary, term)
		}
	}

	// A buildSecondary query term also matches against either half.
	q := &Query{Person: PersonQuery{BuildSecondary: "medium"}}
	if !matches(q, &legacy) {
		t.Error("buildSecondary query should match the legacy primary half")
	}
}

func TestTextMatching(t *testing.T) {
	obs := models.Observation{
		Date:  "2024-02-10",
		Notes: "Seen near the OLD MILL at dusk",
	}
	obs.Person.FirstName = "Miller"
	obs.Vehicle.Make = "Ford"
	obs.Vehicle.AdditionalLocations = []string{"mill road car park"}
	obs.Images = []models.Image{{
		Description: "parked outside",
		Metadata:    &models.ImageMetadata{City: "Millbrook"},
	}}

	tests := []struct {
		term string
		hits int
	}{
		{"mill", 4}, // notes, first name, location entry, image city
		{"MILL", 4}, // case-insensitive
		{"ford", 1},
		{"parked", 1},
		{"nowhere", 0},
	}
	for _, tt := range tests {
		if got := countTextHits(tt.term, &obs); got != tt.hits {
			t.Errorf("countTextHits(%q) = %d, want %d", tt.term, got, tt.hits)
		}
	}

	if matches(&Query{Text: "nowhere"}, &obs) {
		t.Error("record without any text hit should fail an active text filter")
	}
	if !matches(&Query{Text: "mill"}, &obs) {
		t.Error("any single substring hit should qualify the record")
	}
}

// A partially transcribed plate behaves like any other partially filled
// record: unknown slots never exclude, and only the slots that actually
// matched feed the score.
func TestPartiallyKnownPlate(t *testing.T) {
	partial := models.Observation{ID: 1, Date: "2024-03-01"}
	partial.Vehicle.LicensePlate = []string{"A", "B", "", "", "", "", ""}

	q := &Query{LicensePlate: []string{"A", "B", "C", "", "", "", ""}}

	if !matches(q, &partial) {
		t.Error("unknown plate slots should not exclude the record")
	}
	if got := matchedPlateSlots(q.LicensePlate, partial.Vehicle.LicensePlate); got != 2 {
		t.Errorf("matchedPlateSlots = %d, want 2 (unknown slots earn nothing)", got)
	}

	results := Search([]models.Observation{partial}, q)
	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
}

func TestPlateJoinedStringIsTextSearchable(t *testing.T) {
	obs := models.Observation{}
	obs.Vehicle.LicensePlate = []string{"A", "B", "C", "1", "2", "3", "4"}

	if got := countTextHits("bc12", &obs); got != 1 {
		t.Errorf("countTextHits over joined plate = %d, want 1", got)
	}
}

func TestDateMatches(t *testing.T) {
	tests := []struct {
		from, to, date string
		want           bool
	}{
		{"", "", "2024-01-01", true},
		{"2024-01-01", "", "2024-01-01", true}, // inclusive lower bound
		{"", "2024-01-01", "2024-01-01", true}, // inclusive upper bound
		{"2024-01-02", "", "2024-01-01", false},
		{"", "2023-12-31", "2024-01-01", false},
		{"2024-01-01", "2024-06-30", "2024-03-15", true},
	}
	for _, tt := range tests {
		if got := dateMatches(tt.from, tt.to, tt.date); got != tt.want {
			t.Errorf("dateMatches(%q, %q, %q) = %v, want %v",
				tt.from, tt.to, tt.date, got, tt.want)
		}
	}
}

func TestYearRangeFilter(t *testing.T) {
	legacy := models.Observation{}
	legacy.Vehicle.Year = "2015-2020"

	explicit := models.Observation{}
	explicit.Vehicle.YearMin = 2008
	explicit.Vehicle.YearMax = 2010

	q := &Query{Vehicle: VehicleQuery{YearMin: 2018, YearMax: 2022}}
	if !matches(q, &legacy) {
		t.Error("legacy year range 2015-2020 should overlap query 2018-2022")
	}
	if matches(q, &explicit) {
		t.Error("year range 2008-2010 should not overlap query 2018-2022")
	}
}
