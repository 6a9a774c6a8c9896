package search

import (
	"testing"
	"time"

	"github.com/your-org/sightline/internal/models"
)

func obsAt(id int64, date, tod string) models.Observation {
	return models.Observation{
		ID:        id,
		Date:      date,
		Time:      tod,
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEmptyQueryReturnsAllNewestFirst(t *testing.T) {
	records := []models.Observation{
		obsAt(1, "2024-01-01", "10:00"),
		obsAt(2, "2024-06-01", "09:00"),
		obsAt(3, "2024-03-10", "18:30"),
	}

	got := Search(records, &Query{})
	if len(got) != len(records) {
		t.Fatalf("Search(empty) returned %d records, want %d", len(got), len(records))
	}

	wantOrder := []int64{2, 3, 1}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("result[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestEqualScoreTieBreaksOnObservationTime(t *testing.T) {
	january := obsAt(1, "2024-01-01", "10:00")
	june := obsAt(2, "2024-06-01", "09:00")
	// createdAt deliberately inverted relative to the observation times: the
	// tie-break must use the record's own date/time, not createdAt.
	january.CreatedAt = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	june.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := Search([]models.Observation{january, june}, &Query{})
	if got[0].ID != 2 {
		t.Errorf("first result ID = %d, want the June observation (2)", got[0].ID)
	}
}

func TestCreatedAtFallbackWhenDateUnparseable(t *testing.T) {
	broken := obsAt(1, "not-a-date", "")
	broken.CreatedAt = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	ok := obsAt(2, "2024-05-01", "12:00")

	got := Search([]models.Observation{ok, broken}, &Query{})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("first result ID = %d, want 1 (createdAt 2024-08 beats date 2024-05)", got[0].ID)
	}
}

func TestTextScoreMonotonicity(t *testing.T) {
	oneHit := obsAt(1, "2024-01-01", "10:00")
	oneHit.Notes = "grey sedan"

	twoHits := obsAt(2, "2023-01-01", "10:00") // older, so only score can rank it first
	twoHits.Notes = "grey sedan"
	twoHits.Person.HairColor = "grey"

	got := Search([]models.Observation{oneHit, twoHits}, &Query{Text: "grey"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("record with 2 text hits should outrank record with 1, got ID %d first", got[0].ID)
	}
}

func TestPlateMatchOutranksAttributeMatch(t *testing.T) {
	plateHit := obsAt(1, "2023-01-01", "10:00")
	plateHit.Vehicle.LicensePlate = []string{"A", "B", "C", "1", "2", "3", "4"}

	attrHit := obsAt(2, "2024-01-01", "10:00")
	attrHit.Person.HairColor = "brown"

	q := &Query{
		LicensePlate: []string{"A", "B", "", "", "", "", ""},
		Person:       PersonQuery{HairColor: "brown"},
	}

	got := Search([]models.Observation{attrHit, plateHit}, q)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("2-slot plate match should outrank a single attribute match, got ID %d first", got[0].ID)
	}
}

func TestHeightRangeOverlapScenario(t *testing.T) {
	p1 := obsAt(1, "2024-01-05", "08:00")
	p1.Person.Height = "5ft8"
	p1.Person.Build = "medium"

	p2 := obsAt(2, "2024-01-06", "08:00")
	p2.Person.HeightMin = "5ft0"
	p2.Person.HeightMax = "5ft6"

	tooShort := obsAt(3, "2024-01-07", "08:00")
	tooShort.Person.Height = "4ft11"

	q := &Query{Person: PersonQuery{HeightMin: "5ft4", HeightMax: "6ft0"}}
	got := Search([]models.Observation{p1, p2, tooShort}, q)

	ids := map[int64]bool{}
	for _, o := range got {
		ids[o.ID] = true
	}
	if !ids[1] {
		t.Error("P1 (5'8\" within 5'4\"-6'0\") should match")
	}
	if !ids[2] {
		t.Error("P2 (5'0\"-5'6\" overlaps 5'4\"-6'0\") should match")
	}
	if ids[3] {
		t.Error("4'11\" record should be excluded")
	}
}

func TestUnknownHeightOptsOutOfFilter(t *testing.T) {
	variable := obsAt(1, "2024-01-05", "08:00")
	variable.Person.Height = "variable"

	q := &Query{Person: PersonQuery{HeightMin: "5ft4", HeightMax: "6ft0"}}
	got := Search([]models.Observation{variable}, q)
	if len(got) != 1 {
		t.Fatal("a record with indeterminate height should pass a height filter")
	}
	// But it earns no attribute bonus for it.
	if s := score(q, &variable); s != 0 {
		t.Errorf("score = %d, want 0 for a permissive height pass", s)
	}
}

func TestFiltersCombineWithAND(t *testing.T) {
	obs := obsAt(1, "2024-03-01", "12:00")
	obs.Person.HairColor = "brown"
	obs.Notes = "by the river"

	// Text matches, date excludes.
	q := &Query{Text: "river", DateFrom: "2024-04-01"}
	if len(Search([]models.Observation{obs}, q)) != 0 {
		t.Error("record outside the date range must be excluded even with a text hit")
	}

	// Both categories match.
	q = &Query{Text: "river", DateFrom: "2024-02-01", DateTo: "2024-03-31"}
	got := Search([]models.Observation{obs}, q)
	if len(got) != 1 {
		t.Fatal("record matching every active category should survive")
	}
	// One text hit + date bonus.
	if s := score(q, &obs); s != textHitWeight+dateWeight {
		t.Errorf("score = %d, want %d", s, textHitWeight+dateWeight)
	}
}

func TestSearchDoesNotMutateSnapshot(t *testing.T) {
	records := []models.Observation{
		obsAt(1, "2024-01-01", "10:00"),
		obsAt(2, "2024-06-01", "09:00"),
	}
	_ = Search(records, &Query{})
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Error("input snapshot order must be left untouched")
	}
}
