package search

import (
	"sort"
	"time"

	"github.com/your-org/sightline/internal/models"
)

// Search filters a snapshot of observations against q and returns the
// survivors ordered by relevance: score descending, then the observation's
// own date+time descending (most recent sighting first), then id descending.
// An empty query returns every record ordered purely by recency.
//
// The snapshot is read-only; results alias the input slice's elements.
func Search(records []models.Observation, q *Query) []models.Observation {
	type ranked struct {
		obs   *models.Observation
		score int
		when  time.Time
	}

	hits := make([]ranked, 0, len(records))
	for i := range records {
		o := &records[i]
		if !matches(q, o) {
			continue
		}
		hits = append(hits, ranked{
			obs:   o,
			score: score(q, o),
			when:  observedAt(o),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if !hits[i].when.Equal(hits[j].when) {
			return hits[i].when.After(hits[j].when)
		}
		return hits[i].obs.ID > hits[j].obs.ID
	})

	out := make([]models.Observation, len(hits))
	for i, h := range hits {
		out[i] = *h.obs
	}
	return out
}

// observedAt resolves the record's own date/time for ordering; createdAt is
// only a fallback when those fields cannot be parsed.
func observedAt(o *models.Observation) time.Time {
	if t, err := time.Parse("2006-01-02 15:04", o.Date+" "+o.Time); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", o.Date); err == nil {
		return t
	}
	return o.CreatedAt
}
