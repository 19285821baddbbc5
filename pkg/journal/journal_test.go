package journal_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/journal/journaltest"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

func TestQueryMatches(t *testing.T) {
	l := journaltest.WithRating(journaltest.MakeTestLog("a", "Ethiopia Guji", 0), 4, "Chemex")

	tests := []struct {
		name string
		q    journal.Query
		want bool
	}{
		{"zero query", journal.Query{}, true},
		{"rating met", journal.Query{MinRating: 4}, true},
		{"rating missed", journal.Query{MinRating: 5}, false},
		{"method case", journal.Query{Method: "chemex"}, true},
		{"method other", journal.Query{Method: "V60"}, false},
		{"method is not a substring match", journal.Query{Method: "Chem"}, false},
		{"origin substring", journal.Query{Origin: "GUJI"}, true},
		{"origin missing", journal.Query{Origin: "Kenya"}, false},
		{"all", journal.Query{MinRating: 3, Method: "CHEMEX", Origin: "ethiopia"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Matches(l))
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	same := journaltest.BaseTime
	logs := []*models.Log{
		{ID: "old", BrewedAt: same.Add(-48 * time.Hour)},
		{ID: "tie-b", BrewedAt: same},
		{ID: "new", BrewedAt: same.Add(time.Hour)},
		{ID: "tie-a", BrewedAt: same},
	}

	journal.SortNewestFirst(logs)
	journaltest.AssertIDs(t, logs, "new", "tie-a", "tie-b", "old")
}

func TestNewID(t *testing.T) {
	a, b := journal.NewID(), journal.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
