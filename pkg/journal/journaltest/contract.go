package journaltest

import (
	"context"
	"errors"
	"testing"

	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
	"github.com/brewlog/brewlog-terminal/pkg/recipe"
)

// RunStoreSuite runs the behaviour every journal.Store must share. open must
// return an empty store; it is called once per subtest.
func RunStoreSuite(t *testing.T, open func(t *testing.T) journal.Store) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		s := open(t)
		l := MakeTestLog("log-1", "Kenya Nyeri", 0)
		if err := s.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Get(ctx, "log-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		AssertLogEqual(t, l, got)
	})

	t.Run("save assigns id", func(t *testing.T) {
		s := open(t)
		l := MakeTestLog("", "Kenya", 0)
		if err := s.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if l.ID == "" {
			t.Fatal("Save should assign an id")
		}
		if _, err := s.Get(ctx, l.ID); err != nil {
			t.Errorf("Get(%q) failed: %v", l.ID, err)
		}
	})

	t.Run("save duplicate", func(t *testing.T) {
		s := open(t)
		if err := s.Save(ctx, MakeTestLog("dup", "Kenya", 0)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		err := s.Save(ctx, MakeTestLog("dup", "Peru", 0))
		if !errors.Is(err, journal.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("empty recipe and unset scores", func(t *testing.T) {
		s := open(t)
		l := MakeTestLog("bare", "Kenya", 0)
		l.RecipeSteps = recipe.Steps{}
		l.Acidity = models.Score{}
		l.Body = models.Score{}
		l.Turbulence = models.TurbulenceNone
		if err := s.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Get(ctx, "bare")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.RecipeSteps == nil || len(got.RecipeSteps) != 0 {
			t.Errorf("expected empty non-nil steps, got %#v", got.RecipeSteps)
		}
		if !got.Acidity.IsZero() || !got.Body.IsZero() {
			t.Errorf("scores should stay unset, got %v/%v", got.Acidity, got.Body)
		}
		AssertLogEqual(t, l, got)
	})

	t.Run("no aliasing", func(t *testing.T) {
		s := open(t)
		l := MakeTestLog("alias", "Kenya", 0)
		if err := s.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		l.RecipeSteps[1].WaterAdded = 999

		first, err := s.Get(ctx, "alias")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		first.RecipeSteps[0].Phase = "changed"

		second, err := s.Get(ctx, "alias")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if second.RecipeSteps[1].WaterAdded != 100 || second.RecipeSteps[0].Phase != recipe.BloomPhase {
			t.Errorf("stored steps changed through a caller's copy: %+v", second.RecipeSteps)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		s := open(t)
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		s := open(t)
		l := MakeTestLog("upd", "Kenya", 0)
		if err := s.Save(ctx, l); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		l.Rating = 5
		l.Sweetness = models.NewScore(5)
		l.RecipeSteps = append(l.RecipeSteps, recipe.PourStep{Phase: recipe.PourPhase(3), Time: "2:15", WaterAdded: 40})
		recipe.Recompute(l.RecipeSteps)
		if err := s.Update(ctx, l); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, err := s.Get(ctx, "upd")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		AssertLogEqual(t, l, got)
		if got.RecipeSteps.Total() != 290 {
			t.Errorf("expected total 290, got %v", got.RecipeSteps.Total())
		}
	})

	t.Run("update missing", func(t *testing.T) {
		s := open(t)
		err := s.Update(ctx, MakeTestLog("ghost", "Kenya", 0))
		if !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := open(t)
		if err := s.Save(ctx, MakeTestLog("del", "Kenya", 0)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := s.Delete(ctx, "del"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := s.Get(ctx, "del"); !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := s.Delete(ctx, "del"); !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list empty", func(t *testing.T) {
		s := open(t)
		logs, err := s.List(ctx, journal.Query{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if logs == nil || len(logs) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", logs)
		}
		if _, err := s.Latest(ctx); !errors.Is(err, journal.ErrNotFound) {
			t.Errorf("Latest on empty journal: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list filters and order", func(t *testing.T) {
		s := open(t)
		for _, l := range []*models.Log{
			WithRating(MakeTestLog("a", "Ethiopia Guji", 3), 5, "V60"),
			WithRating(MakeTestLog("b", "Kenya Nyeri", 0), 3, "Chemex"),
			WithRating(MakeTestLog("c", "Ethiopia Sidamo", 1), 4, "chemex"),
			WithRating(MakeTestLog("d", "100% Geisha", 2), 2, "V60"),
		} {
			if err := s.Save(ctx, l); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
		}

		tests := []struct {
			name string
			q    journal.Query
			want []string
		}{
			{"all newest first", journal.Query{}, []string{"b", "c", "d", "a"}},
			{"min rating", journal.Query{MinRating: 4}, []string{"c", "a"}},
			{"method ignores case", journal.Query{Method: "CHEMEX"}, []string{"b", "c"}},
			{"origin substring", journal.Query{Origin: "ethiopia"}, []string{"c", "a"}},
			{"origin literal percent", journal.Query{Origin: "%"}, []string{"d"}},
			{"combined", journal.Query{Origin: "ethiopia", MinRating: 5}, []string{"a"}},
			{"nothing", journal.Query{Origin: "panama"}, nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				logs, err := s.List(ctx, tt.q)
				if err != nil {
					t.Fatalf("List failed: %v", err)
				}
				AssertIDs(t, logs, tt.want...)
			})
		}

		latest, err := s.Latest(ctx)
		if err != nil {
			t.Fatalf("Latest failed: %v", err)
		}
		if latest.ID != "b" {
			t.Errorf("expected latest b, got %s", latest.ID)
		}
	})

	t.Run("list folds non-ASCII case", func(t *testing.T) {
		s := open(t)
		for _, l := range []*models.Log{
			WithRating(MakeTestLog("peru", "PERÚ Cajamarca", 0), 4, "Café Filtre"),
			WithRating(MakeTestLog("kenya", "Kenya Nyeri", 1), 4, "V60"),
		} {
			if err := s.Save(ctx, l); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
		}

		tests := []struct {
			name string
			q    journal.Query
			want []string
		}{
			{"origin lower", journal.Query{Origin: "perú"}, []string{"peru"}},
			{"origin upper", journal.Query{Origin: "CAJAMARCA"}, []string{"peru"}},
			{"origin accent differs", journal.Query{Origin: "peru"}, nil},
			{"method", journal.Query{Method: "CAFÉ FILTRE"}, []string{"peru"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				logs, err := s.List(ctx, tt.q)
				if err != nil {
					t.Fatalf("List failed: %v", err)
				}
				AssertIDs(t, logs, tt.want...)
				for _, l := range logs {
					if !tt.q.Matches(l) {
						t.Errorf("store returned %s which the query does not match", l.ID)
					}
				}
			})
		}
	})

	t.Run("resolve prefix", func(t *testing.T) {
		s := open(t)
		for _, id := range []string{"abc-1", "abd-2"} {
			if err := s.Save(ctx, MakeTestLog(id, "Kenya", 0)); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
		}
		l, err := journal.Resolve(ctx, s, "abc")
		if err != nil || l.ID != "abc-1" {
			t.Errorf("Resolve(abc) = %v, %v", l, err)
		}
		if _, err := journal.Resolve(ctx, s, "ab"); !errors.Is(err, journal.ErrAmbiguousID) {
			t.Errorf("Resolve(ab): expected ErrAmbiguousID, got %v", err)
		}
	})
}
