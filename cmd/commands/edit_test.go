package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlog/brewlog-terminal/internal/cli"
	"github.com/brewlog/brewlog-terminal/pkg/files"
	"github.com/brewlog/brewlog-terminal/pkg/journal"
	"github.com/brewlog/brewlog-terminal/pkg/models"
)

func TestEditCommand_OnlyChangedFields(t *testing.T) {
	dir := setupJournal(t)
	original := brew("edit0001", "Kenya Nyeri", "V60", 3, 5)
	original.Notes = "bright"
	seed(t, dir, original)

	out, err := run(t, NewEditCommand(), "edit0001", "--rating", "5", "--sweetness", "4", "-o", "json")
	require.NoError(t, err)

	var l models.Log
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Equal(t, "edit0001", l.ID)
	assert.Equal(t, 5, l.Rating)
	sweetness, _ := l.Sweetness.Get()
	assert.Equal(t, 4, sweetness)
	assert.Equal(t, "Kenya Nyeri", l.Origin)
	assert.Equal(t, "bright", l.Notes)
	assert.Equal(t, original.RecipeSteps, l.RecipeSteps)
	assert.True(t, l.BrewedAt.Equal(original.BrewedAt), "editing keeps the brew date")
}

func TestEditCommand_ResizeRecipe(t *testing.T) {
	dir := setupJournal(t)
	seed(t, dir, brew("edit0001", "Kenya", "V60", 3, 0))

	_, err := run(t, NewEditCommand(), "edit0001", "--pours", "3", "--step", "3=2:30,40")
	require.NoError(t, err)

	store, err := files.NewStore(dir, nil)
	require.NoError(t, err)
	l, err := store.Get(context.Background(), "edit0001")
	require.NoError(t, err)

	require.Len(t, l.RecipeSteps, 4)
	assert.Equal(t, "Pour 3", l.RecipeSteps[3].Phase)
	assert.Equal(t, "2:30", l.RecipeSteps[3].Time)
	// existing steps survive the resize
	assert.Equal(t, 250.0, l.RecipeSteps[2].TotalWeight)
	assert.Equal(t, 290.0, l.RecipeSteps.Total())
}

func TestEditCommand_ShrinkRecipe(t *testing.T) {
	dir := setupJournal(t)
	seed(t, dir, brew("edit0001", "Kenya", "V60", 3, 0))

	_, err := run(t, NewEditCommand(), "edit0001", "--pours", "1")
	require.NoError(t, err)

	store, err := files.NewStore(dir, nil)
	require.NoError(t, err)
	l, err := store.Get(context.Background(), "edit0001")
	require.NoError(t, err)
	require.Len(t, l.RecipeSteps, 2)
	assert.Equal(t, 150.0, l.RecipeSteps.Total())
}

func TestEditCommand_NothingToChange(t *testing.T) {
	dir := setupJournal(t)
	seed(t, dir, brew("edit0001", "Kenya", "V60", 3, 0))

	_, err := run(t, NewEditCommand(), "edit0001", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestEditCommand_ClearScore(t *testing.T) {
	dir := setupJournal(t)
	l := brew("edit0001", "Kenya", "V60", 3, 0)
	l.Body = models.NewScore(2)
	seed(t, dir, l)

	out, err := run(t, NewEditCommand(), "edit0001", "--body", "0", "-o", "json")
	require.NoError(t, err)

	var got models.Log
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Body.IsZero())
}

func TestEditCommand_UnknownID(t *testing.T) {
	setupJournal(t)
	_, err := run(t, NewEditCommand(), "missing", "--rating", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		input     string
		confirm   bool
		wantGone  bool
		wantPrint string
	}{
		{name: "force", args: []string{"del00001", "--force"}, wantGone: true, wantPrint: "Deleted brew del00001"},
		{name: "global yes", args: []string{"del0"}, wantGone: true, wantPrint: "Deleted brew"},
		{name: "confirmed", args: []string{"del00001"}, input: "y\n", confirm: true, wantGone: true, wantPrint: "Permanently delete"},
		{name: "declined", args: []string{"del00001"}, input: "n\n", confirm: true, wantGone: false, wantPrint: "Deletion cancelled"},
		{name: "empty answer", args: []string{"del00001"}, input: "", confirm: true, wantGone: false, wantPrint: "Deletion cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupJournal(t)
			seed(t, dir, brew("del00001", "Kenya", "V60", 3, 0))
			if tt.confirm {
				cli.SetGlobalFlags(false, true, false)
			}

			out, err := runWithInput(t, tt.input, NewDeleteCommand(), tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantPrint)

			store, err := files.NewStore(dir, nil)
			require.NoError(t, err)
			_, err = store.Get(context.Background(), "del00001")
			if tt.wantGone {
				assert.ErrorIs(t, err, journal.ErrNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
