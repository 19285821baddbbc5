package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStepFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    StepFlag
		wantErr string
	}{
		{in: "2=1:15,60", want: StepFlag{Index: 2, Time: "1:15", Water: "60", HasTime: true, HasWater: true}},
		{in: "0=,50", want: StepFlag{Index: 0, Water: "50", HasWater: true}},
		{in: "3=2:00", want: StepFlag{Index: 3, Time: "2:00", HasTime: true}},
		{in: " 1 = 0:30 , 42.5 ", want: StepFlag{Index: 1, Time: "0:30", Water: "42.5", HasTime: true, HasWater: true}},
		{in: "1=,-20", want: StepFlag{Index: 1, Water: "-20", HasWater: true}},
		{in: "1:30", wantErr: "expected index=time,water"},
		{in: "x=1:00", wantErr: "invalid step index"},
		{in: "-1=1:00", wantErr: "invalid step index"},
		{in: "1=,abc", wantErr: "invalid water amount"},
		{in: "1=", wantErr: "neither time nor water"},
		{in: "1=,", wantErr: "neither time nor water"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStepFlag(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRoast(t *testing.T) {
	got, err := ValidateRoast("dARK")
	require.NoError(t, err)
	assert.Equal(t, "Dark", got)

	_, err = ValidateRoast("espresso")
	assert.ErrorContains(t, err, "Light, Medium, Dark")
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, "French Press", NormalizeMethod(" french press "))
	assert.Equal(t, "V60", NormalizeMethod("v60"))
	assert.Equal(t, "Siphon", NormalizeMethod("Siphon"))
}

func TestValidateRatingAndScore(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		assert.NoError(t, ValidateRating(n))
		assert.NoError(t, ValidateScore("body", n))
	}
	for _, n := range []int{-1, 6} {
		assert.Error(t, ValidateRating(n))
		assert.ErrorContains(t, ValidateScore("body", n), "invalid body score")
	}
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml", "JSON"} {
		assert.NoError(t, ValidateOutputFormat(f), f)
	}
	assert.Error(t, ValidateOutputFormat("csv"))
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ValidateFilePath(filepath.Join(dir, "out.yaml")))
	assert.ErrorContains(t, ValidateFilePath(filepath.Join(dir, "missing", "out.yaml")), "does not exist")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Ethiopia", TruncateString("Ethiopia", 8))
	assert.Equal(t, "Ethio...", TruncateString("Ethiopia Guji", 8))
	assert.Equal(t, "Café...", TruncateString("Café de Olla", 7))
	assert.Equal(t, "Et", TruncateString("Ethiopia", 2))
}

func TestOutputResults(t *testing.T) {
	data := map[string]int{"count": 2}

	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "json", data))
	assert.JSONEq(t, `{"count": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "yaml", data))
	assert.Equal(t, "count: 2\n", buf.String())

	assert.Error(t, OutputResults(&buf, "xml", data))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableFormatter(&buf)
	table.Header("ID", "ORIGIN")
	table.Row("a1", "Kenya Nyeri")
	table.Row("b22", "Peru")
	table.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "--"))
	assert.Equal(t, strings.Index(lines[0], "ORIGIN"), strings.Index(lines[2], "Kenya"), "columns align")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty uses default no", "\n", false, false},
		{"empty uses default yes", "\n", true, true},
		{"eof uses default", "", true, true},
		{"no newline", "y", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			SetIO(strings.NewReader(tt.input), &out, &out)
			SetGlobalFlags(false, true, false)
			defer SetIO(nil, nil, nil)

			got, err := Confirm("Delete?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete?")
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	SetIO(nil, &out, &errOut)
	defer SetIO(nil, nil, nil)

	SetGlobalFlags(false, true, false)
	PrintSuccess("saved %d", 1)
	PrintWarning("careful")
	assert.Equal(t, "OK: saved 1\n", out.String())
	assert.Equal(t, "WARNING: careful\n", errOut.String())

	out.Reset()
	SetGlobalFlags(true, true, false)
	PrintInfo("hidden")
	assert.Empty(t, out.String())
	assert.True(t, Quiet())
	SetGlobalFlags(false, false, false)
}
