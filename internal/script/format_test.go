package script

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func sampleSnapshot() Snapshot {
	created := time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)
	return Snapshot{
		Line:    4,
		Command: "view",
		View: store.View{
			Tasks: []store.Task{
				{ID: "t2", Text: "Walk dog", CreatedAt: created},
				{ID: "t1", Text: "Buy milk", Done: true, CreatedAt: created},
			},
			Filter:         store.FilterAll,
			ActiveCount:    1,
			CompletedCount: 1,
			TotalCount:     2,
			Progress:       50,
		},
		Warnings: []string{"line 3: toggle: position 9 out of range (2 visible)"},
	}
}

func TestTextFormatter_Listing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Write(sampleSnapshot()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "== line 4: view ==", lines[0])
	assert.Equal(t, "[all] active done", lines[1])
	assert.Equal(t, "   1  [ ] Walk dog  (t2)", lines[2])
	assert.Equal(t, "   2  [x] Buy milk  (t1)", lines[3])
	assert.Equal(t, "1 remaining, 1 done, 50%", lines[4])
	assert.Equal(t, "! line 3: toggle: position 9 out of range (2 visible)", lines[5])
}

func TestTextFormatter_EmptyStateAndDraft(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	snap := Snapshot{
		Command: CommandEnd,
		View:    store.View{Filter: store.FilterDone},
		Draft:   "half",
	}
	require.NoError(t, NewTextFormatter(&buf).Write(snap))

	out := buf.String()
	assert.Contains(t, out, "== line 0: end ==")
	assert.Contains(t, out, "all active [done]")
	assert.Contains(t, out, EmptyListText)
	assert.Contains(t, out, "0 remaining, 0 done, 0%")
	assert.Contains(t, out, `draft: "half"`)
}

func TestJSONFormatter_OneObjectPerLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	require.NoError(t, f.Write(sampleSnapshot()))
	require.NoError(t, f.Write(Snapshot{Command: CommandEnd, View: store.View{Filter: store.FilterAll}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "view", first["command"])
	assert.EqualValues(t, 4, first["line"])
	view := first["view"].(map[string]any)
	assert.EqualValues(t, 50, view["progress"])
	assert.Len(t, view["tasks"], 2)
	assert.Len(t, first["warnings"], 1)

	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &last))
	assert.NotContains(t, last, "warnings")
	assert.Equal(t, []any{}, last["view"].(map[string]any)["tasks"])
}

func TestFormatters_SatisfyInterface(t *testing.T) {
	t.Parallel()
	var _ Formatter = NewTextFormatter(&bytes.Buffer{})
	var _ Formatter = NewJSONFormatter(&bytes.Buffer{})
}
