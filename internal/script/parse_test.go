package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

func TestParseRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Ref
		wantErr error
	}{
		{name: "position", in: "1", want: Ref{Position: 1}},
		{name: "multi digit position", in: "12", want: Ref{Position: 12}},
		{name: "surrounding space", in: " 3 ", want: Ref{Position: 3}},
		{name: "id", in: "#t4", want: Ref{ID: "t4"}},
		{name: "uuid id", in: "#0b8e2c1e-5d0c-4b8a-9c1f-1d2e3f4a5b6c", want: Ref{ID: "0b8e2c1e-5d0c-4b8a-9c1f-1d2e3f4a5b6c"}},
		{name: "empty", in: "", wantErr: ErrMissingArgument},
		{name: "zero", in: "0", wantErr: ErrInvalidRef},
		{name: "negative", in: "-1", wantErr: ErrInvalidRef},
		{name: "word", in: "first", wantErr: ErrInvalidRef},
		{name: "bare hash", in: "#", wantErr: ErrInvalidRef},
		{name: "mixed", in: "1a", wantErr: ErrInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRef(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRef_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2", Ref{Position: 2}.String())
	assert.Equal(t, "#t9", Ref{ID: "t9"}.String())
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Command
	}{
		{name: "add", in: "add Buy milk", want: Command{Line: 1, Verb: VerbAdd, Text: "Buy milk"}},
		{name: "add keeps inner spacing", in: "add  a  b ", want: Command{Line: 1, Verb: VerbAdd, Text: "a  b"}},
		{name: "add blank", in: "add", want: Command{Line: 1, Verb: VerbAdd}},
		{name: "tab separator", in: "add\tWalk dog", want: Command{Line: 1, Verb: VerbAdd, Text: "Walk dog"}},
		{name: "uppercase verb", in: "ADD x", want: Command{Line: 1, Verb: VerbAdd, Text: "x"}},
		{name: "toggle position", in: "toggle 2", want: Command{Line: 1, Verb: VerbToggle, Ref: Ref{Position: 2}}},
		{name: "delete id", in: "delete #t1", want: Command{Line: 1, Verb: VerbDelete, Ref: Ref{ID: "t1"}}},
		{name: "rm alias", in: "rm 1", want: Command{Line: 1, Verb: VerbDelete, Ref: Ref{Position: 1}}},
		{name: "clear", in: "clear", want: Command{Line: 1, Verb: VerbClear}},
		{name: "filter", in: "filter Active", want: Command{Line: 1, Verb: VerbFilter, Filter: store.FilterActive}},
		{name: "draft", in: "draft half typed", want: Command{Line: 1, Verb: VerbDraft, Text: "half typed"}},
		{name: "submit", in: "submit", want: Command{Line: 1, Verb: VerbSubmit}},
		{name: "view", in: "  view  ", want: Command{Line: 1, Verb: VerbView}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := ParseLine(1, tt.in)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_SkipsBlankAndComments(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "   ", "\t", "# a comment", "   # indented"} {
		_, ok, err := ParseLine(1, in)
		require.NoError(t, err, "input %q", in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseLine_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "unknown verb", in: "edit 1 new text", wantErr: ErrUnknownCommand},
		{name: "toggle without ref", in: "toggle", wantErr: ErrMissingArgument},
		{name: "toggle bad ref", in: "toggle first", wantErr: ErrInvalidRef},
		{name: "toggle two refs", in: "toggle 1 2", wantErr: ErrUnexpectedArgument},
		{name: "delete zero", in: "delete 0", wantErr: ErrInvalidRef},
		{name: "filter missing", in: "filter", wantErr: ErrMissingArgument},
		{name: "filter bad", in: "filter pending", wantErr: store.ErrInvalidFilter},
		{name: "clear with argument", in: "clear all", wantErr: ErrUnexpectedArgument},
		{name: "view with argument", in: "view now", wantErr: ErrUnexpectedArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok, err := ParseLine(7, tt.in)
			require.Error(t, err)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, 7, pe.Line)
			assert.Equal(t, tt.in, pe.Input)
			assert.True(t, strings.HasPrefix(err.Error(), "line 7: "), err.Error())
		})
	}
}

func TestParse_NumbersLinesIncludingSkipped(t *testing.T) {
	t.Parallel()

	src := "# setup\nadd Buy milk\n\nadd Walk dog\ntoggle 1\nview\n"
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 4)

	assert.Equal(t, []int{2, 4, 5, 6}, []int{cmds[0].Line, cmds[1].Line, cmds[2].Line, cmds[3].Line})
	assert.Equal(t, VerbToggle, cmds[2].Verb)
}

func TestParse_ReportsEveryBadLine(t *testing.T) {
	t.Parallel()

	src := "add ok\nfly away\ntoggle x\nview\n"
	cmds, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Nil(t, cmds)

	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorIs(t, err, ErrInvalidRef)
	assert.Contains(t, err.Error(), "line 2:")
	assert.Contains(t, err.Error(), "line 3:")
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()
	cmds, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Verb: VerbAdd, Text: "Buy milk"}, "add Buy milk"},
		{Command{Verb: VerbAdd}, "add"},
		{Command{Verb: VerbToggle, Ref: Ref{Position: 3}}, "toggle 3"},
		{Command{Verb: VerbDelete, Ref: Ref{ID: "t2"}}, "delete #t2"},
		{Command{Verb: VerbFilter, Filter: store.FilterDone}, "filter done"},
		{Command{Verb: VerbView}, "view"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.String())
	}
}
