package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	intconfig "github.com/tably-labs/tably/internal/config"
	"github.com/tably-labs/tably/internal/engine"
	"github.com/tably-labs/tably/pkg/frame"
)

func TestSplitStatement(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantWords []string
		wantKw    map[string]string
		wantErr   bool
	}{
		{
			name:      "positional only",
			line:      "show wdi",
			wantWords: []string{"show", "wdi"},
			wantKw:    map[string]string{},
		},
		{
			name:      "keywords trailing",
			line:      "merge wdi sq_miles on country how outer",
			wantWords: []string{"merge", "wdi", "sq_miles"},
			wantKw:    map[string]string{"on": "country", "how": "outer"},
		},
		{
			name:      "keyword case insensitive",
			line:      "concat a b AXIS columns",
			wantWords: []string{"concat", "a", "b"},
			wantKw:    map[string]string{"axis": "columns"},
		},
		{
			name:    "dangling keyword",
			line:    "merge a b on",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, kwargs, err := splitStatement(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, words)
			assert.Equal(t, tt.wantKw, kwargs)
		})
	}
}

func testSession(t *testing.T) (*replSession, *cobra.Command, *bytes.Buffer) {
	t.Helper()

	cfg := &intconfig.Config{}
	intconfig.ApplyDefaults(cfg)
	e := engine.New(engine.Config{})

	left, err := frame.New(frame.RangeIndex(),
		frame.Col("country", frame.Str("US"), frame.Str("FR")),
		frame.Col("pop", frame.Int(331), frame.Int(68)),
	)
	require.NoError(t, err)
	right, err := frame.New(frame.RangeIndex(),
		frame.Col("country", frame.Str("US"), frame.Str("DE")),
		frame.Col("area", frame.Int(3797), frame.Int(138)),
	)
	require.NoError(t, err)

	e.Put("wdi", left)
	e.Put("sq_miles", right)

	session := &replSession{
		cc:     &commandContext{Cfg: cfg, Logger: slog.New(slog.DiscardHandler)},
		engine: e,
	}

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return session, cmd, buf
}

func TestReplEvalShow(t *testing.T) {
	session, cmd, buf := testSession(t)

	require.NoError(t, session.eval(cmd, "show wdi"))
	out := buf.String()
	assert.Contains(t, out, "US")
	assert.Contains(t, out, "(2 rows)")
}

func TestReplEvalShowHead(t *testing.T) {
	session, cmd, buf := testSession(t)

	require.NoError(t, session.eval(cmd, "show wdi 1"))
	assert.Contains(t, buf.String(), "(1 rows)")
}

func TestReplEvalMerge(t *testing.T) {
	session, cmd, buf := testSession(t)

	require.NoError(t, session.eval(cmd, "merge wdi sq_miles on country"))
	out := buf.String()
	assert.Contains(t, out, "US")
	assert.NotContains(t, out, "FR") // inner merge drops the unmatched row
	assert.Contains(t, out, "(1 rows)")
}

func TestReplEvalMergeOuter(t *testing.T) {
	session, cmd, buf := testSession(t)

	require.NoError(t, session.eval(cmd, "merge wdi sq_miles on country how outer"))
	out := buf.String()
	assert.Contains(t, out, "FR")
	assert.Contains(t, out, "DE")
	assert.Contains(t, out, "(3 rows)")
}

func TestReplEvalConcat(t *testing.T) {
	session, cmd, buf := testSession(t)

	require.NoError(t, session.eval(cmd, "concat wdi sq_miles"))
	assert.Contains(t, buf.String(), "(4 rows)")
}

func TestReplEvalErrors(t *testing.T) {
	session, cmd, _ := testSession(t)

	assert.Error(t, session.eval(cmd, "show missing_dataset"))
	assert.Error(t, session.eval(cmd, "merge wdi"))
	assert.Error(t, session.eval(cmd, "merge wdi sq_miles how sideways"))
	assert.Error(t, session.eval(cmd, "explode wdi"))
}

func TestReplEvalDrop(t *testing.T) {
	session, cmd, _ := testSession(t)

	require.NoError(t, session.eval(cmd, "drop wdi"))
	assert.Error(t, session.eval(cmd, "show wdi"))
}

func TestReplDotCommands(t *testing.T) {
	session, cmd, buf := testSession(t)

	assert.True(t, session.handleDotCommand(cmd, ".datasets"))
	assert.Contains(t, buf.String(), "sq_miles")

	buf.Reset()
	assert.True(t, session.handleDotCommand(cmd, ".schema wdi"))
	out := buf.String()
	assert.Contains(t, out, "country")
	assert.Contains(t, out, "string")

	buf.Reset()
	assert.True(t, session.handleDotCommand(cmd, ".help"))
	assert.Contains(t, buf.String(), "merge")

	assert.True(t, session.handleDotCommand(cmd, ".quit"))
}
