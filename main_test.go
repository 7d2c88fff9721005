package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/config"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "wordsearch dev\n", run(t, "version"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := run(t, "generate", "--seed", "42", "--size", "12")
	b := run(t, "generate", "--seed", "42", "--size", "12")
	assert.Equal(t, a, b)

	lines := strings.Split(strings.TrimSpace(a), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "seed 42", lines[0])
	assert.Len(t, strings.Fields(lines[1]), 12)
}

func TestGenerateJSONSolution(t *testing.T) {
	out := run(t, "generate", "--seed", "7", "--size", "12", "--solution", "--json")

	var got struct {
		Seed     uint64      `json:"seed"`
		Grid     puzzle.Grid `json:"grid"`
		Words    []string    `json:"words"`
		Solution []struct {
			Word string `json:"word"`
			Row  int    `json:"row"`
			Col  int    `json:"col"`
		} `json:"solution"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 7, got.Seed)
	assert.Equal(t, 12, got.Grid.Size())
	require.Len(t, got.Solution, len(got.Words))
	for _, s := range got.Solution {
		_, cells, ok := puzzle.Locate(got.Grid, s.Word)
		require.True(t, ok, s.Word)
		assert.Equal(t, puzzle.Coord{Row: s.Row, Col: s.Col}, cells[0])
	}
}

func TestGenerateRejectsOversizedVocabulary(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "--seed", "1", "--size", "3"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, puzzle.ErrConfiguration)
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")

	assert.Contains(t, run(t, "config"), `port: "9191"`)

	path := filepath.Join(t.TempDir(), "out", "wordsearch.yaml")
	assert.Equal(t, "wrote "+path+"\n", run(t, "config", "--out", path))

	saved, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9191", saved.Server.Port)
	assert.Equal(t, 30*time.Minute, saved.Server.SessionIdle)
}
