package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiselevos/textquest_bot/internal/game"
	"github.com/kiselevos/textquest_bot/internal/snapshot"
)

func TestPlay_PersistsBetweenRuns(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, play(ctx, strings.NewReader("look\ngo north\n"), &out, store, game.CounterEngine{}, game.CBORCodec{}))
	assert.Equal(t, "$ 1\n\n$ 2\n\n$ ", out.String())

	out.Reset()
	require.NoError(t, play(ctx, strings.NewReader("look\n"), &out, store, game.CounterEngine{}, game.CBORCodec{}))
	assert.Equal(t, "$ 3\n\n$ ", out.String())
}

func TestPlay_CorruptSaveStartsOver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.data"), []byte{0xff}, 0o644))

	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("look\n"), &out,
		snapshot.NewFileStore(dir), game.CounterEngine{}, game.CBORCodec{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Couldn't parse save file")
	assert.True(t, strings.HasSuffix(out.String(), "$ 1\n\n$ "))
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "play", "migrate"}, names)
}
