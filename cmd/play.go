package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiselevos/textquest_bot/internal/game"
	"github.com/kiselevos/textquest_bot/internal/snapshot"
)

// localSave - ключ сохранения для игры в терминале
const localSave game.ChannelID = 0

func newPlayCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play locally in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(),
				snapshot.NewFileStore(dir), game.CounterEngine{}, game.CBORCodec{})
		},
	}
	cmd.Flags().StringVar(&dir, "save-dir", "save_data", "directory for the local save file")
	return cmd
}

func play(ctx context.Context, in io.Reader, out io.Writer, store snapshot.Store, engine game.Engine, codec game.Codec) error {
	state := game.State{}

	data, err := store.Load(ctx, localSave)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
	case err != nil:
		fmt.Fprintf(out, "Couldn't read save file: %v\n", err)
	default:
		if state, err = codec.Decode(data); err != nil {
			fmt.Fprintf(out, "Couldn't parse save file: %v\n", err)
			state = game.State{}
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "$ ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimRight(scanner.Text(), "\r")

		var reply string
		state, reply = engine.Process(state, input)
		fmt.Fprintf(out, "%s\n\n", reply)

		data, err := codec.Encode(state)
		if err != nil {
			return fmt.Errorf("couldn't serialize game state: %w", err)
		}
		if err := store.Save(ctx, localSave, data); err != nil {
			return err
		}
	}
}
