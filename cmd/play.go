package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
	"github.com/suderio/eels-and-escalators/internal/engine"
	"github.com/suderio/eels-and-escalators/internal/report"
)

var playSeed uint64

// playCmd traces a single game turn by turn
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single game and print every turn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := board.Load(viper.GetString("board"))
		if err != nil {
			return err
		}

		players, _ := cmd.Flags().GetInt("players")
		legacy, _ := cmd.Flags().GetBool("legacy-dice")
		var opts []dice.Option
		if legacy {
			opts = append(opts, dice.WithLegacyMask())
		}

		seed := playSeed
		if seed == 0 {
			seed = rand.Uint64()
		}
		g, err := engine.NewGame(b, players, rand.New(rand.NewPCG(seed, seed)), opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var writeErr error
		g.OnTurn = func(ev engine.TurnEvent) {
			if writeErr == nil {
				writeErr = report.Turn(out, ev)
			}
		}
		rounds := g.Run()
		if writeErr != nil {
			return writeErr
		}

		fmt.Fprintf(out, "player %d won after %d rounds (seed %d)\n", g.Winner()+1, rounds, seed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntP("players", "p", 3, "players in the game")
	playCmd.Flags().Bool("legacy-dice", false, "roll the numeric die with the legacy bit mask (0..7)")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "random seed (0 picks one)")
}
