package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/persistence"
	"github.com/suderio/eels-and-escalators/internal/report"
	"github.com/suderio/eels-and-escalators/internal/sim"
)

// simulateCmd runs the Monte-Carlo simulation
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate many games and report rounds per game",
	Long: `Plays --games independent games on the board across --workers
goroutines and prints mean, median, min and max rounds per game.

When --history is set the run is appended to that JSONL file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		boardPath := viper.GetString("board")
		b, err := board.Load(boardPath)
		if err != nil {
			return err
		}

		cfg := sim.Config{
			Board:      b,
			Games:      viper.GetInt("games"),
			Players:    viper.GetInt("players"),
			Workers:    viper.GetInt("workers"),
			LegacyDice: viper.GetBool("legacy_dice"),
			Logger:     log.StandardLogger(),
		}
		if cfg.LegacyDice {
			log.Warn("legacy dice enabled: numeric die rolls 0..7 instead of 1..6")
		}

		if viper.GetBool("progress") {
			bar := progressbar.Default(int64(cfg.Games), "Simulating")
			defer bar.Close()
			cfg.OnRecord = func(uint64) { _ = bar.Add(1) }
		}

		d, err := sim.NewDistributor(cfg)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"games":   cfg.Games,
			"players": cfg.Players,
			"workers": d.Workers(),
			"tiles":   b.Len(),
		}).Info("starting simulation")

		agg := d.Run()
		summary, err := agg.Summarize()
		if errors.Is(err, sim.ErrNoResults) {
			return fmt.Errorf("simulation produced no results (%d faults)", len(agg.Faults()))
		} else if err != nil {
			return err
		}
		elapsed := time.Since(start)

		if err := report.Summary(cmd.OutOrStdout(), summary, elapsed); err != nil {
			return err
		}

		if path := viper.GetString("history"); path != "" {
			rec := persistence.NewRunRecord(start, elapsed, persistence.RunConfig{
				Board:      boardPath,
				Games:      cfg.Games,
				Players:    cfg.Players,
				Workers:    d.Workers(),
				LegacyDice: cfg.LegacyDice,
			}, summary)
			if err := appendHistory(path, rec); err != nil {
				return err
			}
			log.WithField("id", rec.ID).Info("run recorded")
		}
		return nil
	},
}

func appendHistory(path string, rec persistence.RunRecord) error {
	store, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Append(rec)
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntP("games", "n", 100000, "number of games to simulate")
	simulateCmd.Flags().IntP("players", "p", 3, "players per game")
	simulateCmd.Flags().IntP("workers", "w", 0, "parallel workers (default: number of CPUs)")
	simulateCmd.Flags().Bool("legacy-dice", false, "roll the numeric die with the legacy bit mask (0..7)")
	simulateCmd.Flags().Bool("progress", false, "show a progress bar")
	simulateCmd.Flags().String("history", "", "append the run to this JSONL file")

	_ = viper.BindPFlag("games", simulateCmd.Flags().Lookup("games"))
	_ = viper.BindPFlag("players", simulateCmd.Flags().Lookup("players"))
	_ = viper.BindPFlag("workers", simulateCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("legacy_dice", simulateCmd.Flags().Lookup("legacy-dice"))
	_ = viper.BindPFlag("progress", simulateCmd.Flags().Lookup("progress"))
	_ = viper.BindPFlag("history", simulateCmd.Flags().Lookup("history"))
}
