package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/eels-and-escalators/internal/persistence"
	"github.com/suderio/eels-and-escalators/internal/report"
)

// historyCmd lists runs recorded by simulate --history
var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "List previously recorded simulation runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("history")
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.New("no history file: pass one or set history in the config")
		}

		store, err := persistence.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Load()
		if err != nil {
			return err
		}
		return report.History(cmd.OutOrStdout(), records)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
