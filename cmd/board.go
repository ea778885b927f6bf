package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/report"
)

// boardCmd groups board inspection commands
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect and convert board files",
}

var boardShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Render a board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := board.Load(boardArg(args))
		if err != nil {
			return err
		}
		perRow, _ := cmd.Flags().GetInt("per-row")
		return report.Board(cmd.OutOrStdout(), b, perRow)
	},
}

var boardValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a board file loads and every destination is on the board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := boardArg(args)
		b, err := board.Load(path)
		if err != nil {
			return err
		}
		if path == "" {
			path = "(default)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d tiles, %d eels, %d escalators\n",
			path, b.Len(), b.Count(board.Eel), b.Count(board.Escalator))
		return nil
	},
}

var boardExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Print a board as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := board.Load(boardArg(args))
		if err != nil {
			return err
		}
		return board.WriteYAML(cmd.OutOrStdout(), b)
	},
}

// boardArg prefers the positional file over the --board flag.
func boardArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return viper.GetString("board")
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardShowCmd, boardValidateCmd, boardExportCmd)

	boardShowCmd.Flags().Int("per-row", 10, "tiles per line")
}
