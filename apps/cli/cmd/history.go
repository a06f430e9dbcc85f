package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/core/config"
	"github.com/kuiper-sh/kuiper/packages/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently sent requests",
	Long: `Show requests recorded by run. Recording is enabled by setting
historyFile in kuiper.yaml or passing --history-file to run.

Examples:
  kuiper history
  kuiper history --limit 50`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

var (
	historyConfigFlag string
	historyPathFlag   string
	historyLimitFlag  int
)

func init() {
	historyCmd.Flags().StringVar(&historyConfigFlag, "config", getEnvString("KUIPER_CONFIG", ""), "Path to config file (env: KUIPER_CONFIG)")
	historyCmd.Flags().StringVar(&historyPathFlag, "history-file", "", "Path to the history database (overrides config)")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of entries to show")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(historyConfigFlag)
	if err != nil {
		return err
	}

	path := cfg.HistoryFile
	if historyPathFlag != "" {
		path = historyPathFlag
	}
	if path == "" {
		return fmt.Errorf("no history file configured: set historyFile in kuiper.yaml or pass --history-file")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no history yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d  %-6s %s  (%s)\n",
			e.SentAt.Local().Format(time.DateTime), e.Status, e.Method, e.URI,
			e.Duration.Round(time.Millisecond))
	}
	return nil
}
