package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/core/config"
	"github.com/kuiper-sh/kuiper/packages/core/locator"
)

var listCmd = &cobra.Command{
	Use:   "list [term]",
	Short: "List request definitions under the root",
	Long: `List every .kuiper file under the request root, optionally narrowed to
paths containing a search term.

Examples:
  kuiper list
  kuiper list get_user
  kuiper list users --root ./requests`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

var (
	listConfigFlag string
	listRootFlag   string
)

func init() {
	listCmd.Flags().StringVar(&listConfigFlag, "config", getEnvString("KUIPER_CONFIG", ""), "Path to config file (env: KUIPER_CONFIG)")
	listCmd.Flags().StringVar(&listRootFlag, "root", getEnvString("KUIPER_ROOT", ""), "Request root directory (env: KUIPER_ROOT)")
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(listConfigFlag)
	if err != nil {
		return err
	}

	root := cfg.GetRoot()
	if listRootFlag != "" {
		root = listRootFlag
	}

	term := ""
	if len(args) == 1 {
		term = args[0]
	}

	matches, err := locator.New(root).Search(term)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no request definitions found")
		return nil
	}
	for _, match := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), match)
	}
	return nil
}
