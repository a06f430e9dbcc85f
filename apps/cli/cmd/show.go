package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/core/config"
	"github.com/kuiper-sh/kuiper/packages/core/resolver"
	"github.com/kuiper-sh/kuiper/packages/env"
	"github.com/kuiper-sh/kuiper/packages/logging"
	"github.com/kuiper-sh/kuiper/packages/output"
)

var showCmd = &cobra.Command{
	Use:   "show <path|term>",
	Short: "Resolve a request definition and print it without sending",
	Long: `Resolve a request definition file and print the final request: merged
headers, interpolated URI, params and body. Nothing is sent; use this to
inspect what run would put on the wire.

Examples:
  kuiper show api/users/get_user.kuiper
  kuiper show get_user --env-file .env.staging`,
	Args: cobra.ExactArgs(1),
	RunE: showCommand,
}

var (
	showEnvFileFlag string
	showConfigFlag  string
	showRootFlag    string
	showNoColorFlag bool
)

func init() {
	showCmd.Flags().StringVar(&showEnvFileFlag, "env-file", getEnvString("KUIPER_ENV_FILE", ""), "Path to .env file loaded before interpolation (env: KUIPER_ENV_FILE)")
	showCmd.Flags().StringVar(&showConfigFlag, "config", getEnvString("KUIPER_CONFIG", ""), "Path to config file (env: KUIPER_CONFIG)")
	showCmd.Flags().StringVar(&showRootFlag, "root", getEnvString("KUIPER_ROOT", ""), "Request root directory (env: KUIPER_ROOT)")
	showCmd.Flags().BoolVar(&showNoColorFlag, "no-color", getEnvBool("KUIPER_NO_COLOR", false), "Disable colored output (env: KUIPER_NO_COLOR)")
}

func showCommand(cmd *cobra.Command, args []string) error {
	log := logging.Init()
	defer func() { _ = logging.Close() }()

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithNoColor(showNoColorFlag),
	)

	if showEnvFileFlag != "" {
		if err := env.LoadDotEnv(showEnvFileFlag); err != nil {
			formatter.FormatError(err)
			return err
		}
	}

	cfg, err := config.LoadConfig(showConfigFlag)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	root := cfg.GetRoot()
	if showRootFlag != "" {
		root = showRootFlag
	}

	res := resolver.New(root, env.OS(),
		resolver.WithHeaderFile(cfg.GetHeaderFile()),
		resolver.WithInterpolateParams(cfg.GetInterpolateParams()),
		resolver.WithLogger(log),
	)

	def, err := res.Find(args[0])
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	formatter.FormatRequest(def)
	return nil
}
