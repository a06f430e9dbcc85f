package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/bench"
	"github.com/kuiper-sh/kuiper/packages/core/config"
	"github.com/kuiper-sh/kuiper/packages/core/resolver"
	"github.com/kuiper-sh/kuiper/packages/env"
	kuiperhttp "github.com/kuiper-sh/kuiper/packages/http"
	"github.com/kuiper-sh/kuiper/packages/logging"
	"github.com/kuiper-sh/kuiper/packages/output"
)

var benchCmd = &cobra.Command{
	Use:   "bench <path|term>",
	Short: "Send a request repeatedly and report latency percentiles",
	Long: `Resolve a request definition once, send it repeatedly and report
latency percentiles. The definition is resolved a single time, so every
iteration sends identical values (including expr placeholders).

Examples:
  kuiper bench get_user -n 200 -c 8
  kuiper bench get_user -n 1000 --rate 50`,
	Args: cobra.ExactArgs(1),
	RunE: benchCommand,
}

var (
	benchEnvFileFlag  string
	benchConfigFlag   string
	benchRootFlag     string
	benchRequestsFlag int
	benchConcFlag     int
	benchRateFlag     float64
	benchTimeoutFlag  string
)

func init() {
	benchCmd.Flags().StringVar(&benchEnvFileFlag, "env-file", getEnvString("KUIPER_ENV_FILE", ""), "Path to .env file loaded before interpolation (env: KUIPER_ENV_FILE)")
	benchCmd.Flags().StringVar(&benchConfigFlag, "config", getEnvString("KUIPER_CONFIG", ""), "Path to config file (env: KUIPER_CONFIG)")
	benchCmd.Flags().StringVar(&benchRootFlag, "root", getEnvString("KUIPER_ROOT", ""), "Request root directory (env: KUIPER_ROOT)")
	benchCmd.Flags().IntVarP(&benchRequestsFlag, "requests", "n", 100, "Total number of requests to send")
	benchCmd.Flags().IntVarP(&benchConcFlag, "concurrency", "c", 1, "Number of concurrent senders")
	benchCmd.Flags().Float64Var(&benchRateFlag, "rate", 0, "Request rate limit per second (0 = unlimited)")
	benchCmd.Flags().StringVar(&benchTimeoutFlag, "timeout", "", "Per-request HTTP timeout (overrides config)")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	log := logging.Init()
	defer func() { _ = logging.Close() }()

	formatter := output.NewConsoleFormatter()

	if benchEnvFileFlag != "" {
		if err := env.LoadDotEnv(benchEnvFileFlag); err != nil {
			formatter.FormatError(err)
			return err
		}
	}

	cfg, err := config.LoadConfig(benchConfigFlag)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	root := cfg.GetRoot()
	if benchRootFlag != "" {
		root = benchRootFlag
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

	timeout := cfg.GetTimeout()
	if benchTimeoutFlag != "" {
		timeout, err = time.ParseDuration(benchTimeoutFlag)
		if err != nil {
			return fmt.Errorf("invalid timeout value %q: %w", benchTimeoutFlag, err)
		}
	}

	client := kuiperhttp.NewClient(
		kuiperhttp.WithTimeout(timeout),
		kuiperhttp.WithFollowRedirects(cfg.GetFollowRedirects()),
		kuiperhttp.WithValidateSSL(cfg.GetValidateSSL()),
		kuiperhttp.WithProxy(cfg.Proxy),
		kuiperhttp.WithDefaultHeaders(cfg.Headers),
	)

	runner := bench.New(client, bench.Config{
		Requests:    benchRequestsFlag,
		Concurrency: benchConcFlag,
		Rate:        benchRateFlag,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d requests, %d concurrent)\n\n",
		def.Method, def.URI, benchRequestsFlag, benchConcFlag)

	report, err := runner.Run(cmd.Context(), def)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "requests:  %d (%d errors)\n", report.Total, report.Errors)
	fmt.Fprintf(out, "duration:  %s (%.1f req/s)\n", report.Duration.Round(time.Millisecond), report.RPS())
	fmt.Fprintf(out, "mean:      %s\n", report.Mean())
	fmt.Fprintf(out, "p50:       %s\n", report.Percentile(50))
	fmt.Fprintf(out, "p95:       %s\n", report.Percentile(95))
	fmt.Fprintf(out, "p99:       %s\n", report.Percentile(99))
	return nil
}
