package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/core/config"
	"github.com/kuiper-sh/kuiper/packages/core/request"
	"github.com/kuiper-sh/kuiper/packages/core/resolver"
	"github.com/kuiper-sh/kuiper/packages/env"
	"github.com/kuiper-sh/kuiper/packages/history"
	kuiperhttp "github.com/kuiper-sh/kuiper/packages/http"
	"github.com/kuiper-sh/kuiper/packages/logging"
	"github.com/kuiper-sh/kuiper/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run <path|term>",
	Short: "Resolve a request definition and send it",
	Long: `Resolve a request definition file and send the resulting HTTP request.

The argument is tried as a path first (relative paths resolve against the
request root); when no file exists there, it is used as a search term over
every .kuiper file under the root. A search that matches nothing or more
than one file aborts with the candidate list.

Examples:
  kuiper run api/users/get_user.kuiper
  kuiper run get_user
  kuiper run get_user --env-file .env.staging
  kuiper run get_user --filter data.id
  kuiper run get_user --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envFileFlag     string
	configFlag      string
	rootFlag        string
	timeoutFlag     string
	insecureFlag    bool
	proxyFlag       string
	filterFlag      string
	watchFlag       bool
	noColorFlag     bool
	verboseFlag     bool
	historyFileFlag string
)

func init() {
	runCmd.Flags().StringVar(&envFileFlag, "env-file", getEnvString("KUIPER_ENV_FILE", ""), "Path to .env file loaded before interpolation (env: KUIPER_ENV_FILE)")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("KUIPER_CONFIG", ""), "Path to config file (env: KUIPER_CONFIG)")
	runCmd.Flags().StringVar(&rootFlag, "root", getEnvString("KUIPER_ROOT", ""), "Request root directory (env: KUIPER_ROOT)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "HTTP timeout, e.g. 30s, 500ms (overrides config)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "Skip TLS certificate verification")
	runCmd.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy URL for outgoing requests")
	runCmd.Flags().StringVar(&filterFlag, "filter", "", "Print only this gjson path of a JSON response body")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-resolve and resend whenever request files change")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("KUIPER_NO_COLOR", false), "Disable colored output (env: KUIPER_NO_COLOR)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print response headers")
	runCmd.Flags().StringVar(&historyFileFlag, "history-file", "", "Record sent requests in this SQLite database (overrides config)")
}

func runCommand(cmd *cobra.Command, args []string) error {
	log := logging.Init()
	defer func() { _ = logging.Close() }()

	formatter := output.NewConsoleFormatter(
		output.WithVerbose(verboseFlag),
		output.WithNoColor(noColorFlag),
	)

	if envFileFlag != "" {
		if err := env.LoadDotEnv(envFileFlag); err != nil {
			formatter.FormatError(err)
			return err
		}
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	root := cfg.GetRoot()
	if rootFlag != "" {
		root = rootFlag
	}

	res := resolver.New(root, env.OS(),
		resolver.WithHeaderFile(cfg.GetHeaderFile()),
		resolver.WithInterpolateParams(cfg.GetInterpolateParams()),
		resolver.WithLogger(log),
	)

	timeout := cfg.GetTimeout()
	if timeoutFlag != "" {
		timeout, err = time.ParseDuration(timeoutFlag)
		if err != nil {
			return &usageError{err: fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)}
		}
	}

	validateSSL := cfg.GetValidateSSL()
	if insecureFlag {
		validateSSL = false
	}
	proxy := cfg.Proxy
	if proxyFlag != "" {
		proxy = proxyFlag
	}

	client := kuiperhttp.NewClient(
		kuiperhttp.WithTimeout(timeout),
		kuiperhttp.WithFollowRedirects(cfg.GetFollowRedirects()),
		kuiperhttp.WithMaxRedirects(cfg.GetMaxRedirects()),
		kuiperhttp.WithValidateSSL(validateSSL),
		kuiperhttp.WithProxy(proxy),
		kuiperhttp.WithDefaultHeaders(cfg.Headers),
	)

	historyFile := cfg.HistoryFile
	if historyFileFlag != "" {
		historyFile = historyFileFlag
	}
	var store *history.Store
	if historyFile != "" {
		store, err = history.Open(historyFile)
		if err != nil {
			formatter.FormatError(err)
			return err
		}
		defer func() { _ = store.Close() }()
	}

	sendOnce := func() error {
		def, err := res.Find(args[0])
		if err != nil {
			formatter.FormatError(err)
			return err
		}

		resp, err := client.Send(cmd.Context(), def)
		if err != nil {
			formatter.FormatError(err)
			return err
		}
		formatter.FormatResponse(resp, filterFlag)

		if store != nil {
			entry := history.Entry{
				SentAt:   time.Now(),
				Name:     def.Name,
				Method:   def.Method,
				URI:      def.URI,
				Status:   resp.StatusCode,
				Duration: resp.Duration,
			}
			if err := store.Record(cmd.Context(), entry); err != nil {
				log.Warnw("recording history failed", "error", err)
			}
		}
		return nil
	}

	if watchFlag {
		return watchAndRun(cmd, root, cfg.GetHeaderFile(), sendOnce)
	}
	return sendOnce()
}

// watchAndRun runs once, then re-runs on every change to a definition or
// header file under root.
func watchAndRun(cmd *cobra.Command, root, headerFile string, run func() error) error {
	_ = run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer
	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != request.Ext && filepath.Base(event.Name) != headerFile {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n\n", event.Name)
				_ = run()
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
