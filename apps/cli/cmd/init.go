package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new kuiper project",
	Long: `Initialize a new kuiper project in the current directory.

This creates:
  - kuiper.yaml               - Configuration file
  - requests/headers.json     - Headers inherited by every request
  - requests/example.kuiper   - Example request definition

Examples:
  kuiper init
  kuiper init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleRequest = `{
    "uri": "https://httpbin.org/anything/{{env:USER}}",
    "method": "POST",
    "headers": {
        "accept": "application/json"
    },
    "params": {
        "page": "1"
    },
    "body": {
        "id": "{{expr:uuid}}",
        "sent_at": "{{expr:now}}"
    }
}
`

const exampleHeaders = `{
    "user-agent": "kuiper",
    "x-request-id": "{{expr:uuid}}"
}
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "kuiper.yaml")
	requestsDir := filepath.Join(cwd, "requests")
	headersFile := filepath.Join(requestsDir, "headers.json")
	exampleFile := filepath.Join(requestsDir, "example.kuiper")

	if !forceInit {
		for _, f := range []string{configFile, headersFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"root":              "requests",
		"headerFile":        "headers.json",
		"timeout":           "30s",
		"followRedirects":   true,
		"validateSSL":       true,
		"interpolateParams": true,
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.MkdirAll(requestsDir, 0755); err != nil {
		return fmt.Errorf("failed to create requests directory: %w", err)
	}
	if err := os.WriteFile(headersFile, []byte(exampleHeaders), 0644); err != nil {
		return fmt.Errorf("failed to create header file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", headersFile)

	if err := os.WriteFile(exampleFile, []byte(exampleRequest), 0644); err != nil {
		return fmt.Errorf("failed to create example request: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nTry it:\n  kuiper show example\n  kuiper run example\n")
	return nil
}
