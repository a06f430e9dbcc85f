package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kuiper-sh/kuiper/packages/core/request"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Validate request definition files against the schema",
	Long: `Validate .kuiper files: each must be valid JSON with a string uri and
method, headers mapping names to strings or null, and string params.

Examples:
  kuiper validate api/users/get_user.kuiper
  kuiper validate ./requests/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", request.Ext)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	invalid := 0
	for _, file := range files {
		problems, err := request.ValidateFile(file)
		if err != nil {
			red.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", file, err)
			invalid++
			continue
		}
		if len(problems) > 0 {
			red.Fprintf(cmd.OutOrStdout(), "✗ %s\n", file)
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", p)
			}
			invalid++
			continue
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ %s\n", file)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, len(files))
	}
	return nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(path) == request.Ext {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(arg) == request.Ext {
			files = append(files, arg)
		}
	}

	return files, nil
}
