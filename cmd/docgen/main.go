// docgen is a terminal client for the docstring generation service.
// It reads a Python snippet from a file or stdin, submits it, and
// prints the documented code.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"docagent/internal/client"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	style      string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:     "docgen [file]",
	Short:   "Generate docstrings for Python source code",
	Long:    `Generate docstrings for Python source code via a running docagent server. Reads from the given file, or from stdin when no file is passed.`,
	Example: `docgen snippet.py --style numpy -o documented.py`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    generate,
}

// terminalDisplay renders submission updates with pterm.
type terminalDisplay struct {
	output string
	failed bool
}

func (d *terminalDisplay) SetStatus(state client.State, message string) {
	switch state {
	case client.StatePending:
		pterm.Info.Println(message)
	case client.StateSuccess:
		pterm.Success.Println(message)
	default:
		pterm.Error.Println(message)
		d.failed = true
	}
}

func (d *terminalDisplay) SetOutput(code string) {
	d.output = code
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func generate(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	submitter := client.NewSubmitter(serverURL)
	submitter.Style = style

	display := &terminalDisplay{}
	submitter.Submit(ctx, source, display)

	if display.output != "" {
		if outputPath != "" {
			if err := os.WriteFile(outputPath, []byte(display.output), 0644); err != nil {
				return err
			}
			pterm.Info.Printf("documented code written to %s\n", outputPath)
		} else {
			cmd.Println(display.output)
		}
	}

	if display.failed {
		os.Exit(1)
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "base URL of the docagent server")
	rootCmd.Flags().StringVar(&style, "style", "", "docstring style (google, numpy, sphinx)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write documented code to this file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
