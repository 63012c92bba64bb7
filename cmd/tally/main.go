// tally reduces test step results to verdicts and names the reports they
// belong in.
//
// Usage:
//
//	go test -json ./... | tally report
//	tally name --story-token AUserStory --qualifier firefox should_do_this
//	tally reduce SUCCESS SKIPPED FAILURE
//
// Output modes for report (auto-detected):
//
//	terminal  styled Unicode output (default when TTY, live when streaming)
//	llm       terse plain text for AI consumption (default when piped)
//	json      structured JSON for automation
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries a process exit code out of a command. A nil err means
// the command already reported the outcome.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// app holds the streams and flag values shared by every subcommand.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	flags   config.CliFlags
	verbose bool
	quiet   bool
	cfg     *config.ResolvedConfig
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "tally: %v\n", ee.err)
		}
		return ee.code
	}
	// flag and argument errors from cobra
	fmt.Fprintf(stderr, "tally: %v\n", err)
	return 2
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Reduce test results to verdicts and name their reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Only log warnings and errors")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "Disable colors")
	pf.BoolVar(&a.flags.Debug, "debug", false, "Enable debug output")
	pf.StringVar(&a.flags.ReportFormat, "report-format", "", "Report file format: html, xml, json, none")
	pf.StringVar(&a.flags.Qualifier, "qualifier", "", "Suffix for every report name, e.g. a browser")

	root.AddCommand(a.reportCmd(), a.nameCmd(), a.reduceCmd(), a.versionCmd())
	return root
}

// setup resolves configuration and installs the logger before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	a.flags.QualifierSet = flags.Changed("qualifier")
	a.flags.NoColorSet = flags.Changed("no-color")
	a.flags.DebugSet = flags.Changed("debug")

	cfg, err := config.ResolveConfig(a.flags)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	a.cfg = cfg
	logging.Setup(a.stderr, a.verbose || cfg.Debug, a.quiet, cfg.NoColor)
	return nil
}
