package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/tally/internal/detect"
	"github.com/dkoosis/tally/pkg/mapper"
	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/result"
	"github.com/dkoosis/tally/pkg/stream"
	"github.com/dkoosis/tally/pkg/testjson"
)

const peekSize = 4096

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read go test -json from stdin and report verdicts per story",
		Long: `Report groups go test -json events into stories (one per package) of
test outcomes (one per top-level test, with subtests as steps), prints each
verdict with its report name and exits 1 when the overall verdict is FAILURE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReport()
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.flags.Format, "format", "", "Output format: auto, terminal, llm, json")
	f.StringVar(&a.flags.ThemeName, "theme", "", "Theme: default, orca, mono")
	return cmd
}

func (a *app) runReport() error {
	// Peek stdin to detect format without consuming
	br := bufio.NewReaderSize(a.stdin, 8*1024)
	peeked, _ := br.Peek(peekSize)
	if len(peeked) == 0 {
		return usageError("no input on stdin")
	}
	if detect.Sniff(peeked) != detect.GoTestJSON {
		return usageError("unrecognized input (expected go test -json)")
	}

	opts := mapper.Options{Format: a.cfg.ReportFormat, Qualifier: a.cfg.Qualifier}

	// Stream mode: TTY stdout + auto format
	if a.cfg.Format == "auto" && isTTYWriter(a.stdout) {
		if code := a.runStream(br, stream.Options(opts)); code != 0 {
			return &exitError{code: code}
		}
		return nil
	}

	input, err := io.ReadAll(br)
	if err != nil {
		return usageError("reading stdin: %w", err)
	}
	results, malformed, err := testjson.ParseBytes(input)
	if err != nil {
		return usageError("parsing go test -json: %w", err)
	}
	if malformed > 0 {
		log.Warn("skipped malformed lines", "count", malformed)
	}

	report, err := mapper.Build(results, opts)
	if err != nil {
		return usageError("naming reports: %w", err)
	}
	for _, c := range report.Collisions {
		log.Warn("report name collision", "name", c.Name, "existing", c.Existing, "incoming", c.Incoming)
	}

	patterns := mapper.Patterns(report)
	fmt.Fprint(a.stdout, a.selectRenderer(resolveFormat(a.cfg.Format, a.stdout)).Render(patterns))

	verdict := report.Result()
	log.Debug("report verdict", "verdict", verdict, "stories", len(report.Stories))
	if result.IsFailure(verdict) {
		return &exitError{code: 1}
	}
	return nil
}

// runStream handles the live streaming path (go test -json + TTY).
func (a *app) runStream(br *bufio.Reader, opts stream.Options) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Close the underlying reader on cancel to unblock Stream's scanner goroutine.
	// bufio.Reader doesn't implement io.Closer, so Stream can't close it itself.
	if c, ok := a.stdin.(io.Closer); ok {
		stopClose := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stopClose()
	}
	width, height := termSize(a.stdout)
	return stream.Run(ctx, br, a.stdout, width, height, streamStyle(a.theme()), opts)
}

func (a *app) theme() render.Theme {
	if a.cfg.NoColor {
		return render.MonoTheme()
	}
	return render.ThemeByName(a.cfg.Theme)
}

// streamStyle colors live stream lines with the theme's styles.
func streamStyle(theme render.Theme) stream.StyleFunc {
	styles := map[stream.LineKind]lipgloss.Style{
		stream.KindPass:      theme.Success,
		stream.KindFail:      theme.Error,
		stream.KindSkip:      theme.Warning,
		stream.KindPending:   theme.Muted,
		stream.KindPkgPass:   theme.Success.Inherit(theme.Bold),
		stream.KindPkgFail:   theme.Error.Inherit(theme.Bold),
		stream.KindOutput:    theme.Muted,
		stream.KindSeparator: theme.Muted,
	}
	return func(kind stream.LineKind, text string) string {
		if s, ok := styles[kind]; ok {
			return s.Render(text)
		}
		return text
	}
}

func (a *app) selectRenderer(mode string) render.Renderer {
	switch mode {
	case "json":
		return render.NewJSON()
	case "llm":
		return render.NewLLM()
	default:
		width, _ := termSize(a.stdout)
		return render.NewTerminal(a.theme(), width)
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

// resolveFormat maps auto to terminal on a TTY and llm when piped.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}
