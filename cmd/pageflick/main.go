// Package main provides the CLI entrypoint for pageflick.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ttbye/pageflick/internal/config"
	"github.com/ttbye/pageflick/internal/gesture"
	"github.com/ttbye/pageflick/internal/model"
	"github.com/ttbye/pageflick/internal/reader"
	"github.com/ttbye/pageflick/internal/stats"
	"github.com/ttbye/pageflick/internal/statsui"
	"github.com/ttbye/pageflick/internal/store"
	"github.com/ttbye/pageflick/internal/trace"
)

const (
	defaultCurveWindow = 20
	defaultMethod      = "swipe"
	defaultMode        = "horizontal"
	plainPlotHeight    = 10
	termWidthBackup    = 80
)

var (
	readMethod      string
	readMode        string
	readClickToTurn bool
	readPage        int

	statsBook        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	replayWidth  int
	replayHeight int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pageflick <book.txt>",
		Short:         "TUI book reader with gesture navigation",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().StringVar(&readMethod, "method", defaultMethod, "page turn method: swipe or click")
	rootCmd.Flags().StringVar(&readMode, "mode", defaultMode, "page turn mode: horizontal or vertical")
	rootCmd.Flags().BoolVar(&readClickToTurn, "click-to-turn", true, "turn pages by clicking a screen half (click method)")
	rootCmd.Flags().IntVar(&readPage, "page", -1, "start at page N instead of the saved position")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	gcfg, err := buildGestureConfig(cmd, fileCfg.Gestures)
	if err != nil {
		return err
	}

	bookPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve book path: %w", err)
	}
	data, err := os.ReadFile(bookPath)
	if err != nil {
		return fmt.Errorf("failed to read book: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	startPage := readPage
	if startPage < 0 {
		startPage, err = st.GetPosition(cmd.Context(), bookPath)
		if err != nil {
			return fmt.Errorf("failed to load position: %w", err)
		}
	}

	m := reader.NewModel(bookPath, string(data), st, gcfg, startPage)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if fileCfg.Reader.Mouse == nil || *fileCfg.Reader.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(m, opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildGestureConfig layers the TOML section over the terminal
// defaults, then CLI flags over both.
func buildGestureConfig(cmd *cobra.Command, fileGestures config.GesturesConfig) (gesture.Config, error) {
	settings, err := fileGestures.Settings()
	if err != nil {
		return gesture.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	gcfg := settings.Apply(reader.TerminalConfig())

	var flags config.GesturesConfig
	if cmd.Flags().Changed("method") {
		flags.Method = &readMethod
	}
	if cmd.Flags().Changed("mode") {
		flags.Mode = &readMode
	}
	if cmd.Flags().Changed("click-to-turn") {
		flags.ClickToTurn = &readClickToTurn
	}
	flagSettings, err := flags.Settings()
	if err != nil {
		return gesture.Config{}, err
	}
	return flagSettings.Apply(gcfg), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsBook, "book", "", "book path filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Book:        statsBook,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return runPlainStats(cmd, st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	width := terminalWidth()
	if err := stats.RenderCurvesWithSize(out, report.Sessions, cfg.CurveWindow, width, plainPlotHeight, false); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
	}
	if err := stats.RenderGestureTable(out, report.GestureAggsAll); err != nil {
		return fmt.Errorf("failed to render gesture table: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return termWidthBackup
	}
	return width
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace-file>",
		Short: "Replay a recorded input trace through the gesture engine",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
	cmd.Flags().IntVar(&replayWidth, "width", 400, "viewport width the trace was recorded against")
	cmd.Flags().IntVar(&replayHeight, "height", 600, "viewport height the trace was recorded against")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := fileCfg.Gestures.Settings()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	gcfg := settings.Apply(gesture.DefaultConfig())

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close trace: %v\n", cerr)
		}
	}()

	events, err := trace.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse trace: %w", err)
	}
	if len(events) == 0 {
		return fmt.Errorf("trace is empty")
	}

	bounds := gesture.Rect{Max: gesture.Point{X: float64(replayWidth), Y: float64(replayHeight)}}
	sum := trace.Replay(events, bounds, gcfg)
	if err := sum.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return `# pageflick configuration
# Uncomment a value to enable it. CLI flags override config values.

[reader]
# mouse = true                     # Capture mouse input for gestures

[gestures]
# method = "swipe"                 # Page turn method: swipe or click
# mode = "horizontal"              # Page turn mode: horizontal or vertical
# click-to-turn = true             # Click a screen half to turn (click method)
# swipe-threshold = 8.0            # Cells of travel that qualify a swipe
# swipe-velocity-threshold = 0.05  # Cells/ms that qualify a short flick
# direction-min = 5.0              # Minimum signed travel to pick a direction
# direction-ratio = 1.3            # Axis dominance ratio
# tap-threshold = 2.0              # Maximum tap travel in cells
# max-move-distance = 2.0          # Misfire filter travel cap
# min-touch-ms = 80                # Misfire filter lower bound
# max-touch-ms = 800               # Misfire filter upper bound
# long-press-ms = 500              # Hold duration for the navigation chrome
# pinch-zoom-threshold = 0.1       # Scale delta before pinch reports
# rotation-threshold = 15.0        # Degrees before rotation reports
# edge-threshold = 0.0             # Edge-tap zone width (0 disables)
# animation-ms = 150               # Page turn animation duration
# debounce-ms = 300                # Cooldown between page turns
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
