// Package main provides the CLI entrypoint for readstat.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readstat/internal/config"
	"github.com/verte-zerg/readstat/internal/docstats"
	"github.com/verte-zerg/readstat/internal/document"
	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/stats"
	"github.com/verte-zerg/readstat/internal/store"
	"github.com/verte-zerg/readstat/internal/tui"
)

const (
	defaultWidth         = 0
	defaultHistoryLast   = 20
	defaultHistoryWindow = 5
)

var (
	editorWidth       int
	editorLineNumbers bool
	editorCacheGated  bool
	editorRecord      bool
	verbose           bool

	reportRange      string
	reportRecord     bool
	reportColor      bool
	reportCacheGated bool

	historyPath   string
	historySince  string
	historyLast   int
	historyWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readstat [file]",
		Short:         "Editor with live readability statistics",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runEditorCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print debug information to stderr")
	rootCmd.Flags().IntVar(&editorWidth, "width", defaultWidth, "editor width (0 uses the terminal width)")
	rootCmd.Flags().BoolVar(&editorLineNumbers, "line-numbers", false, "show line numbers")
	rootCmd.Flags().BoolVar(&editorCacheGated, "cache-gated-selection", false, "count selected paragraphs only once they are cached")
	rootCmd.Flags().BoolVar(&editorRecord, "record", true, "record a snapshot on every save")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runEditorCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "width", &editorWidth, fileCfg.Editor.Width)
	applyBoolConfig(cmd, "line-numbers", &editorLineNumbers, fileCfg.Editor.LineNumbers)
	applyBoolConfig(cmd, "cache-gated-selection", &editorCacheGated, fileCfg.Stats.CacheGatedSelection)
	applyBoolConfig(cmd, "record", &editorRecord, fileCfg.Stats.Record)

	cfg := model.Config{
		Width:               editorWidth,
		LineNumbers:         editorLineNumbers,
		CacheGatedSelection: editorCacheGated,
		Record:              editorRecord,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	path := ""
	doc := document.New()
	if len(args) == 1 {
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		loaded, err := document.Load(path)
		switch {
		case err == nil:
			doc = loaded
		case errors.Is(err, os.ErrNotExist):
			verbosef("%s does not exist yet; starting empty\n", path)
		default:
			return fmt.Errorf("failed to load document: %w", err)
		}
	}

	var st *store.Store
	if cfg.Record && path != "" {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open db, snapshots disabled: %v\n", err)
			st = nil
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
		}
	}

	engine := docstats.Attach(doc, docstats.Options{CacheGatedSelection: cfg.CacheGatedSelection})
	verbosef("loaded %d paragraphs\n", doc.ParagraphCount())

	editor := tui.NewModel(cfg, path, doc, engine, st)
	program := tea.NewProgram(editor, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [files...]",
		Short: "Print statistics for files or stdin",
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportRange, "range", "", "report a rune range selection (start:end)")
	cmd.Flags().BoolVar(&reportRecord, "record", false, "record snapshots in history")
	cmd.Flags().BoolVar(&reportColor, "color", false, "force colored output")
	cmd.Flags().BoolVar(&reportCacheGated, "cache-gated-selection", false, "count selected paragraphs only once they are cached")
	return cmd
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "cache-gated-selection", &reportCacheGated, fileCfg.Stats.CacheGatedSelection)

	var selection *runeRange
	if reportRange != "" {
		parsed, err := parseRange(reportRange)
		if err != nil {
			return err
		}
		selection = &parsed
	}

	var st *store.Store
	if reportRecord {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	out := cmd.OutOrStdout()
	useColor := stats.UseColor(out, reportColor)
	opts := docstats.Options{CacheGatedSelection: reportCacheGated}

	if len(args) == 0 {
		doc, err := document.Read(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return reportDocument(cmd.Context(), out, st, "stdin", doc, selection, opts, useColor)
	}
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		doc, err := document.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}
		if err := reportDocument(cmd.Context(), out, st, path, doc, selection, opts, useColor); err != nil {
			return err
		}
	}
	return nil
}

func reportDocument(ctx context.Context, w io.Writer, st *store.Store, name string, doc *document.Document, selection *runeRange, opts docstats.Options, useColor bool) error {
	engine := docstats.Attach(doc, opts)
	title := name
	if selection != nil {
		start, end := selection.clamp(doc.Len())
		runes := []rune(doc.Text())
		engine.SelectionChanged(string(runes[start:end]), start, end)
		title = fmt.Sprintf("%s [%d:%d]", name, start, end)
	}
	metrics := engine.Metrics()
	if err := stats.RenderMetrics(w, title, metrics, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if st == nil {
		return nil
	}
	snap := model.Snapshot{
		RecordedAt: time.Now(),
		Path:       name,
		Mode:       engine.Mode().String(),
		Metrics:    metrics,
	}
	if _, err := st.InsertSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	verbosef("recorded snapshot for %s\n", name)
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded snapshots",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyPath, "path", "", "only show snapshots of this file")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N snapshots (0 shows all)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window for the trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	filter := model.HistoryFilter{}
	if historyPath != "" {
		path, err := filepath.Abs(historyPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		filter.Path = path
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
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

	history, err := stats.BuildHistory(cmd.Context(), st, filter, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	verbosef("%d recorded files\n", len(history.Paths))
	if err := stats.RenderHistory(cmd.OutOrStdout(), history.Snapshots, historyWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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

// runeRange is a selection given as rune offsets.
type runeRange struct {
	start int
	end   int
}

func parseRange(value string) (runeRange, error) {
	startText, endText, ok := strings.Cut(value, ":")
	if !ok {
		return runeRange{}, fmt.Errorf("invalid --range %q: expected start:end", value)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return runeRange{}, fmt.Errorf("invalid --range start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return runeRange{}, fmt.Errorf("invalid --range end: %w", err)
	}
	if start < 0 || end < 0 {
		return runeRange{}, fmt.Errorf("--range offsets must be >= 0")
	}
	if start > end {
		start, end = end, start
	}
	return runeRange{start: start, end: end}, nil
}

// clamp limits the range to a text of length runes.
func (r runeRange) clamp(length int) (int, int) {
	return min(r.start, length), min(r.end, length)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[editor]
# width = %d                       # Editor width (0 uses the terminal width)
# line-numbers = false             # Show line numbers

[stats]
# cache-gated-selection = false    # Count selected paragraphs only once cached
# record = true                    # Record a snapshot on every save

[history]
# last = %d                        # Snapshots shown by readstat history
`,
		defaultWidth,
		defaultHistoryLast,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	return nil
}

func verbosef(format string, args ...any) {
	if !verbose {
		return
	}
	logErrf(format, args...)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
