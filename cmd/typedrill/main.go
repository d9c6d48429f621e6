// Package main provides the CLI entrypoint for typedrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typedrill/internal/config"
	"github.com/verte-zerg/typedrill/internal/engine"
	"github.com/verte-zerg/typedrill/internal/generator"
	"github.com/verte-zerg/typedrill/internal/logging"
	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/stats"
	"github.com/verte-zerg/typedrill/internal/statsui"
	"github.com/verte-zerg/typedrill/internal/store"
	"github.com/verte-zerg/typedrill/internal/tui"
	"github.com/verte-zerg/typedrill/internal/wordlist"
)

const (
	defaultMode       = "words"
	defaultWords      = 0
	defaultChunkWords = 10
	defaultDifficulty = "lowercase"
	defaultHighlight  = "word"
	defaultWidth      = 60
	defaultWeakTop    = stats.DefaultShortlist
	defaultWeakFactor = 2.0
	defaultLogLevel   = "info"
	defaultRetention  = 50
	minWidth          = 20
)

var (
	practiceMode         string
	practiceWords        int
	practiceChunkWords   int
	practiceDifficulty   string
	practiceHighlight    string
	practiceWidth        int
	practiceFocusWeak    bool
	practiceWeakTop      int
	practiceWeakFactor   float64
	practiceSeed         int64
	practiceWordsPath    string
	practiceSnippetsPath string
	statsBackend         string
	statsPath            string
	logLevel             string

	statsPlain bool
	statsTop   int
	statsChars string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typedrill",
		Short:         "Adaptive TUI typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&practiceMode, "mode", defaultMode, "content mode: words or snippets")
	flags.IntVar(&practiceWords, "words", defaultWords, "words per session (0 for endless)")
	flags.IntVar(&practiceChunkWords, "chunk-words", defaultChunkWords, "words generated per chunk in endless sessions")
	flags.StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "lowercase, uppercase, numbers or symbols")
	flags.StringVar(&practiceHighlight, "highlight", defaultHighlight, "nothing, character, word, next-word or two-words")
	flags.IntVar(&practiceWidth, "width", defaultWidth, "maximum line width")
	flags.BoolVar(&practiceFocusWeak, "focus-weak", true, "bias practice toward weak characters")
	flags.IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to rotate between")
	flags.Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "extra weight per weak character in a word")
	flags.Int64Var(&practiceSeed, "seed", 0, "random seed (0 seeds from the clock)")
	flags.StringVar(&practiceWordsPath, "words-path", "", "custom word list file")
	flags.StringVar(&practiceSnippetsPath, "snippets-path", "", "custom snippets file")
	addStoreFlags(rootCmd)
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetStatsCmd())

	return rootCmd
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsBackend, "stats-backend", store.BackendTOML, "stats storage: toml or sqlite")
	cmd.Flags().StringVar(&statsPath, "stats-path", "", "stats file (default under $XDG_DATA_HOME/typedrill)")
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p := fileCfg.Practice
	applyStringConfig(cmd, "mode", &practiceMode, p.Mode)
	applyIntConfig(cmd, "words", &practiceWords, p.Words)
	applyIntConfig(cmd, "chunk-words", &practiceChunkWords, p.ChunkWords)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, p.Difficulty)
	applyStringConfig(cmd, "highlight", &practiceHighlight, p.Highlight)
	applyIntConfig(cmd, "width", &practiceWidth, p.Width)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyInt64Config(cmd, "seed", &practiceSeed, p.Seed)
	applyStringConfig(cmd, "words-path", &practiceWordsPath, p.WordsPath)
	applyStringConfig(cmd, "snippets-path", &practiceSnippetsPath, p.SnippetsPath)
	applyStoreConfig(cmd, fileCfg)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(cfg.LogLevel, fileCfg.Log.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()
	logger = logger.With("session", uuid.NewString())

	corpus, err := wordlist.Load(cfg.WordsPath, cfg.SnippetsPath)
	if err != nil {
		logger.Error("failed to load corpus", "err", err)
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	ctx := context.Background()
	st, table, err := openStats(ctx, cfg.StatsBackend, cfg.StatsPath, logger)
	if err != nil {
		return err
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close stats store: %v\n", cerr)
			}
		}()
	}
	logger.Info("practice started",
		"mode", cfg.Mode.String(),
		"words", cfg.Words,
		"difficulty", cfg.Difficulty.String(),
		"backend", cfg.StatsBackend,
		"chars", len(table))

	rnd := newRand(cfg.Seed)
	m, err := tui.NewModel(cfg, table, newSessionFactory(corpus, rnd), logger)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if st == nil {
		logger.Warn("stats not saved, no usable store", "path", cfg.StatsPath)
	} else if err := st.Save(ctx, m.Stats()); err != nil {
		logger.Error("failed to save stats", "path", cfg.StatsPath, "err", err)
		logErrf("failed to save stats: %v\n", err)
	} else {
		logger.Info("stats saved", "chars", len(m.Stats()))
	}
	return m.Err()
}

// openStats opens the store and loads its table. Unavailable stats never stop
// practice: a store that cannot be opened is moved aside to path.corrupt and
// recreated, and if that fails too the run continues with an empty table and
// a nil store, so nothing is persisted.
func openStats(ctx context.Context, backend, path string, logger *slog.Logger) (store.Store, model.StatsTable, error) {
	st, err := store.Open(backend, path)
	if err != nil {
		if !errors.Is(err, store.ErrStatsUnavailable) {
			return nil, nil, fmt.Errorf("failed to open stats store: %w", err)
		}
		logger.Warn("stats store unusable, starting fresh", "path", path, "err", err)
		backup := path + ".corrupt"
		if rerr := os.Rename(path, backup); rerr != nil {
			logger.Error("failed to move stats store aside", "path", path, "err", rerr)
			return nil, model.StatsTable{}, nil
		}
		logErrf("stats store at %s is unreadable; moved to %s\n", path, backup)
		if st, err = store.Open(backend, path); err != nil {
			logger.Error("failed to recreate stats store", "path", path, "err", err)
			return nil, model.StatsTable{}, nil
		}
	}

	table, err := st.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrStatsUnavailable) {
			if cerr := st.Close(); cerr != nil {
				// Best-effort close before failing.
				_ = cerr
			}
			return nil, nil, fmt.Errorf("failed to load stats: %w", err)
		}
		logger.Warn("starting with empty stats", "path", path, "err", err)
		table = model.StatsTable{}
	}
	return st, table, nil
}

// buildConfig converts the resolved flag values into a validated config.
func buildConfig() (model.Config, error) {
	mode, ok := model.ParseMode(practiceMode)
	if !ok {
		return model.Config{}, fmt.Errorf("--mode must be words or snippets")
	}
	difficulty, ok := model.ParseDifficulty(practiceDifficulty)
	if !ok {
		return model.Config{}, fmt.Errorf("--difficulty must be lowercase, uppercase, numbers or symbols")
	}
	highlight, ok := model.ParseHighlight(practiceHighlight)
	if !ok {
		return model.Config{}, fmt.Errorf("--highlight must be nothing, character, word, next-word or two-words")
	}
	cfg := model.Config{
		Mode:         mode,
		Words:        practiceWords,
		ChunkWords:   practiceChunkWords,
		Difficulty:   difficulty,
		Highlight:    highlight,
		LineWidth:    practiceWidth,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		Seed:         practiceSeed,
		WordsPath:    practiceWordsPath,
		SnippetsPath: practiceSnippetsPath,
		StatsBackend: statsBackend,
		StatsPath:    resolveStatsPath(statsBackend, statsPath),
		LogLevel:     logLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newSessionFactory(corpus wordlist.Corpus, rnd *rand.Rand) tui.SessionFactory {
	return func(cfg model.Config, table model.StatsTable) (*engine.Session, error) {
		chunk := cfg.ChunkWords
		if cfg.Words > 0 {
			chunk = cfg.Words
		}
		gen, err := generator.New(corpus,
			generator.WithRand(rnd),
			generator.WithMode(cfg.Mode),
			generator.WithDifficulty(cfg.Difficulty),
			generator.WithWordCount(chunk),
			generator.WithWeakFocus(cfg.FocusWeak, cfg.WeakFactor),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create generator: %w", err)
		}
		opts := []engine.Option{
			engine.WithStats(table),
			engine.WithLineWidth(cfg.LineWidth),
			engine.WithFinite(cfg.Words > 0),
			engine.WithRetention(defaultRetention),
		}
		if cfg.FocusWeak {
			opts = append(opts, engine.WithHint(stats.Selector(cfg.WeakTop, rnd)))
		}
		return engine.New(gen, opts...), nil
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func openLogger(level string, pathOverride *string) (*slog.Logger, io.Closer, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-level must be debug, info, warn or error")
	}
	path := config.DefaultLogPath()
	if pathOverride != nil && *pathOverride != "" {
		path = *pathOverride
	}
	logger, closer, err := logging.Open(path, lvl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger, closer, nil
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
	if _, err := config.WriteTemplate(path); err != nil {
		return err
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
		Short: "Show per-character stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text table instead of the TUI")
	cmd.Flags().IntVar(&statsTop, "top", 0, "limit to the N weakest characters (0 for all)")
	cmd.Flags().StringVar(&statsChars, "char", "", "only show these characters")
	addStoreFlags(cmd)
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStoreConfig(cmd, fileCfg)
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	if !store.ValidBackend(statsBackend) {
		return fmt.Errorf("--stats-backend must be toml or sqlite")
	}

	cfg := model.StatsConfig{
		Backend: statsBackend,
		Path:    resolveStatsPath(statsBackend, statsPath),
		Chars:   statsChars,
		Top:     statsTop,
	}

	st, err := store.Open(cfg.Backend, cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open stats store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close stats store: %v\n", cerr)
		}
	}()

	table, err := st.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	if statsPlain {
		return writePlainStats(cmd.OutOrStdout(), table, cfg)
	}
	program := tea.NewProgram(statsui.NewModel(table, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func writePlainStats(w io.Writer, table model.StatsTable, cfg model.StatsConfig) error {
	if err := stats.RenderSummary(w, table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCharTable(w, selectChars(table, cfg.Chars), cfg.Top); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// selectChars narrows table to the runes of chars; empty chars keeps all.
func selectChars(table model.StatsTable, chars string) model.StatsTable {
	chars = strings.Join(strings.Fields(strings.ReplaceAll(chars, ",", " ")), "")
	if chars == "" {
		return table
	}
	out := model.StatsTable{}
	for _, ch := range chars {
		if stat, ok := table[ch]; ok {
			out[ch] = stat
		}
	}
	return out
}

func newResetStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-stats",
		Short: "Delete recorded stats",
		Args:  cobra.NoArgs,
		RunE:  runResetStatsCmd,
	}
	addStoreFlags(cmd)
	return cmd
}

func runResetStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStoreConfig(cmd, fileCfg)
	if !store.ValidBackend(statsBackend) {
		return fmt.Errorf("--stats-backend must be toml or sqlite")
	}
	path := resolveStatsPath(statsBackend, statsPath)
	if err := store.Remove(path); err != nil {
		return err
	}
	logErrf("Removed %s\n", path)
	return nil
}

func applyStoreConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyStringConfig(cmd, "stats-backend", &statsBackend, fileCfg.Stats.Backend)
	applyStringConfig(cmd, "stats-path", &statsPath, fileCfg.Stats.Path)
}

func resolveStatsPath(backend, path string) string {
	if path != "" {
		return path
	}
	return config.DefaultStatsPath(backend)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func validateConfig(cfg model.Config) error {
	if cfg.Words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	if cfg.ChunkWords <= 0 {
		return fmt.Errorf("--chunk-words must be > 0")
	}
	if cfg.LineWidth < minWidth {
		return fmt.Errorf("--width must be >= %d", minWidth)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if !store.ValidBackend(cfg.StatsBackend) {
		return fmt.Errorf("--stats-backend must be toml or sqlite")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level must be debug, info, warn or error")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
