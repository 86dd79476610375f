package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	cfgpkg "github.com/KaramelBytes/mdsummary/internal/config"
	"github.com/KaramelBytes/mdsummary/internal/ignore"
	"github.com/KaramelBytes/mdsummary/internal/outline"
	"github.com/KaramelBytes/mdsummary/internal/title"
	"github.com/KaramelBytes/mdsummary/internal/utils"
	"github.com/KaramelBytes/mdsummary/internal/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Global flags (override config if set)
	cfgFile       string
	debug         bool
	flagRoot      string
	flagOutput    string
	flagParser    string
	flagExclude   []string
	flagGitignore bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "mdsummary",
	Short: "Generate an mdBook SUMMARY.md from a documentation tree",
	Long: `mdsummary walks a documentation directory, takes each document's first
level-1 heading as its title, and writes a nested table of contents to
SUMMARY.md in the documentation root.

Run without a subcommand to generate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, false, false)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMark(), "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("mdsummary %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mdsummary/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "r", "", "documentation root (overrides config; default is the working directory)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "summary filename inside the root (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagParser, "parser", "", "heading parser: line or goldmark (overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagExclude, "exclude", nil, "extra glob to exclude, repeatable (added to config)")
	rootCmd.PersistentFlags().BoolVar(&flagGitignore, "gitignore", false, "also honour the root's .gitignore (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "%s Warning: failed to load config: %v\n", warnMark(), err)
		return
	}
	cfg = c
}

// settings is the effective configuration after applying flags.
type settings struct {
	Root        string
	SummaryFile string
	Parser      string
	Exclude     []string
	Gitignore   bool
	Debounce    time.Duration
	LogLevel    string
}

// SummaryPath is where the outline is written.
func (s settings) SummaryPath() string {
	return filepath.Join(s.Root, s.SummaryFile)
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	c := cfg
	if c == nil {
		c = cfgpkg.Default()
	}
	s := settings{
		Root:        c.DocsRoot,
		SummaryFile: c.SummaryFile,
		Parser:      c.HeadingParser,
		Exclude:     append([]string(nil), c.Exclude...),
		Gitignore:   c.UseGitignore,
		Debounce:    time.Duration(c.WatchDebounceMs) * time.Millisecond,
		LogLevel:    c.LogLevel,
	}

	f := cmd.Flags()
	if f.Changed("root") {
		s.Root = flagRoot
	}
	if f.Changed("output") && flagOutput != "" {
		s.SummaryFile = flagOutput
	}
	if f.Changed("parser") {
		s.Parser = flagParser
	}
	if f.Changed("exclude") {
		s.Exclude = append(s.Exclude, flagExclude...)
	}
	if f.Changed("gitignore") {
		s.Gitignore = flagGitignore
	}
	if debug {
		s.LogLevel = "debug"
	}
	if s.SummaryFile == "" {
		s.SummaryFile = ignore.DefaultSummaryFile
	}
	if strings.ContainsAny(s.SummaryFile, `/\`) {
		return settings{}, fmt.Errorf("summary file must be a plain filename, got %q", s.SummaryFile)
	}

	root, err := utils.ExpandDir(s.Root)
	if err != nil {
		return settings{}, err
	}
	s.Root = root
	return s, nil
}

// newBuilder wires the ignore matcher and title extractor for s.
func newBuilder(fs afero.Fs, s settings, logger *slog.Logger) (*outline.Builder, *ignore.Matcher, error) {
	parser, err := title.ParserFor(s.Parser)
	if err != nil {
		return nil, nil, err
	}
	matcher, err := ignore.NewMatcher(ignore.MatcherOptions{
		Fs:             fs,
		RootDir:        s.Root,
		SummaryFile:    s.SummaryFile,
		CustomPatterns: s.Exclude,
		UseGitignore:   s.Gitignore,
	})
	if err != nil {
		return nil, nil, err
	}
	b := outline.NewBuilder(outline.Options{
		Fs:     fs,
		Root:   s.Root,
		Titles: title.NewExtractor(fs, parser, logger),
		Ignore: matcher,
		Logger: logger,
	})
	return b, matcher, nil
}

// setupLogger creates an slog.Logger writing to stderr.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
