// Package main provides the CLI entry point for slatex.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/slatex-go/pkg/slatex"
	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

var (
	xlsmPath   string
	projectDir string
	configPath string
	pretty     bool
	verbose    bool

	onlyTasks   bool
	skipMerge   bool
	onlySiteIDs bool
	onlyXwalk   bool

	settings config.Settings
	logger   *zap.Logger
)

func main() {
	var err error
	settings, err = config.LoadSettings(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slatex",
		Short: "Export fantasy slate workbooks to JSON",
		Long: `slatex reads MLB, NFL and NASCAR slate workbooks (.xlsm) and writes
the JSON and CSV files the site reads from public/data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(settings.LogLevel, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&xlsmPath, "xlsm", settings.XLSM, "Source workbook (.xlsm)")
	pf.StringVar(&projectDir, "project", settings.Project, "Project root containing /public")
	pf.StringVar(&configPath, "config", settings.Config, "Exporter config file (JSON or YAML)")
	pf.BoolVar(&pretty, "pretty", settings.Pretty, "Indent JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Run every section the config describes",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().BoolVar(&onlyTasks, "only-tasks", false, "Run only the literal table tasks")
	exportCmd.Flags().BoolVar(&skipMerge, "skip-merge", false, "Skip the salary and projections merges")

	idsCmd := &cobra.Command{
		Use:   "ids",
		Short: "Write site ids and the name crosswalk",
		Args:  cobra.NoArgs,
		RunE:  runIDs,
	}
	idsCmd.Flags().BoolVar(&onlySiteIDs, "only-site-ids", false, "Write site ids only")
	idsCmd.Flags().BoolVar(&onlyXwalk, "only-xwalk", false, "Build the crosswalk only")
	idsCmd.MarkFlagsMutuallyExclusive("only-site-ids", "only-xwalk")

	showdownCmd := &cobra.Command{
		Use:   "showdown",
		Short: "Build NFL showdown position files from exported JSON",
		Args:  cobra.NoArgs,
		RunE:  runShowdown,
	}

	rootCmd.AddCommand(exportCmd, idsCmd, showdownCmd)
	return rootCmd
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("run_id", uuid.NewString())), nil
}

func options() slatex.Options {
	return slatex.Options{
		Project: projectRoot(),
		Pretty:  pretty,
		Logger:  logger,
	}
}

// projectRoot returns --project when it holds public/, else the directory
// above the binary's, else --project unchanged so the run reports it.
func projectRoot() string {
	if _, err := slatex.ProjectRoot(projectDir); err == nil {
		return projectDir
	}
	exe, err := os.Executable()
	if err != nil {
		return projectDir
	}
	fallback := filepath.Dir(filepath.Dir(exe))
	if root, err := slatex.ProjectRoot(fallback); err == nil {
		logger.Warn("project has no /public, using binary root",
			zap.String("project", projectDir), zap.String("root", root))
		return root
	}
	return projectDir
}

func loadConfig(required bool) (*config.File, error) {
	if configPath == "" {
		if required {
			return nil, errors.New("--config is required")
		}
		return nil, nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", slatex.ErrFileNotFound, configPath)
	}
	return config.Load(configPath)
}

func requireWorkbook() error {
	if xlsmPath == "" {
		return errors.New("--xlsm is required")
	}
	if _, err := os.Stat(xlsmPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", slatex.ErrFileNotFound, xlsmPath)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireWorkbook(); err != nil {
		return fatal(err)
	}
	cfg, err := loadConfig(true)
	if err != nil {
		return fatal(err)
	}
	opts := options()
	opts.OnlyTasks = onlyTasks
	opts.SkipMerge = skipMerge

	summary, err := slatex.Export(xlsmPath, cfg, opts)
	if err != nil {
		return fatal(err)
	}
	report("export", summary)
	return nil
}

func runIDs(cmd *cobra.Command, args []string) error {
	if err := requireWorkbook(); err != nil {
		return fatal(err)
	}
	cfg, err := loadConfig(true)
	if err != nil {
		return fatal(err)
	}
	summary, err := slatex.IDs(xlsmPath, cfg, slatex.IDsOptions{
		Options:     options(),
		OnlySiteIDs: onlySiteIDs,
		OnlyXwalk:   onlyXwalk,
	})
	if err != nil {
		return fatal(err)
	}
	report("ids", summary)
	return nil
}

func runShowdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return fatal(err)
	}
	summary, err := slatex.Showdown(cfg, options())
	if err != nil {
		return fatal(err)
	}
	report("showdown", summary)
	return nil
}

func fatal(err error) error {
	logger.Error("run failed", zap.Error(err))
	return err
}

func report(command string, s *models.RunSummary) {
	logger.Info(command+" finished",
		zap.String("workbook", s.BookName),
		zap.Int("outputs", len(s.Outputs)),
		zap.Int("failures", len(s.Failures)))
	for _, f := range s.Failures {
		logger.Warn("failed section", zap.String("section", f.Section), zap.String("error", f.Error))
	}
}
