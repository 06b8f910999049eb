// Package main provides the CLI entrypoint for wordnaija.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/creatorlimen/wordnaija/internal/config"
	"github.com/creatorlimen/wordnaija/internal/level"
	"github.com/creatorlimen/wordnaija/internal/model"
	"github.com/creatorlimen/wordnaija/internal/stats"
	"github.com/creatorlimen/wordnaija/internal/store"
	"github.com/creatorlimen/wordnaija/internal/tui"
	"github.com/creatorlimen/wordnaija/internal/validator"
	"github.com/creatorlimen/wordnaija/internal/wordlist"
)

const (
	defaultWorkers = 4
	envLogLevel    = "WORDNAIJA_LOG_LEVEL"
)

var (
	playLevels     string
	playDictionary string
	playLevel      int
	playAutoSubmit bool
	playSound      bool

	validateLevels  string
	validateWorkers int

	levelsPath string

	statsLevel int
	statsLast  int
)

func main() {
	setupLogging()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wordnaija",
		Short:             "Crossword word-wheel puzzle game",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadEnvironment,
		RunE:              runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLevels, "levels", "", "level catalog file (TOML or YAML); default: bundled levels")
	rootCmd.Flags().StringVar(&playDictionary, "dictionary", "", "word list file; default: bundled list")
	rootCmd.Flags().IntVar(&playLevel, "level", 0, "level to open; default: first unfinished level")
	rootCmd.Flags().BoolVar(&playAutoSubmit, "auto-submit", false, "submit as soon as the selection spells an unsolved target word")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "sound preference used before any progress is saved")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadEnvironment(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
		zerolog.SetGlobalLevel(lvl)
	}
	return nil
}

// loadFileConfig reads the config file with environment overrides applied.
func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)
	return fileCfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "levels", &playLevels, fileCfg.Game.Levels)
	applyStringConfig(cmd, "dictionary", &playDictionary, fileCfg.Game.Dictionary)
	applyIntConfig(cmd, "level", &playLevel, fileCfg.Game.StartLevel)
	applyBoolConfig(cmd, "auto-submit", &playAutoSubmit, fileCfg.Game.AutoSubmit)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)

	cfg := model.Config{
		LevelsPath:     playLevels,
		DictionaryPath: playDictionary,
		StartLevel:     playLevel,
		AutoSubmit:     playAutoSubmit,
		SoundEnabled:   playSound,
	}
	if cfg.StartLevel < 0 {
		return fmt.Errorf("--level must be >= 0")
	}

	catalog, err := loadCatalog(cfg.LevelsPath)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg.DictionaryPath, catalog)
	if err != nil {
		return err
	}
	log.Debug().Int("levels", catalog.TotalLevels()).Int("words", dict.Len()).Msg("content loaded")

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	m, err := tui.NewModel(cfg, catalog, dict, st, rnd)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadCatalog(path string) (*level.Catalog, error) {
	if path == "" {
		catalog, err := level.DefaultCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled levels: %w", err)
		}
		return catalog, nil
	}
	catalog, err := level.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels from %s: %w", path, err)
	}
	return catalog, nil
}

// loadDictionary indexes the word list plus every catalog word, so target
// words are always accepted.
func loadDictionary(path string, catalog *level.Catalog) (*wordlist.Dictionary, error) {
	words := wordlist.DefaultWords()
	if path != "" {
		loaded, err := wordlist.LoadWords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
		}
		words = loaded
	}
	dict := wordlist.NewDictionary(words)
	for _, def := range catalog.Definitions() {
		for _, w := range def.Words {
			dict.Add(w.Word, w.Meaning)
		}
	}
	return dict, nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every level generates with all of its words",
		Args:  cobra.NoArgs,
		RunE:  runValidateCmd,
	}
	cmd.Flags().StringVar(&validateLevels, "levels", "", "level catalog file (TOML or YAML); default: bundled levels")
	cmd.Flags().IntVar(&validateWorkers, "workers", defaultWorkers, "levels checked in parallel")
	return cmd
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	if validateWorkers <= 0 {
		return fmt.Errorf("--workers must be > 0")
	}
	path := validateLevels
	if !cmd.Flags().Changed("levels") {
		fileCfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		if fileCfg.Game.Levels != nil {
			path = *fileCfg.Game.Levels
		}
	}
	catalog, err := loadCatalog(path)
	if err != nil {
		return err
	}
	results, err := validator.Run(cmd.Context(), catalog.Definitions(), validateWorkers)
	if err != nil {
		return fmt.Errorf("validation interrupted: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := validator.Render(out, results, validator.ShouldUseColor(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if failed := validator.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d levels failed validation", failed, len(results))
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List configured levels",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&levelsPath, "levels", "", "level catalog file (TOML or YAML); default: bundled levels")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	path := levelsPath
	if !cmd.Flags().Changed("levels") {
		fileCfg, err := loadFileConfig()
		if err != nil {
			return err
		}
		if fileCfg.Game.Levels != nil {
			path = *fileCfg.Game.Levels
		}
	}
	catalog, err := loadCatalog(path)
	if err != nil {
		return err
	}
	headers := []string{"ID", "Title", "Difficulty", "Words", "Grid"}
	var rows [][]string
	for _, def := range catalog.Definitions() {
		grid := "invalid"
		if lvl, err := level.Build(def); err == nil {
			grid = fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols)
		} else {
			log.Debug().Err(err).Int("level", def.ID).Msg("level does not build")
		}
		rows = append(rows, []string{
			strconv.Itoa(def.ID),
			def.Title,
			def.Difficulty,
			strconv.Itoa(len(def.Words)),
			grid,
		})
	}
	if err := stats.RenderTable(cmd.OutOrStdout(), headers, rows, map[int]bool{0: true, 3: true}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress and level results",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLevel, "level", 0, "level filter")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N results")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLevel < 0 || statsLast < 0 {
		return fmt.Errorf("--level and --last must be >= 0")
	}
	cfg := model.StatsConfig{LevelID: statsLevel, Last: statsLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderResults(out, report.Results); err != nil {
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
		if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
