// dungeon inspects and drives the persistent progression of the dungeon
// crawler from the terminal.
//
// Usage:
//
//	dungeon achievements             - List achievements for the active profile
//	dungeon meta                     - Show shards, perks, relics and modifiers
//	dungeon buy <perk>               - Buy one level of a meta perk
//	dungeon replay <script.yaml>     - Feed a scripted event sequence
//	dungeon profile list             - Show which profile slots hold data
//	dungeon profile delete <index>   - Delete a profile and shift later ones
//	dungeon reset                    - Wipe meta progression
//	dungeon talents                  - Preview the talent tree
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.dungeon, ./configs, embedded)
//	--db <path>      - Override database path
//	--profile <n>    - Override active profile
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dungeon-progress/internal/config"
	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagProfile int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Dungeon progression - achievements, meta perks and relics",
	Long: `dungeon manages the persistent progression of the dungeon crawler:
achievements per profile, core shards, meta perks, relics and run upgrades.

Examples:
  dungeon achievements --profile 1
  dungeon meta
  dungeon buy vitality
  dungeon replay examples/first_run.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			ui.DisableColor()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagProfile, "profile", 0, "Active profile index (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(talentsCmd)
}

// loadConfig resolves config then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if cmd.Flags().Changed("profile") {
		cfg.Progression.Profile = flagProfile
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dungeon",
	})
	if lvl, err := cfg.LogLevel(); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
