package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/plumenotes/plume"
	"github.com/plumenotes/plume/pkg/core"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	vaultFlag string
	cfg       appConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "A plain-file note store for Markdown + frontmatter",
	Long: `Plume keeps your notes as ordinary Markdown files in a vault directory.
Each note carries a small frontmatter header; everything else is yours.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		cfg = loadConfig()
		if vaultFlag != "" {
			cfg.Vault = vaultFlag
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// fatal reports a command failure on stderr and exits.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// openService wires a note service over the configured vault.
func openService() (*core.Service, error) {
	return plume.Open(cfg.Vault,
		plume.WithLogger(slog.Default()),
		plume.WithExtension(cfg.Extension),
	)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Vault directory (overrides config and PLUME_VAULT)")
}
