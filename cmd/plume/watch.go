package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Watch the vault for changes",
	Long: `Stream note changes as they happen, including changes made by other
programs. An optional glob pattern (matched against file names) narrows the
stream. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		service, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to watch vault", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (pattern %q)\n", cfg.Vault, pattern)

		for e := range events {
			at := time.Unix(e.Timestamp, 0).Local().Format("15:04:05")
			fmt.Printf("%s  %-6s  %s\n", at, e.Type, e.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
