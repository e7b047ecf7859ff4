package main

import (
	"context"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/plumenotes/plume/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON  bool
	listSince string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes in the vault",
	Long:  `List every note, most recently updated first. --since limits the output to notes updated within the given duration (e.g. 24h, 30m).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx := context.Background()

		var notes []core.Note
		if listSince != "" {
			d, err := time.ParseDuration(listSince)
			if err != nil {
				fatal("Invalid --since duration", err)
			}
			notes, err = service.NotesModifiedSince(ctx, time.Now().Add(-d))
			if err != nil {
				fatal("Failed to list notes", err)
			}
		} else {
			notes, err = service.ListNotes(ctx)
			if err != nil {
				fatal("Failed to list notes", err)
			}
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range notes {
			fmt.Printf("%s  %s  %s\n", note.ID, note.UpdatedAt.Local().Format("2006-01-02 15:04"), note.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only notes updated within this duration")
}
