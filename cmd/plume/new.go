package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	newContent string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long: `Create a new note with the given title. Content comes from --content;
pass "-" to read it from stdin instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := args[0]

		content := newContent
		if content == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read content from stdin", err)
			}
			content = string(data)
		}

		service, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := service.CreateNote(context.Background(), title, content)
		if err != nil {
			fatal("Failed to create note", err)
		}

		fmt.Printf("Created note %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note content (\"-\" reads stdin)")
}
