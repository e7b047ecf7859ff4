package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Replace the title and/or content of an existing note. Fields without a
flag keep their current value. --content "-" reads the new content from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := uuid.Parse(args[0])
		if err != nil {
			fatal("Invalid note ID", err)
		}

		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
			fmt.Println("Error: nothing to change, pass --title and/or --content")
			cmd.Usage()
			os.Exit(1)
		}

		service, err := openService()
		if err != nil {
			fatal("Failed to open vault", err)
		}

		ctx := context.Background()

		note, ok, err := service.GetNote(ctx, id)
		if err != nil {
			fatal("Failed to read note", err)
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
			os.Exit(1)
		}

		title := note.Title
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		content := note.Content
		if cmd.Flags().Changed("content") {
			content = editContent
			if editContent == "-" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					fatal("Failed to read content from stdin", err)
				}
				content = string(data)
			}
		}

		if _, err := service.UpdateNote(ctx, id, title, content); err != nil {
			fatal("Failed to update note", err)
		}

		fmt.Printf("Updated note %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content (\"-\" reads stdin)")
}
