package main

import (
	"fmt"
	"strings"

	"github.com/plumenotes/plume"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of plume",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plume version %s\n", strings.TrimSpace(plume.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
