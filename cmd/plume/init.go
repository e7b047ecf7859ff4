package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a Plume vault",
	Long:  `Create the vault directory if it does not exist yet and verify it is usable.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := openService(); err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized empty Plume vault in", cfg.Vault)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
