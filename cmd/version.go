package cmd

import (
	"github.com/spf13/cobra"
)

// version is the application version.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the planforge version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("planforge %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
