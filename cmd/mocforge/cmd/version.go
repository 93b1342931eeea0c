package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mocforge %s\n", Version)
		fmt.Printf("  commit:   %s\n", Commit)
		fmt.Printf("  built:    %s\n", Date)
		fmt.Printf("  built by: %s\n", BuiltBy)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
