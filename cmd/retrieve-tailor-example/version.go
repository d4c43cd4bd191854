package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of retrieve-tailor-example",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("retrieve-tailor-example %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
