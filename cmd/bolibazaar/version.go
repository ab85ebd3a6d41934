package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build; dev builds report the default.
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bolibazaar",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bolibazaar version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
