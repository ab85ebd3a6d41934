package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bolibazaar",
	Short: "Voice-first commodity listing and broadcast simulator",
	Long: `Bolibazaar lets a seller describe produce in their own language over a
multi-turn dialogue, validates the resulting listing, and simulates how the
buyer network answers it with competing purchase offers.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
