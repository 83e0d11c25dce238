// ABOUTME: Main entry point for the fueltrack CLI
// ABOUTME: Executes the root command and exits non-zero on failure

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
