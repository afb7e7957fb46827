// Package main is the entry point for the startup idea agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "startup-idea-agent",
	Short: "Startup idea generation service",
	Long:  "Generates startup ideas (name, description, target audience, monetization model) from an area of interest via an AI text-generation backend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
