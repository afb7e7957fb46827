package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BerylCAtieno/startup-idea-agent/internal/config"
	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one startup idea and print it as JSON",
	RunE:  runGenerate,
}

var (
	generateArea string
	generateName string
)

func init() {
	generateCmd.Flags().StringVar(&generateArea, "area", "", "Area of interest (required)")
	generateCmd.Flags().StringVar(&generateName, "name", "", "Preferred startup name")
	_ = generateCmd.MarkFlagRequired("area")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	generator, err := ideagen.NewFromConfig(cmd.Context(), cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	defer generator.Close()

	idea, err := generator.GenerateIdea(cmd.Context(), models.IdeaRequest{
		AreaOfInterest: generateArea,
		StartupName:    generateName,
	})
	if err != nil {
		return errors.New(ideagen.PublicMessage(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(models.IdeaResponse{Idea: idea})
}
