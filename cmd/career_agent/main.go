// Package main provides the entry point for the career-document assistant.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/daniel/career-assistant/internal/config"
	"github.com/daniel/career-assistant/internal/db"
	"github.com/daniel/career-assistant/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career-document assistant",
	Long:  "Career-document assistant extracts a verified fact inventory from a user's own documents and generates CVs and interview briefing packs strictly grounded in it.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the optional config file over environment values and
// built-in defaults
func loadConfig() (config.Config, error) {
	merged := config.FromEnv().MergeWithDefaults(config.Config{
		Port:            config.DefaultPort,
		DefaultTemplate: config.DefaultTemplate,
	})

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = fileCfg.MergeWithDefaults(merged)
	}

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// openDB connects using the merged configuration
func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// newLLM creates the Gemini client from the merged configuration
func newLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
}
