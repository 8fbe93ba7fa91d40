package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/facts"
	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/observability"
	"github.com/daniel/career-assistant/internal/types"
)

var (
	extractProfileID string
	extractVerbose   bool
)

var extractFactsCmd = &cobra.Command{
	Use:   "extract-facts",
	Short: "Extract and cache the fact inventory for a profile",
	Long:  "Run fact extraction over a profile's CV and experience documents and store the resulting inventory in the cache. A no-op when an extraction is in flight or the cached inventory already matches the documents.",
	RunE:  runExtractFacts,
}

func init() {
	extractFactsCmd.Flags().StringVarP(&extractProfileID, "profile", "p", "", "Profile UUID (required)")
	extractFactsCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print the extracted inventory")

	_ = extractFactsCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(extractFactsCmd)
}

func runExtractFacts(cmd *cobra.Command, _ []string) error {
	profileID, err := uuid.Parse(extractProfileID)
	if err != nil {
		return fmt.Errorf("invalid profile id: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	client, err := newLLM(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	profile, err := database.GetProfile(cmd.Context(), profileID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("profile %s not found", profileID)
	}

	documents, err := database.ListDocuments(cmd.Context(), profileID)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	manager := factcache.NewManager(database, newExtractor(client), cfg.Timeout())
	started, err := manager.Trigger(cmd.Context(), profileID, profile.Summary, documents)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if !started {
		fmt.Println("Extraction skipped: already in flight or cache is current")
		return nil
	}

	fmt.Println("Extraction complete")

	if extractVerbose || cfg.Verbose {
		entry, err := database.GetExtraction(cmd.Context(), profileID)
		if err == nil && entry != nil && entry.Inventory != nil {
			observability.NewPrinter(os.Stdout).PrintInventory(entry.Inventory)
		}
	}
	return nil
}

// newExtractor closes facts.ExtractFacts over an LLM client
func newExtractor(client llm.Client) factcache.Extractor {
	return func(ctx context.Context, profileSummary string, documents []types.SourceDocument) (*types.FactInventory, error) {
		return facts.ExtractFacts(ctx, client, profileSummary, documents)
	}
}
