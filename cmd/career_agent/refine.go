package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daniel/career-assistant/internal/db"
	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/generation"
	"github.com/daniel/career-assistant/internal/types"
)

var (
	refineDocumentID  string
	refineRequest     string
	refineHistoryFile string
	refineOut         string
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Refine a generated document with a free-text request",
	Long:  "Regenerate a complete replacement for a ready generated document from a free-text request and optional conversation history. The stored document is overwritten on success and untouched on failure.",
	RunE:  runRefine,
}

func init() {
	refineCmd.Flags().StringVarP(&refineDocumentID, "document", "d", "", "Generated document UUID (required)")
	refineCmd.Flags().StringVarP(&refineRequest, "request", "r", "", "Refinement request, e.g. 'shorten the summary' (required)")
	refineCmd.Flags().StringVar(&refineHistoryFile, "history", "", "Path to conversation history JSON file")
	refineCmd.Flags().StringVarP(&refineOut, "out", "o", "", "Write the refined document JSON to this file instead of stdout")

	_ = refineCmd.MarkFlagRequired("document")
	_ = refineCmd.MarkFlagRequired("request")

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	documentID, err := uuid.Parse(refineDocumentID)
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}

	var history []types.ChatMessage
	if refineHistoryFile != "" {
		data, err := os.ReadFile(refineHistoryFile)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if err := json.Unmarshal(data, &history); err != nil {
			return fmt.Errorf("failed to parse history JSON: %w", err)
		}
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

	doc, err := database.GetGeneratedDocument(cmd.Context(), documentID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("generated document %s not found", documentID)
	}
	if doc.Status != db.DocStatusReady || doc.Content == nil {
		return fmt.Errorf("document %s is not ready for refinement (status: %s)", documentID, doc.Status)
	}

	cache := factcache.NewManager(database, newExtractor(client), cfg.Timeout())
	generator := generation.NewGenerator(client, database, cache, cfg.Timeout())

	refined, err := generator.Refine(cmd.Context(), documentID, doc.Content, refineRequest, history)
	if err != nil {
		return fmt.Errorf("refinement failed: %w", err)
	}

	fmt.Printf("Refined document %s\n", documentID)
	return writeDocument(refined, refineOut)
}
