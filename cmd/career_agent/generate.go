package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/generation"
	"github.com/daniel/career-assistant/internal/observability"
	"github.com/daniel/career-assistant/internal/types"
)

var (
	generateProfileID string
	generateJobFile   string
	generateKind      string
	generateTemplate  string
	generateOut       string
	generateVerbose   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a CV or briefing pack for a job",
	Long:  "Generate a document for a profile against a job spec (produced by ingest-job). Content is constrained to the profile's extracted fact inventory; the result is persisted and printed.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateProfileID, "profile", "p", "", "Profile UUID (required)")
	generateCmd.Flags().StringVarP(&generateJobFile, "job", "j", "", "Path to job spec JSON file (required)")
	generateCmd.Flags().StringVarP(&generateKind, "kind", "k", "cv", "Document kind: cv or briefing")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template: classic, hybrid, or executive")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write the document JSON to this file instead of stdout")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print phase progress and document structure")

	_ = generateCmd.MarkFlagRequired("profile")
	_ = generateCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	profileID, err := uuid.Parse(generateProfileID)
	if err != nil {
		return fmt.Errorf("invalid profile id: %w", err)
	}

	job, err := loadJobSpec(generateJobFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	templateName := generateTemplate
	if templateName == "" {
		templateName = cfg.DefaultTemplate
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

	verbose := generateVerbose || cfg.Verbose
	var onProgress generation.ProgressFunc
	if verbose {
		printer := observability.NewPrinter(os.Stdout)
		onProgress = func(phase generation.Phase, message string) {
			printer.PrintPhase(string(phase), message)
		}
	}

	cache := factcache.NewManager(database, newExtractor(client), cfg.Timeout())
	generator := generation.NewGenerator(client, database, cache, cfg.Timeout())

	result, err := generator.Generate(cmd.Context(), generation.Request{
		ProfileID:      profileID,
		ProfileSummary: profile.Summary,
		Documents:      documents,
		Job:            *job,
		Kind:           types.GeneratedKind(generateKind),
		Template:       types.TemplateByName(templateName),
		OnProgress:     onProgress,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("Generated document %s\n", result.DocumentID)
	if verbose {
		observability.NewPrinter(os.Stdout).PrintDocument(result.Content)
	}

	return writeDocument(result.Content, generateOut)
}

// loadJobSpec reads and validates a job spec JSON file
func loadJobSpec(path string) (*types.JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job spec: %w", err)
	}

	var job types.JobSpec
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job spec JSON: %w", err)
	}
	if !job.Valid() {
		return nil, fmt.Errorf("job spec must include job_title, company_name, and job_description")
	}
	return &job, nil
}

// writeDocument prints the document JSON or writes it to a file
func writeDocument(content *types.DocumentContent, out string) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		fmt.Printf("Document written to %s\n", out)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
